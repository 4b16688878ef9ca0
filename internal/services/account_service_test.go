package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/internal/auth"
	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/gorm"
)

func googleIdentity(id, email string) *auth.ExternalIdentity {
	return &auth.ExternalIdentity{
		Provider:   models.ProviderGoogle,
		ExternalID: id,
		Email:      email,
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Avatar:     "https://example.com/a.png",
	}
}

func TestResolve_CreatesNewAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	user, err := svc.Resolve(context.Background(), googleIdentity("g-123", "Ada@Example.com"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if user.ID == "" {
		t.Error("expected generated id")
	}
	if user.Email != "ada@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Provider != models.ProviderGoogle {
		t.Errorf("expected provider google, got %q", user.Provider)
	}
	if user.GoogleID == nil || *user.GoogleID != "g-123" {
		t.Errorf("expected google id attached, got %v", user.GoogleID)
	}
}

func TestResolve_SameIdentityNeverDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	first, err := svc.Resolve(context.Background(), googleIdentity("g-123", "ada@example.com"))
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := svc.Resolve(context.Background(), googleIdentity("g-123", "ada@example.com"))
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same account, got %s and %s", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one account, got %d", count)
	}
}

func TestResolve_LinksByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	original, err := svc.Resolve(context.Background(), googleIdentity("g-123", "ada@example.com"))
	if err != nil {
		t.Fatalf("google resolve: %v", err)
	}

	linked, err := svc.Resolve(context.Background(), &auth.ExternalIdentity{
		Provider:   models.ProviderGithub,
		ExternalID: "77",
		Email:      "ada@example.com",
		FirstName:  "Ada",
	})
	if err != nil {
		t.Fatalf("github resolve: %v", err)
	}

	if linked.ID != original.ID {
		t.Errorf("expected linking onto existing account, got new account %s", linked.ID)
	}

	var stored models.User
	if err := db.First(&stored, "id = ?", original.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.GithubID == nil || *stored.GithubID != "77" {
		t.Errorf("expected github id attached, got %v", stored.GithubID)
	}
	if stored.GoogleID == nil || *stored.GoogleID != "g-123" {
		t.Errorf("expected google id preserved, got %v", stored.GoogleID)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one account after linking, got %d", count)
	}
}

func TestResolve_DistinctEmailsDistinctAccounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	a, err := svc.Resolve(context.Background(), googleIdentity("g-1", "a@example.com"))
	if err != nil {
		t.Fatalf("resolve a: %v", err)
	}
	b, err := svc.Resolve(context.Background(), googleIdentity("g-2", "b@example.com"))
	if err != nil {
		t.Fatalf("resolve b: %v", err)
	}
	if a.ID == b.ID {
		t.Error("expected two distinct accounts")
	}
}

func TestResolve_RejectsIncompleteIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	if _, err := svc.Resolve(context.Background(), googleIdentity("", "ada@example.com")); err == nil {
		t.Error("expected error for missing external id")
	}
	if _, err := svc.Resolve(context.Background(), googleIdentity("g-1", "")); err == nil {
		t.Error("expected error for missing email")
	}
	if _, err := svc.Resolve(context.Background(), &auth.ExternalIdentity{
		Provider: "myspace", ExternalID: "1", Email: "x@example.com",
	}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestResolve_LostCreateRaceRereadsWinner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	// The winner persisted this identity between our read and our write; the
	// duplicate-key failure must resolve to the winner's row.
	winner, err := svc.Resolve(context.Background(), googleIdentity("g-123", "ada@example.com"))
	if err != nil {
		t.Fatalf("winner resolve: %v", err)
	}

	loser, err := svc.rereadWinner(context.Background(), "google_id", "g-123", "ada@example.com")
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if loser.ID != winner.ID {
		t.Errorf("expected winner's account, got %s", loser.ID)
	}
}

func TestUniqueViolationTranslatesToDuplicatedKey(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "ada@example.com")

	err := db.Create(&models.User{
		ID:       uuid.NewString(),
		Email:    "ada@example.com",
		Provider: models.ProviderGoogle,
	}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
	if !isDuplicateKey(err) {
		t.Error("expected isDuplicateKey to match the translated error")
	}
}

func TestResolve_LostEmailRaceRereadsWinner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	// The race landed on the email index: the winner signed in through github,
	// the loser's github id is nowhere in the table, but the email finds the
	// winner's row.
	winner, err := svc.Resolve(context.Background(), &auth.ExternalIdentity{
		Provider:   models.ProviderGithub,
		ExternalID: "gh-1",
		Email:      "ada@example.com",
		FirstName:  "Ada",
	})
	if err != nil {
		t.Fatalf("winner resolve: %v", err)
	}

	loser, err := svc.rereadWinner(context.Background(), "google_id", "g-999", "ada@example.com")
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if loser.ID != winner.ID {
		t.Errorf("expected winner's account, got %s", loser.ID)
	}
}
