package services

import (
	"context"
	"testing"

	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/models"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile_ShallowMergeKeepsSiblings(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "ada@example.com")

	user.Profile = &models.Profile{
		Phone:  "555-0100",
		Bio:    "systems engineer",
		Skills: []string{"Go", "SQL"},
	}
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &dtos.UpdateProfileRequest{
		Profile: &dtos.ProfilePatch{Bio: strPtr("staff engineer")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Profile.Bio != "staff engineer" {
		t.Errorf("expected bio updated, got %q", updated.Profile.Bio)
	}
	if updated.Profile.Phone != "555-0100" {
		t.Errorf("expected phone to survive, got %q", updated.Profile.Phone)
	}
	if len(updated.Profile.Skills) != 2 {
		t.Errorf("expected skills to survive, got %v", updated.Profile.Skills)
	}
}

func TestUpdateProfile_OmittedBlockUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "ada@example.com")

	user.JobPreferences = &models.JobPreferences{JobTitles: []string{"Backend Engineer"}}
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("seed preferences: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &dtos.UpdateProfileRequest{
		Profile: &dtos.ProfilePatch{Location: strPtr("Lisbon")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.JobPreferences == nil || len(updated.JobPreferences.JobTitles) != 1 {
		t.Errorf("expected jobPreferences untouched, got %+v", updated.JobPreferences)
	}
}

func TestUpdateProfile_SalaryRangeDefaultsCurrency(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "ada@example.com")

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &dtos.UpdateProfileRequest{
		JobPreferences: &dtos.JobPreferencesPatch{
			SalaryRange: &models.SalaryRange{Min: 90000, Max: 120000},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.JobPreferences.SalaryRange.Currency != "USD" {
		t.Errorf("expected USD default, got %q", updated.JobPreferences.SalaryRange.Currency)
	}
}

func TestUpdateInfo(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "ada@example.com")

	updated, err := svc.UpdateInfo(context.Background(), user.ID, "Grace", "Hopper")
	if err != nil {
		t.Fatalf("update info: %v", err)
	}
	if updated.FirstName != "Grace" || updated.LastName != "Hopper" {
		t.Errorf("unexpected names: %s %s", updated.FirstName, updated.LastName)
	}
	if updated.FullName() != "Grace Hopper" {
		t.Errorf("unexpected full name %q", updated.FullName())
	}

	if _, err := svc.UpdateInfo(context.Background(), user.ID, "Grace", ""); apperr.StatusCode(err) != 400 {
		t.Errorf("expected 400 for missing last name, got %v", err)
	}
}

func TestGet_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	if _, err := svc.Get(context.Background(), "nope"); apperr.StatusCode(err) != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}
