package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/auth"
	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/gorm"
)

// AccountService resolves external identities to exactly one user record.
type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// Resolve maps an identity to a user with this precedence: an existing user
// already holding the (provider, external id) pair wins; otherwise a user
// with the same email gets the provider id attached (account linking);
// otherwise a fresh user is created. Concurrent first sign-ins of the same
// identity race on the uniqueness constraints; the loser re-reads and uses
// the winner's row instead of failing.
func (s *AccountService) Resolve(ctx context.Context, ident *auth.ExternalIdentity) (*models.User, error) {
	if ident.ExternalID == "" {
		return nil, apperr.BadRequest("identity provider returned no account id")
	}
	email := strings.ToLower(strings.TrimSpace(ident.Email))
	if email == "" {
		return nil, apperr.BadRequest("identity provider returned no email address")
	}

	column, err := providerIDColumn(ident.Provider)
	if err != nil {
		return nil, err
	}
	tx := s.DB.WithContext(ctx)

	var user models.User
	err = tx.First(&user, column+" = ?", ident.ExternalID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Link onto an existing account matched by email.
	err = tx.First(&user, "email = ?", email).Error
	if err == nil {
		if err := tx.Model(&user).Update(column, ident.ExternalID).Error; err != nil {
			if isDuplicateKey(err) {
				return s.rereadWinner(ctx, column, ident.ExternalID, email)
			}
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: ident.FirstName,
		LastName:  ident.LastName,
		Avatar:    ident.Avatar,
		Provider:  ident.Provider,
	}
	setProviderID(&user, ident.Provider, ident.ExternalID)

	if err := tx.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return s.rereadWinner(ctx, column, ident.ExternalID, email)
		}
		return nil, err
	}
	return &user, nil
}

// rereadWinner handles the lost race: some concurrent sign-in persisted this
// identity first, so fetch whatever it left behind. The collision can sit on
// the provider-id index or on the email index (same email arriving through
// another provider), so the email is the fallback lookup.
func (s *AccountService) rereadWinner(ctx context.Context, column, externalID, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, column+" = ?", externalID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("account conflict re-read: %w", err)
	}
	if err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("account conflict re-read: %w", err)
	}
	return &user, nil
}

func providerIDColumn(provider string) (string, error) {
	switch provider {
	case models.ProviderGoogle:
		return "google_id", nil
	case models.ProviderGithub:
		return "github_id", nil
	default:
		return "", apperr.BadRequest("unknown identity provider: " + provider)
	}
}

func setProviderID(user *models.User, provider, externalID string) {
	switch provider {
	case models.ProviderGoogle:
		user.GoogleID = &externalID
	case models.ProviderGithub:
		user.GithubID = &externalID
	}
}

// isDuplicateKey matches uniqueness violations across the drivers in use.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
