package services

import (
	"context"
	"errors"

	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/gorm"
)

// UserService handles profile and preference operations on the caller's own
// account.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile merges the supplied profile and jobPreferences blocks into
// the stored ones. Merge granularity is the block's top level: keys present
// in the request overwrite, absent keys survive, and anything nested below a
// supplied key is replaced as a whole. An omitted block is left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dtos.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Profile != nil {
		user.Profile = mergeProfile(user.Profile, req.Profile)
	}
	if req.JobPreferences != nil {
		user.JobPreferences = mergeJobPreferences(user.JobPreferences, req.JobPreferences)
	}

	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateInfo replaces the user's first and last name. Both are required.
func (s *UserService) UpdateInfo(ctx context.Context, userID, firstName, lastName string) (*models.User, error) {
	if firstName == "" || lastName == "" {
		return nil, apperr.BadRequest("First name and last name are required")
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func mergeProfile(current *models.Profile, patch *dtos.ProfilePatch) *models.Profile {
	merged := models.Profile{}
	if current != nil {
		merged = *current
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}
	if patch.Location != nil {
		merged.Location = *patch.Location
	}
	if patch.Bio != nil {
		merged.Bio = *patch.Bio
	}
	if patch.Website != nil {
		merged.Website = *patch.Website
	}
	if patch.LinkedIn != nil {
		merged.LinkedIn = *patch.LinkedIn
	}
	if patch.Github != nil {
		merged.Github = *patch.Github
	}
	if patch.Skills != nil {
		merged.Skills = *patch.Skills
	}
	if patch.Experience != nil {
		merged.Experience = *patch.Experience
	}
	return &merged
}

func mergeJobPreferences(current *models.JobPreferences, patch *dtos.JobPreferencesPatch) *models.JobPreferences {
	merged := models.JobPreferences{}
	if current != nil {
		merged = *current
	}
	if patch.JobTitles != nil {
		merged.JobTitles = *patch.JobTitles
	}
	if patch.Locations != nil {
		merged.Locations = *patch.Locations
	}
	if patch.SalaryRange != nil {
		rng := *patch.SalaryRange
		if rng.Currency == "" {
			rng.Currency = "USD"
		}
		merged.SalaryRange = &rng
	}
	if patch.JobTypes != nil {
		merged.JobTypes = *patch.JobTypes
	}
	if patch.Industries != nil {
		merged.Industries = *patch.Industries
	}
	return &merged
}
