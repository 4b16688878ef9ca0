package dtos

import "github.com/jobdeck/jobdeck/internal/models"

// ProfilePatch updates the profile block with shallow-merge semantics: keys
// present in the JSON body overwrite, absent keys survive. Matches the
// block-level spread the clients rely on.
type ProfilePatch struct {
	Phone      *string   `json:"phone"`
	Location   *string   `json:"location"`
	Bio        *string   `json:"bio"`
	Website    *string   `json:"website"`
	LinkedIn   *string   `json:"linkedIn"`
	Github     *string   `json:"github"`
	Skills     *[]string `json:"skills"`
	Experience *string   `json:"experience"`
}

// JobPreferencesPatch updates the job-preferences block, same shallow-merge
// rules as ProfilePatch. A supplied salaryRange replaces the old one as a
// whole.
type JobPreferencesPatch struct {
	JobTitles   *[]string           `json:"jobTitles"`
	Locations   *[]string           `json:"locations"`
	SalaryRange *models.SalaryRange `json:"salaryRange"`
	JobTypes    *[]string           `json:"jobTypes"`
	Industries  *[]string           `json:"industries"`
}

// UpdateProfileRequest is the body of PUT /user/profile. Either block may be
// omitted; an omitted block is left untouched.
type UpdateProfileRequest struct {
	Profile        *ProfilePatch        `json:"profile"`
	JobPreferences *JobPreferencesPatch `json:"jobPreferences"`
}

// UpdateInfoRequest is the body of PUT /user/info. Both names are required.
type UpdateInfoRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// UserPayload is the user shape returned by the auth and profile endpoints.
type UserPayload struct {
	ID             string                 `json:"id"`
	Email          string                 `json:"email"`
	FirstName      string                 `json:"firstName"`
	LastName       string                 `json:"lastName"`
	FullName       string                 `json:"fullName"`
	Avatar         string                 `json:"avatar,omitempty"`
	Provider       string                 `json:"provider"`
	Profile        *models.Profile        `json:"profile,omitempty"`
	JobPreferences *models.JobPreferences `json:"jobPreferences,omitempty"`
	CreatedAt      string                 `json:"createdAt,omitempty"`
	UpdatedAt      string                 `json:"updatedAt,omitempty"`
}

// NewUserPayload builds the wire shape for a user, deriving fullName.
func NewUserPayload(u *models.User) *UserPayload {
	return &UserPayload{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Avatar:         u.Avatar,
		Provider:       u.Provider,
		Profile:        u.Profile,
		JobPreferences: u.JobPreferences,
		CreatedAt:      u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt:      u.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}
