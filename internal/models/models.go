package models

import (
	"database/sql/driver"
	"time"
)

// Provider tags for the supported identity providers.
const (
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

// Status is the application lifecycle tag. The set is closed but no
// transition graph is enforced: any status may be replaced by any other.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusOffer     Status = "offer"
	StatusAccepted  Status = "accepted"
)

// Priority of a tracked application.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// User is a registered person. One row per account; sign-ins through
// additional providers link onto the same row (see services.AccountService).
type User struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string  `gorm:"not null" json:"firstName"`
	LastName  string  `gorm:"not null" json:"lastName"`
	Avatar    string  `json:"avatar,omitempty"`
	Provider  string  `gorm:"not null" json:"provider"`
	GoogleID  *string `gorm:"uniqueIndex" json:"-"`
	GithubID  *string `gorm:"uniqueIndex" json:"-"`

	Profile        *Profile        `gorm:"type:jsonb" json:"profile,omitempty"`
	JobPreferences *JobPreferences `gorm:"type:jsonb" json:"jobPreferences,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Profile is the free-form profile block on a User.
type Profile struct {
	Phone      string   `json:"phone,omitempty"`
	Location   string   `json:"location,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Website    string   `json:"website,omitempty"`
	LinkedIn   string   `json:"linkedIn,omitempty"`
	Github     string   `json:"github,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
}

func (p Profile) Value() (driver.Value, error) { return jsonValue(p) }
func (p *Profile) Scan(src any) error          { return jsonScan(src, p) }

// JobPreferences is the job-search preference block on a User.
type JobPreferences struct {
	JobTitles   []string     `json:"jobTitles,omitempty"`
	Locations   []string     `json:"locations,omitempty"`
	SalaryRange *SalaryRange `json:"salaryRange,omitempty"`
	JobTypes    []string     `json:"jobTypes,omitempty"`
	Industries  []string     `json:"industries,omitempty"`
}

func (p JobPreferences) Value() (driver.Value, error) { return jsonValue(p) }
func (p *JobPreferences) Scan(src any) error          { return jsonScan(src, p) }

// Session is a server-side login session referenced by an opaque cookie.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:36;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// JobApplication is one tracked job application, owned by exactly one User.
// Every read and write goes through the owner filter; a record under another
// owner is indistinguishable from a missing one.
type JobApplication struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	UserID         string `gorm:"size:36;not null;index" json:"userId"`
	JobTitle       string `gorm:"not null" json:"jobTitle" validate:"required"`
	Company        string `gorm:"not null" json:"company" validate:"required"`
	JobDescription string `gorm:"type:text" json:"jobDescription,omitempty"`
	ApplicationURL string `json:"applicationUrl,omitempty"`

	Status   Status   `gorm:"size:16;default:draft;index" json:"status" validate:"required,oneof=draft applied interview rejected offer accepted"`
	Priority Priority `gorm:"size:16;default:medium" json:"priority" validate:"required,oneof=low medium high"`

	Salary   *SalaryRange `gorm:"type:jsonb" json:"salary,omitempty"`
	Location string       `json:"location,omitempty"`
	JobType  string       `json:"jobType,omitempty"`
	Source   string       `json:"source,omitempty"`

	AppliedDate *time.Time `gorm:"index" json:"appliedDate,omitempty"`
	Deadline    *time.Time `gorm:"index" json:"deadline,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`

	Documents  *Documents    `gorm:"type:jsonb" json:"documents,omitempty"`
	Contacts   *Contacts     `gorm:"type:jsonb" json:"contacts,omitempty"`
	Interviews InterviewList `gorm:"type:jsonb" json:"interviews" validate:"dive"`
	FollowUps  FollowUpList  `gorm:"type:jsonb" json:"followUps" validate:"dive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SalaryRange is an optional min/max/currency block.
type SalaryRange struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

func (s SalaryRange) Value() (driver.Value, error) { return jsonValue(s) }
func (s *SalaryRange) Scan(src any) error          { return jsonScan(src, s) }

// Documents holds resume/cover-letter paths plus any extra attachments.
type Documents struct {
	Resume         string   `json:"resume,omitempty"`
	CoverLetter    string   `json:"coverLetter,omitempty"`
	AdditionalDocs []string `json:"additionalDocs,omitempty"`
}

func (d Documents) Value() (driver.Value, error) { return jsonValue(d) }
func (d *Documents) Scan(src any) error          { return jsonScan(src, d) }

// Contacts holds recruiter and hiring-manager contact info.
type Contacts struct {
	RecruiterName      string `json:"recruiterName,omitempty"`
	RecruiterEmail     string `json:"recruiterEmail,omitempty"`
	RecruiterPhone     string `json:"recruiterPhone,omitempty"`
	HiringManagerName  string `json:"hiringManagerName,omitempty"`
	HiringManagerEmail string `json:"hiringManagerEmail,omitempty"`
}

func (c Contacts) Value() (driver.Value, error) { return jsonValue(c) }
func (c *Contacts) Scan(src any) error          { return jsonScan(src, c) }

// Interview is one scheduled or completed interview round.
type Interview struct {
	Type        string    `json:"type" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Interviewer string    `json:"interviewer,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Feedback    string    `json:"feedback,omitempty"`
}

// InterviewList is stored as one JSON column; updates replace the whole list.
type InterviewList []Interview

func (l InterviewList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *InterviewList) Scan(src any) error          { return jsonScan(src, l) }

// FollowUp is a logged follow-up touchpoint (email, phone, linkedin).
type FollowUp struct {
	Date  time.Time `json:"date" validate:"required"`
	Type  string    `json:"type" validate:"required"`
	Notes string    `json:"notes,omitempty"`
}

// FollowUpList is stored as one JSON column; updates replace the whole list.
type FollowUpList []FollowUp

func (l FollowUpList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *FollowUpList) Scan(src any) error          { return jsonScan(src, l) }
