package dtos

import (
	"time"

	"github.com/jobdeck/jobdeck/internal/models"
)

// CreateApplicationRequest carries the client-settable fields of a new
// application. The owner is always taken from the session, never from the
// body.
type CreateApplicationRequest struct {
	JobTitle       string          `json:"jobTitle"`
	Company        string          `json:"company"`
	JobDescription string          `json:"jobDescription"`
	ApplicationURL string          `json:"applicationUrl"`
	Status         models.Status   `json:"status"`
	Priority       models.Priority `json:"priority"`

	Salary   *models.SalaryRange `json:"salary"`
	Location string              `json:"location"`
	JobType  string              `json:"jobType"`
	Source   string              `json:"source"`

	AppliedDate *time.Time `json:"appliedDate"`
	Deadline    *time.Time `json:"deadline"`
	Notes       string     `json:"notes"`

	Documents  *models.Documents  `json:"documents"`
	Contacts   *models.Contacts   `json:"contacts"`
	Interviews []models.Interview `json:"interviews"`
	FollowUps  []models.FollowUp  `json:"followUps"`
}

// UpdateApplicationRequest is a partial update: only fields present in the
// JSON body are applied. Nested blocks and lists are replaced wholesale when
// supplied and left untouched when omitted.
type UpdateApplicationRequest struct {
	JobTitle       *string          `json:"jobTitle"`
	Company        *string          `json:"company"`
	JobDescription *string          `json:"jobDescription"`
	ApplicationURL *string          `json:"applicationUrl"`
	Status         *models.Status   `json:"status"`
	Priority       *models.Priority `json:"priority"`

	Salary   *models.SalaryRange `json:"salary"`
	Location *string             `json:"location"`
	JobType  *string             `json:"jobType"`
	Source   *string             `json:"source"`

	AppliedDate *time.Time `json:"appliedDate"`
	Deadline    *time.Time `json:"deadline"`
	Notes       *string    `json:"notes"`

	Documents  *models.Documents   `json:"documents"`
	Contacts   *models.Contacts    `json:"contacts"`
	Interviews *[]models.Interview `json:"interviews"`
	FollowUps  *[]models.FollowUp  `json:"followUps"`
}

// ListApplicationsQuery holds the query parameters of GET /applications.
type ListApplicationsQuery struct {
	Status    string `form:"status"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sortBy,default=updatedAt"`
	SortOrder string `form:"sortOrder,default=desc"`
}

// Pagination is attached to every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// StatsSummary surfaces the total plus the four non-draft status counts the
// dashboard cares about.
type StatsSummary struct {
	Total      int64 `json:"total"`
	Applied    int64 `json:"applied"`
	Interviews int64 `json:"interviews"`
	Offers     int64 `json:"offers"`
	Rejected   int64 `json:"rejected"`
}

// StatusCount is one bucket of the full status breakdown, draft included.
type StatusCount struct {
	Status models.Status `json:"status"`
	Count  int64         `json:"count"`
}

// MonthlyCount buckets applications by (year, month) of their applied date.
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// ApplicationStats is the payload of GET /applications/stats/overview.
type ApplicationStats struct {
	Summary             StatsSummary   `json:"summary"`
	StatusBreakdown     []StatusCount  `json:"statusBreakdown"`
	MonthlyApplications []MonthlyCount `json:"monthlyApplications"`
}
