package services

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/gorm"
)

// Columns clients may sort the listing by, keyed by their JSON field names.
var sortableColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"appliedDate": "applied_date",
	"deadline":    "deadline",
	"jobTitle":    "job_title",
	"company":     "company",
	"status":      "status",
	"priority":    "priority",
}

const (
	defaultSortColumn = "updated_at"
	maxPageSize       = 100
)

// ApplicationService owns every read and write of job-application records.
// All of them are scoped by the caller's user id; a record under another
// owner behaves exactly like a missing one.
type ApplicationService struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db, validate: newValidator()}
}

// newValidator reports field names by json tag so validation messages match
// what clients sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Create persists a new record for the owner. The owner id always comes from
// the session; whatever the body carried is discarded. Status and priority
// default when omitted, and a salary block without a currency gets USD.
func (s *ApplicationService) Create(ctx context.Context, ownerID string, req *dtos.CreateApplicationRequest) (*models.JobApplication, error) {
	app := &models.JobApplication{
		ID:             uuid.NewString(),
		UserID:         ownerID,
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		JobDescription: req.JobDescription,
		ApplicationURL: req.ApplicationURL,
		Status:         req.Status,
		Priority:       req.Priority,
		Salary:         req.Salary,
		Location:       req.Location,
		JobType:        req.JobType,
		Source:         req.Source,
		AppliedDate:    req.AppliedDate,
		Deadline:       req.Deadline,
		Notes:          req.Notes,
		Documents:      req.Documents,
		Contacts:       req.Contacts,
		Interviews:     req.Interviews,
		FollowUps:      req.FollowUps,
	}
	applyDefaults(app)

	if err := s.validate.Struct(app); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// Get fetches one record by id, owner-scoped. Records under other owners are
// reported as not found, never as forbidden.
func (s *ApplicationService) Get(ctx context.Context, ownerID, id string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := s.DB.WithContext(ctx).First(&app, "id = ? AND user_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Application not found")
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns one page of the owner's records with the total count.
// Unknown sort fields fall back to updatedAt; page and limit are clamped to
// sane values. The page count is ceil(total/limit), and pages past the end
// come back empty with the same total.
func (s *ApplicationService) List(ctx context.Context, ownerID string, q *dtos.ListApplicationsQuery) ([]models.JobApplication, *dtos.Pagination, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	column, ok := sortableColumns[q.SortBy]
	if !ok {
		column = defaultSortColumn
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	filtered := func() *gorm.DB {
		scope := s.DB.WithContext(ctx).Model(&models.JobApplication{}).Where("user_id = ?", ownerID)
		if q.Status != "" {
			scope = scope.Where("status = ?", q.Status)
		}
		return scope
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, nil, err
	}

	apps := make([]models.JobApplication, 0, limit)
	err := filtered().
		Order(column + " " + direction).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&apps).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &dtos.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}
	return apps, pagination, nil
}

// Update applies a partial update and validates the merged record before
// persisting, so an update that would leave the record invalid (empty job
// title, unknown status) is rejected as a whole. Supplied blocks and lists
// replace the stored ones wholesale; omitted ones survive.
func (s *ApplicationService) Update(ctx context.Context, ownerID, id string, req *dtos.UpdateApplicationRequest) (*models.JobApplication, error) {
	app, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	applyPatch(app, req)
	if err := s.validate.Struct(app); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Save(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// Delete removes one owner-scoped record. Deleting an id that does not exist
// for this owner reports not found, so a second delete of the same id fails
// while the first succeeds.
func (s *ApplicationService) Delete(ctx context.Context, ownerID, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.JobApplication{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Application not found")
	}
	return nil
}

// Stats computes the owner's aggregate view: a summary of total plus the
// four non-draft statuses, a full per-status breakdown (draft included), and
// counts bucketed by (year, month) of the applied date, ascending. An owner
// with no records gets zeros and empty series, never an error.
func (s *ApplicationService) Stats(ctx context.Context, ownerID string) (*dtos.ApplicationStats, error) {
	owned := func() *gorm.DB {
		return s.DB.WithContext(ctx).Model(&models.JobApplication{}).Where("user_id = ?", ownerID)
	}

	var buckets []dtos.StatusCount
	err := owned().
		Select("status", "COUNT(*) AS count").
		Group("status").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Status < buckets[j].Status })

	stats := &dtos.ApplicationStats{
		StatusBreakdown:     buckets,
		MonthlyApplications: []dtos.MonthlyCount{},
	}
	if stats.StatusBreakdown == nil {
		stats.StatusBreakdown = []dtos.StatusCount{}
	}
	for _, b := range buckets {
		stats.Summary.Total += b.Count
		switch b.Status {
		case models.StatusApplied:
			stats.Summary.Applied = b.Count
		case models.StatusInterview:
			stats.Summary.Interviews = b.Count
		case models.StatusOffer:
			stats.Summary.Offers = b.Count
		case models.StatusRejected:
			stats.Summary.Rejected = b.Count
		}
	}

	// Month bucketing happens here rather than in SQL so the same query runs
	// on both postgres and sqlite.
	var appliedDates []time.Time
	err = owned().
		Where("applied_date IS NOT NULL").
		Pluck("applied_date", &appliedDates).Error
	if err != nil {
		return nil, err
	}

	monthly := make(map[[2]int]int64)
	for _, d := range appliedDates {
		monthly[[2]int{d.Year(), int(d.Month())}]++
	}
	for key, count := range monthly {
		stats.MonthlyApplications = append(stats.MonthlyApplications, dtos.MonthlyCount{
			Year:  key[0],
			Month: key[1],
			Count: count,
		})
	}
	sort.Slice(stats.MonthlyApplications, func(i, j int) bool {
		a, b := stats.MonthlyApplications[i], stats.MonthlyApplications[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	return stats, nil
}

func applyDefaults(app *models.JobApplication) {
	if app.Status == "" {
		app.Status = models.StatusDraft
	}
	if app.Priority == "" {
		app.Priority = models.PriorityMedium
	}
	if app.Salary != nil && app.Salary.Currency == "" {
		app.Salary.Currency = "USD"
	}
}

func applyPatch(app *models.JobApplication, req *dtos.UpdateApplicationRequest) {
	if req.JobTitle != nil {
		app.JobTitle = *req.JobTitle
	}
	if req.Company != nil {
		app.Company = *req.Company
	}
	if req.JobDescription != nil {
		app.JobDescription = *req.JobDescription
	}
	if req.ApplicationURL != nil {
		app.ApplicationURL = *req.ApplicationURL
	}
	if req.Status != nil {
		app.Status = *req.Status
	}
	if req.Priority != nil {
		app.Priority = *req.Priority
	}
	if req.Salary != nil {
		rng := *req.Salary
		if rng.Currency == "" {
			rng.Currency = "USD"
		}
		app.Salary = &rng
	}
	if req.Location != nil {
		app.Location = *req.Location
	}
	if req.JobType != nil {
		app.JobType = *req.JobType
	}
	if req.Source != nil {
		app.Source = *req.Source
	}
	if req.AppliedDate != nil {
		app.AppliedDate = req.AppliedDate
	}
	if req.Deadline != nil {
		app.Deadline = req.Deadline
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	if req.Documents != nil {
		app.Documents = req.Documents
	}
	if req.Contacts != nil {
		app.Contacts = req.Contacts
	}
	if req.Interviews != nil {
		app.Interviews = *req.Interviews
	}
	if req.FollowUps != nil {
		app.FollowUps = *req.FollowUps
	}
}
