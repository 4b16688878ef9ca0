package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/middleware"
	"github.com/jobdeck/jobdeck/internal/services"
)

// ApplicationHandler exposes the job-application CRUD and stats endpoints.
// All routes sit behind RequireAuth, so the caller is always resolved.
type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications}
}

// List is GET /applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	user := middleware.MustUser(c)

	var query dtos.ListApplicationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(err)
		return
	}

	apps, pagination, err := h.Applications.List(c.Request.Context(), user.ID, &query)
	if err != nil {
		c.Error(err)
		return
	}
	respondList(c, apps, pagination)
}

// Get is GET /applications/:id.
func (h *ApplicationHandler) Get(c *gin.Context) {
	user := middleware.MustUser(c)

	app, err := h.Applications.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, app)
}

// Create is POST /applications.
func (h *ApplicationHandler) Create(c *gin.Context) {
	user := middleware.MustUser(c)

	var req dtos.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.Applications.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, app)
}

// Update is PUT /applications/:id.
func (h *ApplicationHandler) Update(c *gin.Context) {
	user := middleware.MustUser(c)

	var req dtos.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.Applications.Update(c.Request.Context(), user.ID, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, app)
}

// Delete is DELETE /applications/:id.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	user := middleware.MustUser(c)

	if err := h.Applications.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Application deleted successfully")
}

// Stats is GET /applications/stats/overview.
func (h *ApplicationHandler) Stats(c *gin.Context) {
	user := middleware.MustUser(c)

	stats, err := h.Applications.Stats(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, stats)
}
