package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/middleware"
	"github.com/jobdeck/jobdeck/internal/services"
)

// UserHandler exposes the caller's profile and preference endpoints.
type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetProfile is GET /user/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	caller := middleware.MustUser(c)

	user, err := h.Users.Get(c.Request.Context(), caller.ID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, dtos.NewUserPayload(user))
}

// UpdateProfile is PUT /user/profile — block-granular merge of profile and
// jobPreferences.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	caller := middleware.MustUser(c)

	var req dtos.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.Users.UpdateProfile(c.Request.Context(), caller.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, dtos.NewUserPayload(user))
}

// UpdateInfo is PUT /user/info — first and last name, both required.
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	caller := middleware.MustUser(c)

	var req dtos.UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.Users.UpdateInfo(c.Request.Context(), caller.ID, req.FirstName, req.LastName)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"fullName":  user.FullName(),
		"updatedAt": user.UpdatedAt,
	})
}
