package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/middleware"
	"github.com/jobdeck/jobdeck/internal/services"
)

// AIHandler exposes the generation endpoints. The generation client is an
// injected dependency of the service; whether it is live or mock is invisible
// here.
type AIHandler struct {
	AI *services.AIService
}

func NewAIHandler(ai *services.AIService) *AIHandler {
	return &AIHandler{AI: ai}
}

// GenerateResume is POST /ai/generate-resume.
func (h *AIHandler) GenerateResume(c *gin.Context) {
	user := middleware.MustUser(c)

	var req dtos.GenerateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	data, message, err := h.AI.GenerateResume(c.Request.Context(), user, &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondWithMessage(c, data, message)
}

// GenerateCoverLetter is POST /ai/generate-cover-letter.
func (h *AIHandler) GenerateCoverLetter(c *gin.Context) {
	user := middleware.MustUser(c)

	var req dtos.GenerateCoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	data, message, err := h.AI.GenerateCoverLetter(c.Request.Context(), user, &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondWithMessage(c, data, message)
}

// OptimizeKeywords is POST /ai/optimize-keywords.
func (h *AIHandler) OptimizeKeywords(c *gin.Context) {
	var req dtos.OptimizeKeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	data, message, err := h.AI.OptimizeKeywords(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	respondWithMessage(c, data, message)
}
