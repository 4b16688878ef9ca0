package dtos

import "github.com/jobdeck/jobdeck/internal/models"

// GenerateResumeRequest is the body of POST /ai/generate-resume.
type GenerateResumeRequest struct {
	JobDescription string          `json:"jobDescription"`
	UserProfile    *models.Profile `json:"userProfile"`
	Style          string          `json:"style"`
}

// GenerateCoverLetterRequest is the body of POST /ai/generate-cover-letter.
type GenerateCoverLetterRequest struct {
	JobDescription string          `json:"jobDescription"`
	Company        string          `json:"company" binding:"required"`
	Position       string          `json:"position" binding:"required"`
	UserProfile    *models.Profile `json:"userProfile"`
}

// OptimizeKeywordsRequest is the body of POST /ai/optimize-keywords.
type OptimizeKeywordsRequest struct {
	JobDescription string `json:"jobDescription" binding:"required"`
	ResumeContent  string `json:"resumeContent"`
}

// ResumeExperience is one experience entry of a generated resume.
type ResumeExperience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements"`
}

// ResumeEducation is one education entry of a generated resume.
type ResumeEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ResumeContent is the structured resume shape. Live generations are parsed
// into the same shape clients receive in mock mode.
type ResumeContent struct {
	Summary    string             `json:"summary"`
	Experience []ResumeExperience `json:"experience"`
	Skills     []string           `json:"skills"`
	Education  []ResumeEducation  `json:"education"`
}

// KeywordSuggestions is the keyword-analysis payload.
type KeywordSuggestions struct {
	Keywords    []string `json:"keywords"`
	Suggestions []string `json:"suggestions"`
}
