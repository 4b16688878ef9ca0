package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const generationTimeout = 30 * time.Second

// AIService drafts resumes, cover letters and keyword suggestions through a
// text-generation provider. Without an API key it serves deterministic mock
// payloads of the same shape, so consumers never need to know whether
// generation is live.
type AIService struct {
	client llms.Model
}

// NewAIService builds the generation client once at startup. A missing key or
// a failed client construction degrades to mock mode instead of refusing to
// start.
func NewAIService(ctx context.Context, apiKey string) *AIService {
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set, AI endpoints will serve mock content")
		return &AIService{}
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		log.Printf("Failed to create generation client, falling back to mock content: %v", err)
		return &AIService{}
	}
	return &AIService{client: client}
}

// MockMode reports whether generation runs against canned payloads.
func (s *AIService) MockMode() bool {
	return s.client == nil
}

// GenerateResume returns structured resume content for the given profile.
// The second return value is an explanatory message, set only in mock mode.
func (s *AIService) GenerateResume(ctx context.Context, user *models.User, req *dtos.GenerateResumeRequest) (any, string, error) {
	if req.UserProfile == nil {
		return nil, "", apperr.BadRequest("User profile is required")
	}

	if s.MockMode() {
		return mockResume(req.UserProfile), "Mock resume generated (generation provider not configured)", nil
	}

	prompt := resumePrompt(user, req)
	raw, err := s.generate(ctx, prompt, 0.7, 1500)
	if err != nil {
		return nil, "", apperr.Generation("AI generation", err)
	}
	return parseJSONOrText(raw), "", nil
}

// GenerateCoverLetter returns a cover-letter body for a company and position.
func (s *AIService) GenerateCoverLetter(ctx context.Context, user *models.User, req *dtos.GenerateCoverLetterRequest) (any, string, error) {
	if req.Company == "" || req.Position == "" {
		return nil, "", apperr.BadRequest("Company and position are required")
	}

	if s.MockMode() {
		letter := mockCoverLetter(user, req)
		return map[string]any{"content": letter}, "Mock cover letter generated (generation provider not configured)", nil
	}

	prompt := coverLetterPrompt(user, req)
	raw, err := s.generate(ctx, prompt, 0.7, 800)
	if err != nil {
		return nil, "", apperr.Generation("AI generation", err)
	}
	return map[string]any{"content": raw}, "", nil
}

// OptimizeKeywords extracts keywords and optimization suggestions from a job
// description, optionally against existing resume content.
func (s *AIService) OptimizeKeywords(ctx context.Context, req *dtos.OptimizeKeywordsRequest) (any, string, error) {
	if req.JobDescription == "" {
		return nil, "", apperr.BadRequest("Job description is required")
	}

	if s.MockMode() {
		return mockKeywords(), "Mock keyword analysis (generation provider not configured)", nil
	}

	prompt := keywordsPrompt(req)
	raw, err := s.generate(ctx, prompt, 0.3, 500)
	if err != nil {
		return nil, "", apperr.Generation("AI analysis", err)
	}
	return parseJSONOrText(raw), "", nil
}

func (s *AIService) generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.client, prompt,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return "", err
	}
	if resp == "" {
		return "", fmt.Errorf("provider returned empty content")
	}
	return resp, nil
}

// parseJSONOrText decodes the model output as JSON when possible and falls
// back to wrapping the raw text, so a chatty model never breaks the response
// shape.
func parseJSONOrText(raw string) any {
	cleaned := stripCodeFence(raw)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return parsed
	}
	return map[string]any{"content": raw}
}

// stripCodeFence removes a surrounding markdown code block, which models emit
// even when told not to.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func resumePrompt(user *models.User, req *dtos.GenerateResumeRequest) string {
	style := req.Style
	if style == "" {
		style = "professional"
	}
	return fmt.Sprintf(`Generate a professional resume content for the following user profile:

Name: %s
Skills: %s
Experience: %s
Bio: %s

Job Description: %s

Style: %s

Please provide a JSON response with the following structure:
{
  "summary": "Professional summary paragraph",
  "experience": [{"title": "", "company": "", "duration": "", "achievements": []}],
  "skills": ["skill1", "skill2"],
  "education": [{"degree": "", "institution": "", "year": ""}]
}`,
		user.FullName(),
		orDefault(strings.Join(req.UserProfile.Skills, ", "), "Not specified"),
		orDefault(req.UserProfile.Experience, "Not specified"),
		orDefault(req.UserProfile.Bio, "Not specified"),
		orDefault(req.JobDescription, "General position"),
		style,
	)
}

func coverLetterPrompt(user *models.User, req *dtos.GenerateCoverLetterRequest) string {
	var skills, experience, bio string
	if req.UserProfile != nil {
		skills = strings.Join(req.UserProfile.Skills, ", ")
		experience = req.UserProfile.Experience
		bio = req.UserProfile.Bio
	}
	return fmt.Sprintf(`Write a professional cover letter for:

Applicant: %s
Position: %s
Company: %s

User Profile:
Skills: %s
Experience: %s
Bio: %s

Job Description: %s

Make it personalized, professional, and compelling. The cover letter should be 3-4 paragraphs and highlight relevant skills and experience.`,
		user.FullName(),
		req.Position,
		req.Company,
		orDefault(skills, "Not specified"),
		orDefault(experience, "Not specified"),
		orDefault(bio, "Not specified"),
		orDefault(req.JobDescription, "Not provided"),
	)
}

func keywordsPrompt(req *dtos.OptimizeKeywordsRequest) string {
	var resumeSection string
	if req.ResumeContent != "" {
		resumeSection = "Current Resume Content: " + req.ResumeContent + "\n\n"
	}
	return fmt.Sprintf(`Analyze the following job description and extract key skills, requirements, and keywords:

%s

%sPlease provide a JSON response with:
{
  "keywords": ["list of important keywords/skills"],
  "suggestions": ["specific suggestions for optimization"]
}`, req.JobDescription, resumeSection)
}

func mockResume(profile *models.Profile) *dtos.ResumeContent {
	topSkills := profile.Skills
	if len(topSkills) > 3 {
		topSkills = topSkills[:3]
	}
	summarySkills := strings.Join(topSkills, ", ")
	if summarySkills == "" {
		summarySkills = "various technologies"
	}

	skills := profile.Skills
	if len(skills) == 0 {
		skills = []string{"JavaScript", "React", "Node.js", "Python"}
	}
	title := profile.Experience
	if title == "" {
		title = "Software Developer"
	}

	return &dtos.ResumeContent{
		Summary: fmt.Sprintf("Experienced professional with expertise in %s. Proven track record of delivering high-quality results and driving innovation.", summarySkills),
		Experience: []dtos.ResumeExperience{
			{
				Title:    title,
				Company:  "Previous Company",
				Duration: "2020 - Present",
				Achievements: []string{
					"Led development of key features resulting in 25% performance improvement",
					"Collaborated with cross-functional teams to deliver projects on time",
					"Mentored junior developers and conducted code reviews",
				},
			},
		},
		Skills: skills,
		Education: []dtos.ResumeEducation{
			{
				Degree:      "Bachelor of Science in Computer Science",
				Institution: "University Name",
				Year:        "2018",
			},
		},
	}
}

func mockCoverLetter(user *models.User, req *dtos.GenerateCoverLetterRequest) string {
	background := "technology"
	if req.UserProfile != nil && len(req.UserProfile.Skills) > 0 {
		top := req.UserProfile.Skills
		if len(top) > 2 {
			top = top[:2]
		}
		background = strings.Join(top, " and ")
	}

	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my strong interest in the %s position at %s. With my background in %s, I am confident that I would be a valuable addition to your team.

In my previous experience, I have developed strong skills in problem-solving and collaboration. I am particularly excited about the opportunity to contribute to %s's mission and work with your innovative team.

I would welcome the opportunity to discuss how my skills and enthusiasm can contribute to your team's success. Thank you for considering my application.

Sincerely,
%s`, req.Position, req.Company, background, req.Company, user.FullName())
}

func mockKeywords() *dtos.KeywordSuggestions {
	return &dtos.KeywordSuggestions{
		Keywords: []string{"JavaScript", "React", "Node.js", "teamwork", "problem-solving"},
		Suggestions: []string{
			"Include more specific technical skills mentioned in the job posting",
			"Highlight collaborative experience",
			"Emphasize problem-solving abilities",
		},
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
