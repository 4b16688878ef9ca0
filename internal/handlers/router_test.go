package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/internal/auth"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/database"
	"github.com/jobdeck/jobdeck/internal/middleware"
	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/services"
	"gorm.io/gorm"
)

type testApp struct {
	router    *gin.Engine
	db        *gorm.DB
	sessions  *auth.SessionManager
	providers *auth.Registry
}

// newTestApp wires the whole HTTP surface the way cmd/api does, against an
// in-memory database and a mock-mode generation client.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{FrontendURL: "http://localhost:3000", Env: "test"}
	sessions := auth.NewSessionManager(db, time.Hour)
	providers := auth.NewRegistry()

	authHandler := NewAuthHandler(providers, services.NewAccountService(db), sessions, cfg)
	userHandler := NewUserHandler(services.NewUserService(db))
	applicationHandler := NewApplicationHandler(services.NewApplicationService(db))
	aiHandler := NewAIHandler(services.NewAIService(context.Background(), ""))

	r := gin.New()
	r.Use(middleware.ErrorHandler(false))
	r.Use(middleware.ResolveUser(db, sessions))

	r.GET("/health", HealthCheck)

	authRoutes := r.Group("/auth")
	{
		authRoutes.GET("/me", authHandler.Me)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/:provider", authHandler.Begin)
		authRoutes.GET("/:provider/callback", authHandler.Callback)
	}

	applications := r.Group("/applications", middleware.RequireAuth())
	{
		applications.GET("", applicationHandler.List)
		applications.POST("", applicationHandler.Create)
		applications.GET("/stats/overview", applicationHandler.Stats)
		applications.GET("/:id", applicationHandler.Get)
		applications.PUT("/:id", applicationHandler.Update)
		applications.DELETE("/:id", applicationHandler.Delete)
	}

	user := r.Group("/user", middleware.RequireAuth())
	{
		user.GET("/profile", userHandler.GetProfile)
		user.PUT("/profile", userHandler.UpdateProfile)
		user.PUT("/info", userHandler.UpdateInfo)
	}

	ai := r.Group("/ai", middleware.RequireAuth())
	{
		ai.POST("/generate-resume", aiHandler.GenerateResume)
		ai.POST("/generate-cover-letter", aiHandler.GenerateCoverLetter)
		ai.POST("/optimize-keywords", aiHandler.OptimizeKeywords)
	}

	return &testApp{router: r, db: db, sessions: sessions, providers: providers}
}

// signIn creates a user plus a live session and returns both.
func (a *testApp) signIn(t *testing.T, email string) (*models.User, *models.Session) {
	t.Helper()
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Provider:  models.ProviderGoogle,
	}
	if err := a.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	session, err := a.sessions.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return user, session
}

func (a *testApp) request(t *testing.T, method, path string, body string, session *models.Session) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: session.ID})
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v (%s)", err, w.Body.String())
	}
	return body
}
