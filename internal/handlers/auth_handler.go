package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/auth"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/middleware"
	"github.com/jobdeck/jobdeck/internal/services"
)

// AuthHandler runs the OAuth redirect flow and session lifecycle.
type AuthHandler struct {
	Providers *auth.Registry
	Accounts  *services.AccountService
	Sessions  *auth.SessionManager
	Config    *config.Config
}

func NewAuthHandler(providers *auth.Registry, accounts *services.AccountService, sessions *auth.SessionManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Providers: providers, Accounts: accounts, Sessions: sessions, Config: cfg}
}

// Begin is GET /auth/:provider — redirects the browser to the provider's
// consent screen. The state token rides along in a short-lived cookie.
func (h *AuthHandler) Begin(c *gin.Context) {
	provider, ok := h.Providers.Get(c.Param("provider"))
	if !ok {
		c.Error(apperr.NotFound("Unknown identity provider"))
		return
	}

	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.StateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// Callback is GET /auth/:provider/callback — completes the code exchange,
// resolves the account and establishes the session. Any failure bounces the
// browser back to the login page rather than rendering an API error.
func (h *AuthHandler) Callback(c *gin.Context) {
	provider, ok := h.Providers.Get(c.Param("provider"))
	if !ok {
		h.failLogin(c)
		return
	}

	state, err := c.Cookie(auth.StateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		log.Printf("oauth callback: state mismatch for provider %s", provider.Name())
		h.failLogin(c)
		return
	}
	c.SetCookie(auth.StateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.failLogin(c)
		return
	}

	identity, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("oauth callback: exchange failed for provider %s: %v", provider.Name(), err)
		h.failLogin(c)
		return
	}

	user, err := h.Accounts.Resolve(c.Request.Context(), identity)
	if err != nil {
		log.Printf("oauth callback: account resolution failed: %v", err)
		h.failLogin(c)
		return
	}

	session, err := h.Sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("oauth callback: session create failed: %v", err)
		h.failLogin(c)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, session.ID, int(h.Sessions.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, h.Config.FrontendURL+"/dashboard")
}

func (h *AuthHandler) failLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, h.Config.FrontendURL+"/login?error=auth_failed")
}

// Me is GET /auth/me — returns the session identity, or null when anonymous.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"fullName":  user.FullName(),
		"avatar":    user.Avatar,
		"provider":  user.Provider,
	}})
}

// Logout is POST /auth/logout — destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil {
		if err := h.Sessions.Destroy(c.Request.Context(), cookie); err != nil {
			c.Error(apperr.New("Logout failed", http.StatusInternalServerError))
			return
		}
	}
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	respondMessage(c, "Logged out successfully")
}
