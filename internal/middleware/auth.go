package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/jobdeck/jobdeck/internal/auth"
	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/gorm"
)

const userContextKey = "currentUser"

// ResolveUser turns the session cookie into the caller's user record and
// stashes it on the request context. Requests without a valid session pass
// through anonymously; RequireAuth decides whether that is acceptable.
func ResolveUser(db *gorm.DB, sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(auth.SessionCookie)
		if err != nil {
			c.Next()
			return
		}

		session, err := sessions.Resolve(c.Request.Context(), cookie)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, "id = ?", session.UserID).Error; err != nil {
			c.Next()
			return
		}

		c.Set(userContextKey, &user)
		c.Next()
	}
}

// RequireAuth rejects requests that did not resolve to a user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			c.Error(apperr.Unauthorized("Authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the resolved caller, if any.
func UserFrom(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// MustUser returns the caller on routes behind RequireAuth.
func MustUser(c *gin.Context) *models.User {
	user, _ := UserFrom(c)
	return user
}
