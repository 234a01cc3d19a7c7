package middlewares

import (
	"net/http"
	"strings"

	"github.com/chirpnet/chirp/auth"
	"github.com/chirpnet/chirp/model"
	"github.com/gin-gonic/gin"
)

// subKey is the context key holding the authenticated user's id.
const subKey = "sub"

var (
	// authService performs access token validation for every guarded route.
	// Before any middleware runs, make sure it's initialized via Setup.
	authService *auth.Service
)

// Setup initializes all package scoped variables that are needed to perform
// middleware functionalities. This function must be called before any
// middleware is used.
func Setup(s *auth.Service) {
	authService = s
}

// extractToken pulls the access token out of the Authorization header, or
// the "token" query param for clients that cannot set headers (websocket
// handshakes, media embeds).
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// JWT guards a route behind a valid access token. It resolves the token to
// the user's id and stores it as "sub" on the request context. It returns
// 401 on token not provided or token invalid (wrong token or expired).
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": model.ErrLoginRequired.Message,
			})
			c.Abort()
			return
		}

		userID, err := authService.Authenticate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(subKey, userID)
		c.Next()
	}
}

// OptionalJWT resolves the user id when a valid token is present but lets
// anonymous requests through. Routes behind it serve public content and
// leave the final authorization decision to the visibility policy.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if userID, err := authService.Authenticate(token); err == nil {
				c.Set(subKey, userID)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(subKey)
}
