package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/services"
	"github.com/tamohar/foundationbackend/utils"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey = "userID"
	EmailKey  = "email"
	RoleKey   = "role"
	UserKey   = "user"
	ClaimsKey = "claims"
)

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *utils.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token. Clients get
// the same 401 whatever the reason.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c)
			return
		}

		user, claims, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthenticated) {
				slog.Error("authentication failed", "request_id", GetRequestID(c.Request.Context()), "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication unavailable"})
				return
			}
			abortUnauthorized(c)
			return
		}

		c.Set(UserIDKey, user.ID.Hex())
		c.Set(EmailKey, user.Email)
		c.Set(RoleKey, string(user.Role))
		c.Set(UserKey, user)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		for _, r := range roles {
			if role == string(r) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func CurrentClaims(c *gin.Context) *utils.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
