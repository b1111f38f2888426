package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"excel-analytics-api/internal/infrastructure/jwt"
)

const (
	CtxUserID   = "userID"
	CtxIsAdmin  = "isAdmin"
	CtxUserName = "userName"

	HeaderAuthToken = "x-auth-token"
)

// TokenFromRequest prefers the x-auth-token header and falls back to a
// bearer Authorization header.
func TokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(HeaderAuthToken)); t != "" {
		return t
	}
	authHeader := r.Header.Get("Authorization")
	if tokenStr, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(tokenStr)
	}

	return ""
}

// AuthMiddleware trusts the token claims; there is no per-request user
// lookup.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := TokenFromRequest(c.Request)
		if tokenStr == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing auth token"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Set(CtxUserName, claims.Name)

		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing auth token"},
			)
			return
		}
		if !c.GetBool(CtxIsAdmin) {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "access denied: admin privileges required"},
			)
			return
		}

		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(CtxUserID))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
