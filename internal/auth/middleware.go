package auth

import (
	"errors"
	"net/http"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/models"
	"auction-market/internal/repository"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the cookie carrying the access token for browser clients
	CookieName = "accessToken"

	contextIdentityKey = "identity"
)

// Middleware authenticates the request from a bearer token or the access token cookie
// and loads the caller's account
func Middleware(secret []byte, users repository.UserDB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearer(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(CookieName)
		}
		if token == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "missing token")
			return
		}

		claims, err := ParseJWT(token, secret)
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "invalid token")
			return
		}

		user, err := users.GetUser(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrUserNotFound) {
				utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "account no longer exists")
				return
			}
			utils.Error("auth middleware: failed to load user", map[string]any{"user_id": claims.Subject, "error": err.Error()})
			utils.AbortWithError(c, http.StatusInternalServerError, err, "internal server error")
			return
		}

		c.Set(contextIdentityKey, models.Identity{
			UserID: user.UserID,
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
		})
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. Must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "missing identity")
			return
		}
		if !identity.IsAdmin() {
			utils.AbortWithError(c, http.StatusForbidden, auctionerrors.ErrForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the caller set by Middleware
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(contextIdentityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

// SetIdentity stores the caller on the request context
func SetIdentity(c *gin.Context, identity models.Identity) {
	c.Set(contextIdentityKey, identity)
}
