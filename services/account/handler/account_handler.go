package handler

//go:generate mockgen -source=account_handler.go -destination=mock_account_handler.go -package=handler

import (
	"context"
	"net/http"
	"time"

	account "auction-market/internal/accountService"
	"auction-market/internal/auth"
	"auction-market/internal/models"
	"auction-market/services/helpers"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, in account.RegisterInput) (account.Session, error)
	Login(ctx context.Context, email, password string) (account.Session, error)
	CurrentUser(ctx context.Context, userID string) (models.User, error)
	Stats(ctx context.Context, userID string) (models.UserStats, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type AccountHandler struct {
	service      AccountServiceInterface
	cookieTTL    time.Duration
	secureCookie bool
}

// NewAccountHandler creates an AccountHandler. The access token cookie lives for cookieTTL.
func NewAccountHandler(service AccountServiceInterface, cookieTTL time.Duration, secureCookie bool) *AccountHandler {
	return &AccountHandler{service: service, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

// RegisterHandler handles POST /users/signup
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	session, err := h.service.Register(c.Request.Context(), account.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", "failed to register user", err, map[string]any{"email": req.Email})
		return
	}

	h.setTokenCookie(c, session.Token)
	utils.JSONResponse(c, http.StatusCreated, helpers.SessionResponse{User: session.User, Token: session.Token}, "user registered successfully")
	helpers.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{"user_id": session.User.UserID})
}

// LoginHandler handles POST /users/login
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", "login failed", err, map[string]any{"email": req.Email})
		return
	}

	h.setTokenCookie(c, session.Token)
	utils.JSONResponse(c, http.StatusOK, helpers.SessionResponse{User: session.User, Token: session.Token}, "user logged in successfully")
	helpers.LogSuccess("LoginHandler", "user logged in successfully", map[string]any{"user_id": session.User.UserID})
}

// LogoutHandler handles GET /users/logout
func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookie, true)
	utils.JSONResponse(c, http.StatusOK, nil, "logged out successfully")
}

// CurrentUserHandler handles GET /users/me
func (h *AccountHandler) CurrentUserHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "CurrentUserHandler")
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), identity.UserID)
	if err != nil {
		helpers.RespondError(c, "CurrentUserHandler", "failed to load user", err, map[string]any{"user_id": identity.UserID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, user, "user fetched successfully")
}

// StatsHandler handles GET /users/stats
func (h *AccountHandler) StatsHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "StatsHandler")
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), identity.UserID)
	if err != nil {
		helpers.RespondError(c, "StatsHandler", "failed to load stats", err, map[string]any{"user_id": identity.UserID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, stats, "user stats fetched successfully")
}

// UpdateImageHandler handles PUT /users/update-image
func (h *AccountHandler) UpdateImageHandler(c *gin.Context) {
	identity, ok := helpers.RequireIdentity(c, "UpdateImageHandler")
	if !ok {
		return
	}

	var req helpers.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateImageHandler", err)
		return
	}

	user, err := h.service.UpdateAvatar(c.Request.Context(), identity.UserID, req.AvatarURL)
	if err != nil {
		helpers.RespondError(c, "UpdateImageHandler", "failed to update avatar", err, map[string]any{"user_id": identity.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, user, "user image updated successfully")
	helpers.LogSuccess("UpdateImageHandler", "user image updated successfully", map[string]any{"user_id": identity.UserID})
}

// ListUsersHandler handles GET /users/users
func (h *AccountHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListUsersHandler", "failed to list users", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, users, "users fetched successfully")
	helpers.LogSuccess("ListUsersHandler", "users fetched successfully", map[string]any{"count": len(users)})
}

func (h *AccountHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(h.cookieTTL.Seconds()), "/", "", h.secureCookie, true)
}
