package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	account "auction-market/internal/accountService"
	"auction-market/internal/auctionerrors"
	"auction-market/internal/auth"
	"auction-market/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var caller = models.Identity{UserID: "u1", Email: "alice@example.com", Name: "Alice", Role: models.RoleUser}

func newRouter(h *AccountHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	withIdentity := func(c *gin.Context) {
		auth.SetIdentity(c, caller)
		c.Next()
	}
	users := router.Group("/users")
	users.POST("/signup", h.RegisterHandler)
	users.POST("/login", h.LoginHandler)
	users.GET("/logout", withIdentity, h.LogoutHandler)
	users.GET("/me", withIdentity, h.CurrentUserHandler)
	users.GET("/stats", withIdentity, h.StatsHandler)
	users.PUT("/update-image", withIdentity, h.UpdateImageHandler)
	users.GET("/users", withIdentity, h.ListUsersHandler)
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	return send(router, http.MethodPost, path, body)
}

func send(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	router := newRouter(NewAccountHandler(mockService, time.Hour, false))

	mockService.EXPECT().Register(gomock.Any(), account.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pass", ConfirmPassword: "pass"}).
		Return(account.Session{User: models.User{UserID: "u1", Email: "alice@example.com", PasswordHash: "hash"}, Token: "tok"}, nil)

	w := post(router, "/users/signup", `{"name":"Alice","email":"alice@example.com","password":"pass","confirm_password":"pass"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotContains(t, w.Body.String(), "hash")
	cookie := tokenCookie(w)
	require.NotNil(t, cookie)
	require.Equal(t, "tok", cookie.Value)
	require.True(t, cookie.HttpOnly)

	mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(account.Session{}, fmt.Errorf("service: failed to register: %w", auctionerrors.ErrEmailTaken))
	w = post(router, "/users/signup", `{"name":"Alice","email":"alice@example.com","password":"pass","confirm_password":"pass"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	router := newRouter(NewAccountHandler(mockService, time.Hour, false))

	mockService.EXPECT().Login(gomock.Any(), "alice@example.com", "pass").Return(account.Session{User: models.User{UserID: "u1"}, Token: "tok"}, nil)
	w := post(router, "/users/login", `{"email":"alice@example.com","password":"pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, tokenCookie(w))

	mockService.EXPECT().Login(gomock.Any(), "alice@example.com", "bad").Return(account.Session{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials))
	w = post(router, "/users/login", `{"email":"alice@example.com","password":"bad"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	mockService.EXPECT().Login(gomock.Any(), "ghost@example.com", "pass").Return(account.Session{}, fmt.Errorf("service: %w", auctionerrors.ErrUnknownEmail))
	w = post(router, "/users/login", `{"email":"ghost@example.com","password":"pass"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = post(router, "/users/login", `{"email":"alice@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newRouter(NewAccountHandler(NewMockAccountServiceInterface(ctrl), time.Hour, false))
	w := get(router, "/users/logout")
	require.Equal(t, http.StatusOK, w.Code)
	cookie := tokenCookie(w)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Less(t, cookie.MaxAge, 0)
}

func TestCurrentUserAndStatsHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	router := newRouter(NewAccountHandler(mockService, time.Hour, false))

	mockService.EXPECT().CurrentUser(gomock.Any(), "u1").Return(models.User{UserID: "u1", Name: "Alice"}, nil)
	w := get(router, "/users/me")
	require.Equal(t, http.StatusOK, w.Code)

	mockService.EXPECT().Stats(gomock.Any(), "u1").Return(models.UserStats{Balance: decimal.NewFromInt(90), ProductsCreated: 2, ItemsWon: 1}, nil)
	w = get(router, "/users/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	require.Equal(t, "90", data["balance"])
	require.Equal(t, float64(2), data["products_created"])
	require.Equal(t, float64(1), data["items_won"])
}

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	router := newRouter(NewAccountHandler(mockService, time.Hour, false))

	mockService.EXPECT().ListUsers(gomock.Any()).Return([]models.User{{UserID: "u1"}, {UserID: "u2"}}, nil)
	w := get(router, "/users/users")
	require.Equal(t, http.StatusOK, w.Code)

	mockService.EXPECT().ListUsers(gomock.Any()).Return(nil, fmt.Errorf("service: %w - no users found", auctionerrors.ErrUserNotFound))
	w = get(router, "/users/users")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateImageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	router := newRouter(NewAccountHandler(mockService, time.Hour, false))

	tests := []struct {
		name       string
		body       string
		mockSetup  func()
		wantStatus int
	}{
		{
			name: "Valid_URL",
			body: `{"avatar_url":"https://cdn.example.com/alice.png"}`,
			mockSetup: func() {
				mockService.EXPECT().UpdateAvatar(gomock.Any(), "u1", "https://cdn.example.com/alice.png").
					Return(models.User{UserID: "u1", AvatarURL: "https://cdn.example.com/alice.png"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing_URL",
			body:       `{}`,
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Rejected_URL",
			body: `{"avatar_url":"ftp://example.com/a.png"}`,
			mockSetup: func() {
				mockService.EXPECT().UpdateAvatar(gomock.Any(), "u1", "ftp://example.com/a.png").
					Return(models.User{}, fmt.Errorf("service: %w - avatar_url must be an absolute http or https URL", auctionerrors.ErrInvalidUser))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()
			w := send(router, http.MethodPut, "/users/update-image", tc.body)
			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())

			if tc.wantStatus == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Equal(t, "https://cdn.example.com/alice.png", resp["data"].(map[string]any)["avatar_url"])
			}
		})
	}
}
