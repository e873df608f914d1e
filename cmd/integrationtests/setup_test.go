package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"auction-market/internal/app"
	"auction-market/internal/config"
	"auction-market/internal/lock"
	"auction-market/internal/notify"
	"auction-market/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestEnv is a fully wired marketplace on top of the in-memory repository
type TestEnv struct {
	Router *gin.Engine
	Repo   *repository.MemoryRepo
	App    *app.App
	Mail   *RecordingSender
}

// RecordingSender keeps every email it is asked to deliver
type RecordingSender struct {
	mu     sync.Mutex
	emails []notify.Email
}

func (s *RecordingSender) Send(_ context.Context, email notify.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, email)
	return nil
}

func (s *RecordingSender) Emails() []notify.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Email(nil), s.emails...)
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		ServiceName: "auction-market-test",
		Env:         "test",
		Storage:     config.StorageConfig{Driver: "memory"},
		Kafka:       config.KafkaConfig{TopicPrefix: "auction"},
		Auth:        config.AuthConfig{JWTSecret: "integration-secret", TokenTTL: time.Hour},
		Auction:     config.AuctionConfig{AutoVerifyListings: true},
		Notify:      config.NotifyConfig{QueueSize: 16},
	}
}

// SetupTestRouter initializes the router with in-memory repository and demo admin for integration testing.
func SetupTestRouter(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	require.NoError(t, app.SeedDemoData(context.Background(), repo))

	mail := &RecordingSender{}
	application := app.New(testConfig(), app.Components{
		Store:  repo,
		Locker: lock.NewKeyedMutex(),
		Sender: mail,
	})
	t.Cleanup(application.Dispatcher.Close)

	return &TestEnv{Router: application.Router, Repo: repo, App: application, Mail: mail}
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, token, reqBody)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// Data returns the "data" object of a response envelope
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response data is not an object: %v", resp)
	return data
}

// Register signs up a user and returns the user id and token
func (e *TestEnv) Register(t *testing.T, name, email string) (string, string) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, e.Router, http.MethodPost, "/api/v1/users/signup", "", map[string]any{
		"name":             name,
		"email":            email,
		"password":         "secret123",
		"confirm_password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := Data(t, resp)
	user := data["user"].(map[string]any)
	return user["user_id"].(string), data["token"].(string)
}

// Login returns a token for an existing account
func (e *TestEnv) Login(t *testing.T, email, password string) string {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, e.Router, http.MethodPost, "/api/v1/users/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return Data(t, resp)["token"].(string)
}

// AdminToken logs in as the seeded admin
func (e *TestEnv) AdminToken(t *testing.T) string {
	return e.Login(t, app.DemoAdminEmail, app.DemoAdminPassword)
}

// CreateListing creates a listing as the seller behind token and returns its id
func (e *TestEnv) CreateListing(t *testing.T, token, title, price string) string {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, e.Router, http.MethodPost, "/api/v1/products", token, map[string]any{
		"title":       title,
		"description": title + " description",
		"price":       price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return Data(t, resp)["listing_id"].(string)
}

// SetCommission verifies a listing as admin with the given commission rate
func (e *TestEnv) SetCommission(t *testing.T, listingID, rate string) {
	t.Helper()
	_, w := ExecuteRequestAndParse(t, e.Router, http.MethodPatch, "/api/v1/products/commission/"+listingID, e.AdminToken(t), map[string]any{
		"commission": rate,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// PlaceBid bids price on a listing and returns the response
func (e *TestEnv) PlaceBid(t *testing.T, token, listingID, price string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	return ExecuteRequestAndParse(t, e.Router, http.MethodPost, "/api/v1/biddings/"+listingID, token, map[string]any{
		"price": price,
	})
}
