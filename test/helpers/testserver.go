package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitforge_backend/database/dbtest"
	"fitforge_backend/internal/app"
	"fitforge_backend/internal/auth"
	"fitforge_backend/internal/config"
	"fitforge_backend/internal/email"
	"fitforge_backend/internal/events"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "fitforge-test-secret"

// TestServer is the full HTTP stack over a private in-memory database.
// Side effects run inline so tests can assert on them right after a request.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Mailer *email.MockProvider
	Events *events.Recorder
	Tokens *auth.TokenManager
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.DSN = "sqlite"
	cfg.JWT.Secret = testJWTSecret
	require.NoError(t, cfg.Validate())

	db := dbtest.New(t)
	mailer := email.NewMockProvider(email.NewDefaultTemplates())
	recorder := &events.Recorder{}

	router := app.SetupRouter(app.Dependencies{
		Config:    cfg,
		DB:        db,
		Mailer:    mailer,
		Publisher: recorder,
		Jobs:      workers.Inline{},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server: server,
		DB:     db,
		Mailer: mailer,
		Events: recorder,
		Tokens: auth.NewTokenManager(testJWTSecret, time.Hour),
	}
}

// Token issues a bearer token the server accepts.
func (ts *TestServer) Token(t *testing.T, email string, role models.UserRole) string {
	t.Helper()
	token, err := ts.Tokens.GenerateToken(email, string(role))
	require.NoError(t, err)
	return token
}

// CreateUser inserts a user directly, bypassing the API.
func (ts *TestServer) CreateUser(t *testing.T, email string, role models.UserRole) models.User {
	t.Helper()
	user := models.User{Email: email, Name: "User " + email, Role: role}
	require.NoError(t, ts.DB.Create(&user).Error)
	return user
}

func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "failed to encode request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "failed to build request")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "failed to send request")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "failed to read response body")

	return res, string(resBodyBytes)
}

// DecodeJSON unmarshals a response body into v.
func DecodeJSON(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v), "body: %s", body)
}
