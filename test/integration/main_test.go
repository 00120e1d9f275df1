package integration_test

import (
	"net/http"
	"net/url"
	"testing"

	"fitforge_backend/internal/models"
	"fitforge_backend/internal/services/dto"
	"fitforge_backend/test/helpers"

	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@fitforge.test"

// withEmail appends the ?email= parameter self-only endpoints expect.
func withEmail(path, email string) string {
	return path + "?email=" + url.QueryEscape(email)
}

func registerUser(t *testing.T, ts *helpers.TestServer, email string) dto.UserResponse {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users", "", dto.RegisterUserRequest{
		Email: email,
		Name:  "Member " + email,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var user dto.UserResponse
	helpers.DecodeJSON(t, body, &user)
	return user
}

func fileApplication(t *testing.T, ts *helpers.TestServer, email string, budget int) dto.ApplicationResponse {
	t.Helper()
	token := ts.Token(t, email, models.UserRoleMember)
	res, body := ts.SendRequest(t, http.MethodPost, withEmail("/api/v1/applications", email), token, dto.FileApplicationRequest{
		Name:          "Coach",
		Experience:    3,
		Skills:        []string{"mobility"},
		AvailableDays: []string{"tue", "thu"},
		ClassDuration: budget,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var app dto.ApplicationResponse
	helpers.DecodeJSON(t, body, &app)
	return app
}

func resolveApplication(t *testing.T, ts *helpers.TestServer, app dto.ApplicationResponse, status string) (*http.Response, string) {
	t.Helper()
	token := ts.Token(t, adminEmail, models.UserRoleAdmin)
	return ts.SendRequest(t, http.MethodPatch, withEmail("/api/v1/admin/applications/"+app.ID, adminEmail), token, dto.ResolveApplicationRequest{
		UserID:   app.UserID,
		Status:   status,
		Feedback: "Reviewed",
	})
}

func createClass(t *testing.T, ts *helpers.TestServer, title string) dto.ClassResponse {
	t.Helper()
	token := ts.Token(t, adminEmail, models.UserRoleAdmin)
	res, body := ts.SendRequest(t, http.MethodPost, withEmail("/api/v1/classes", adminEmail), token, dto.CreateClassRequest{Title: title})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var class dto.ClassResponse
	helpers.DecodeJSON(t, body, &class)
	return class
}

// newServer starts a server with the seeded admin in place.
func newServer(t *testing.T) *helpers.TestServer {
	t.Helper()
	ts := helpers.NewTestServer(t)
	ts.CreateUser(t, adminEmail, models.UserRoleAdmin)
	return ts
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorCode(t *testing.T, body string) string {
	t.Helper()
	var env errorEnvelope
	helpers.DecodeJSON(t, body, &env)
	return env.Error.Code
}
