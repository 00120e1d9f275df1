package integration_test

import (
	"net/http"
	"testing"

	"fitforge_backend/internal/events"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/services/dto"
	"fitforge_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAcceptFlow(t *testing.T) {
	ts := newServer(t)
	email := "runner@fitforge.test"
	registerUser(t, ts, email)

	app := fileApplication(t, ts, email, 60)
	assert.Equal(t, "pending", app.Status)
	require.NotNil(t, app.TrainerID)
	t.Logf("Filed application %s", app.ID)

	adminToken := ts.Token(t, adminEmail, models.UserRoleAdmin)
	res, body := ts.SendRequest(t, http.MethodGet, withEmail("/api/v1/admin/applications", adminEmail), adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var pending struct {
		Applications []dto.ApplicationDetailResponse `json:"applications"`
	}
	helpers.DecodeJSON(t, body, &pending)
	require.Len(t, pending.Applications, 1)
	assert.Equal(t, email, pending.Applications[0].User.Email)

	res, body = ts.SendRequest(t, http.MethodGet, withEmail("/api/v1/admin/applications/"+email, adminEmail), adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = resolveApplication(t, ts, app, "accepted")
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	memberToken := ts.Token(t, email, models.UserRoleMember)
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/users/"+email, memberToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var user dto.UserResponse
	helpers.DecodeJSON(t, body, &user)
	assert.Equal(t, "trainer", user.Role)
	require.NotNil(t, user.Trainer)
	assert.Equal(t, *app.TrainerID, user.Trainer.ID)
	assert.Equal(t, 60, user.Trainer.ClassDuration)

	assert.Len(t, ts.Mailer.Sent(), 1)
	assert.Equal(t, []string{events.ApplicationFiled, events.ApplicationResolved}, ts.Events.Keys())

	res, body = ts.SendRequest(t, http.MethodGet, withEmail("/api/v1/applications/me", email), memberToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var mine struct {
		Applications []dto.ApplicationResponse `json:"applications"`
	}
	helpers.DecodeJSON(t, body, &mine)
	require.Len(t, mine.Applications, 1)
	assert.Equal(t, "accepted", mine.Applications[0].Status)
	assert.Equal(t, "Reviewed", mine.Applications[0].Feedback)
}

func TestApplicationConflicts(t *testing.T) {
	ts := newServer(t)
	email := "swimmer@fitforge.test"
	registerUser(t, ts, email)
	app := fileApplication(t, ts, email, 30)

	token := ts.Token(t, email, models.UserRoleMember)
	res, body := ts.SendRequest(t, http.MethodPost, withEmail("/api/v1/applications", email), token, dto.FileApplicationRequest{
		Name: "Again", Skills: []string{"swim"}, AvailableDays: []string{"fri"}, ClassDuration: 30,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "APPLICATION_IN_PROGRESS", errorCode(t, body))

	res, body = resolveApplication(t, ts, app, "rejected")
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = resolveApplication(t, ts, app, "accepted")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "APPLICATION_ALREADY_RESOLVED", errorCode(t, body))

	res, body = resolveApplication(t, ts, app, "pending")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, body))
}

func TestApplicationValidation(t *testing.T) {
	ts := newServer(t)
	email := "lifter@fitforge.test"
	registerUser(t, ts, email)
	token := ts.Token(t, email, models.UserRoleMember)

	res, body := ts.SendRequest(t, http.MethodPost, withEmail("/api/v1/applications", email), token, dto.FileApplicationRequest{
		Name: "Coach", Skills: []string{"lift"}, AvailableDays: []string{"sat"}, ClassDuration: 0,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, body))
}

func TestGuards(t *testing.T) {
	ts := newServer(t)
	member := "member@fitforge.test"
	registerUser(t, ts, member)
	memberToken := ts.Token(t, member, models.UserRoleMember)

	res, body := ts.SendRequest(t, http.MethodGet, withEmail("/api/v1/admin/applications", adminEmail), "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodGet, withEmail("/api/v1/admin/applications", member), memberToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	// acting on behalf of someone else
	res, body = ts.SendRequest(t, http.MethodGet, withEmail("/api/v1/applications/me", "other@fitforge.test"), memberToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "IDENTITY_MISMATCH", errorCode(t, body))

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/"+member, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestPublicEndpoints(t *testing.T) {
	ts := newServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	registerUser(t, ts, "dup@fitforge.test")
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/users", "", dto.RegisterUserRequest{Email: "DUP@fitforge.test", Name: "Dup"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", errorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/subscribers", "", dto.SubscribeRequest{Name: "News", Email: "news@fitforge.test"})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/classes/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "CLASS_NOT_FOUND", errorCode(t, body))
}
