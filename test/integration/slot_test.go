package integration_test

import (
	"net/http"
	"testing"

	"fitforge_backend/internal/models"
	"fitforge_backend/internal/services/dto"
	"fitforge_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// becomeTrainer runs the whole application flow and returns the trainer id.
func becomeTrainer(t *testing.T, ts *helpers.TestServer, email string, budget int) string {
	t.Helper()
	registerUser(t, ts, email)
	app := fileApplication(t, ts, email, budget)
	res, body := resolveApplication(t, ts, app, "accepted")
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	return *app.TrainerID
}

func listSlots(t *testing.T, ts *helpers.TestServer, trainerID string) []dto.SlotView {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/trainers/"+trainerID+"/slots", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		Slots []dto.SlotView `json:"slots"`
	}
	helpers.DecodeJSON(t, body, &resp)
	return resp.Slots
}

func TestSlotAndBookingFlow(t *testing.T) {
	ts := newServer(t)
	coach := "coach@fitforge.test"
	trainerID := becomeTrainer(t, ts, coach, 60)
	class := createClass(t, ts, "Evening Spin")
	coachToken := ts.Token(t, coach, models.UserRoleTrainer)
	slotsPath := withEmail("/api/v1/trainers/"+trainerID+"/slots", coach)

	res, body := ts.SendRequest(t, http.MethodPost, slotsPath, coachToken, dto.AddSlotRequest{Name: "Warmup", SlotTime: 45, ClassID: class.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var slot dto.SlotView
	helpers.DecodeJSON(t, body, &slot)
	assert.Equal(t, "Evening Spin", slot.SelectedClass)

	res, body = ts.SendRequest(t, http.MethodPost, slotsPath, coachToken, dto.AddSlotRequest{Name: "Main", SlotTime: 30, ClassID: class.ID})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "BUDGET_EXCEEDED", errorCode(t, body))

	views := listSlots(t, ts, trainerID)
	require.Len(t, views, 1)
	assert.Equal(t, slot.ID, views[0].ID)

	member := "member@fitforge.test"
	registerUser(t, ts, member)
	memberToken := ts.Token(t, member, models.UserRoleMember)

	res, body = ts.SendRequest(t, http.MethodPost, withEmail("/api/v1/bookings", member), memberToken, dto.BookSlotRequest{
		TrainerID: trainerID, SlotID: slot.ID, Price: 20, TransactionID: "pi_777",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, withEmail("/api/v1/bookings", member), memberToken, dto.BookSlotRequest{
		TrainerID: trainerID, SlotID: slot.ID, Price: 20, TransactionID: "pi_778",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "ALREADY_BOOKED", errorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodGet, withEmail("/api/v1/bookings", member), memberToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var bookings struct {
		Bookings []dto.PaymentResponse `json:"bookings"`
	}
	helpers.DecodeJSON(t, body, &bookings)
	require.Len(t, bookings.Bookings, 1)
	assert.Equal(t, "pi_777", bookings.Bookings[0].TransactionID)

	res, body = ts.SendRequest(t, http.MethodGet, withEmail("/api/v1/trainers/"+trainerID+"/payments", coach), coachToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var payments struct {
		Payments []dto.PaymentResponse `json:"payments"`
	}
	helpers.DecodeJSON(t, body, &payments)
	assert.Len(t, payments.Payments, 1)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/classes/"+class.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var got dto.ClassResponse
	helpers.DecodeJSON(t, body, &got)
	assert.Equal(t, 1, got.Booked)
	assert.Equal(t, []string{trainerID}, got.TrainerIDs)

	res, body = ts.SendRequest(t, http.MethodDelete, withEmail("/api/v1/trainers/"+trainerID+"/slots/"+slot.ID, coach), coachToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Empty(t, listSlots(t, ts, trainerID))

	// the freed budget is spendable again
	res, body = ts.SendRequest(t, http.MethodPost, slotsPath, coachToken, dto.AddSlotRequest{Name: "Main", SlotTime: 60, ClassID: class.ID})
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
}

func TestTrainerRoutesRequireOwnership(t *testing.T) {
	ts := newServer(t)
	ownerID := becomeTrainer(t, ts, "owner@fitforge.test", 60)
	becomeTrainer(t, ts, "rival@fitforge.test", 60)
	class := createClass(t, ts, "Boxing Basics")

	rival := "rival@fitforge.test"
	rivalToken := ts.Token(t, rival, models.UserRoleTrainer)
	res, body := ts.SendRequest(t, http.MethodPost, withEmail("/api/v1/trainers/"+ownerID+"/slots", rival), rivalToken, dto.AddSlotRequest{
		Name: "Hijack", SlotTime: 10, ClassID: class.ID,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	// members cannot reach trainer routes at all
	member := "plain@fitforge.test"
	registerUser(t, ts, member)
	res, _ = ts.SendRequest(t, http.MethodPost, withEmail("/api/v1/trainers/"+ownerID+"/slots", member), ts.Token(t, member, models.UserRoleTrainer), dto.AddSlotRequest{
		Name: "Nope", SlotTime: 10, ClassID: class.ID,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/trainers/missing/slots", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "TRAINER_NOT_FOUND", errorCode(t, body))
}
