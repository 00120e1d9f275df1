package services

import (
	"fmt"
	"testing"

	"fitforge_backend/internal/appErrors"
	"fitforge_backend/internal/events"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addSlot(t *testing.T, env *testEnv, trainer *models.TrainerProfile, classID string, minutes int) *dto.SlotView {
	t.Helper()
	slot, err := env.slots.AddSlot(env.db, trainer.Email, trainer.ID, &dto.AddSlotRequest{
		Name:     fmt.Sprintf("%d minutes", minutes),
		SlotTime: minutes,
		ClassID:  classID,
	})
	require.NoError(t, err)
	return slot
}

func collectSlots(t *testing.T, env *testEnv, trainerID string) []dto.SlotView {
	t.Helper()
	var views []dto.SlotView
	for view, err := range env.slots.ListSlots(env.db, trainerID) {
		require.NoError(t, err)
		views = append(views, view)
	}
	return views
}

func TestAddSlot_SpendsBudget(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "pia@fitforge.test", 60)
	class := env.createClass(t, "Morning HIIT")

	slot := addSlot(t, env, trainer, class.ID, 45)
	assert.Equal(t, class.Title, slot.SelectedClass)
	assert.Equal(t, 1, slot.Position)
	assert.Empty(t, slot.BookedMembers)
	assert.Equal(t, 15, env.trainer(t, trainer.ID).ClassDuration)

	_, err := env.slots.AddSlot(env.db, trainer.Email, trainer.ID, &dto.AddSlotRequest{Name: "Too long", SlotTime: 30, ClassID: class.ID})
	require.ErrorIs(t, err, appErrors.ErrBudgetExceeded)
	assert.Equal(t, appErrors.KindCapacityExceeded, appErrors.KindOf(err))

	// nothing from the refused slot is persisted
	assert.Equal(t, 15, env.trainer(t, trainer.ID).ClassDuration)
	assert.Len(t, collectSlots(t, env, trainer.ID), 1)

	exact := addSlot(t, env, trainer, class.ID, 15)
	assert.Equal(t, 2, exact.Position)
	assert.Equal(t, 0, env.trainer(t, trainer.ID).ClassDuration)
}

func TestAddSlot_JoinsClassOnce(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "quin@fitforge.test", 120)
	class := env.createClass(t, "Spin")

	addSlot(t, env, trainer, class.ID, 30)
	addSlot(t, env, trainer, class.ID, 30)

	got, err := env.classes.GetClass(env.db, class.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{trainer.ID}, got.TrainerIDs)
}

func TestAddSlot_ClassFull(t *testing.T) {
	env := newTestEnv(t)
	class := env.createClass(t, "Boxing")

	var trainers []*models.TrainerProfile
	for i := 0; i < models.MaxTrainersPerClass; i++ {
		trainer := env.newTrainer(t, fmt.Sprintf("coach%d@fitforge.test", i), 60)
		addSlot(t, env, trainer, class.ID, 10)
		trainers = append(trainers, trainer)
	}

	late := env.newTrainer(t, "late@fitforge.test", 60)
	_, err := env.slots.AddSlot(env.db, late.Email, late.ID, &dto.AddSlotRequest{Name: "Late", SlotTime: 10, ClassID: class.ID})
	require.ErrorIs(t, err, appErrors.ErrClassFull)
	assert.Equal(t, 60, env.trainer(t, late.ID).ClassDuration)

	// trainers already on the class keep adding slots
	addSlot(t, env, trainers[0], class.ID, 10)

	got, err := env.classes.GetClass(env.db, class.ID)
	require.NoError(t, err)
	assert.Len(t, got.TrainerIDs, models.MaxTrainersPerClass)
}

func TestAddSlot_Errors(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "rae@fitforge.test", 60)
	other := env.newTrainer(t, "sam@fitforge.test", 60)
	class := env.createClass(t, "Pilates")

	req := &dto.AddSlotRequest{Name: "Core", SlotTime: 20, ClassID: class.ID}

	_, err := env.slots.AddSlot(env.db, other.Email, trainer.ID, req)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = env.slots.AddSlot(env.db, trainer.Email, "missing", req)
	assert.ErrorIs(t, err, appErrors.ErrTrainerNotFound)

	_, err = env.slots.AddSlot(env.db, trainer.Email, trainer.ID, &dto.AddSlotRequest{Name: "Core", SlotTime: 20, ClassID: "missing"})
	assert.ErrorIs(t, err, appErrors.ErrClassNotFound)

	assert.Equal(t, 60, env.trainer(t, trainer.ID).ClassDuration)
}

func TestRemoveSlot_RestoresBudget(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "tia@fitforge.test", 60)
	class := env.createClass(t, "Yoga Flow")

	slot := addSlot(t, env, trainer, class.ID, 40)
	require.NoError(t, env.slots.RemoveSlot(env.db, trainer.Email, trainer.ID, slot.ID))

	assert.Equal(t, 60, env.trainer(t, trainer.ID).ClassDuration)
	assert.Empty(t, collectSlots(t, env, trainer.ID))

	got, err := env.classes.GetClass(env.db, class.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TrainerIDs)

	err = env.slots.RemoveSlot(env.db, trainer.Email, trainer.ID, slot.ID)
	assert.ErrorIs(t, err, appErrors.ErrSlotNotFound)
}

func TestRemoveSlot_KeepsClassWhileOtherSlotsRemain(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "uma@fitforge.test", 90)
	class := env.createClass(t, "Kettlebells")

	first := addSlot(t, env, trainer, class.ID, 30)
	addSlot(t, env, trainer, class.ID, 30)

	require.NoError(t, env.slots.RemoveSlot(env.db, trainer.Email, trainer.ID, first.ID))

	got, err := env.classes.GetClass(env.db, class.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{trainer.ID}, got.TrainerIDs)
	assert.Equal(t, 60, env.trainer(t, trainer.ID).ClassDuration)
}

func TestRemoveSlot_OtherTrainersSlot(t *testing.T) {
	env := newTestEnv(t)
	owner := env.newTrainer(t, "vic@fitforge.test", 60)
	intruder := env.newTrainer(t, "wes@fitforge.test", 60)
	class := env.createClass(t, "Rowing")
	slot := addSlot(t, env, owner, class.ID, 20)

	err := env.slots.RemoveSlot(env.db, intruder.Email, owner.ID, slot.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	// the intruder's own id does not reach someone else's slot either
	err = env.slots.RemoveSlot(env.db, intruder.Email, intruder.ID, slot.ID)
	assert.ErrorIs(t, err, appErrors.ErrSlotNotFound)

	assert.Len(t, collectSlots(t, env, owner.ID), 1)
}

func TestRemoveSlot_ReleasesBookings(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "xia@fitforge.test", 60)
	class := env.createClass(t, "Stretch")
	slot := addSlot(t, env, trainer, class.ID, 30)

	for _, member := range []string{"m1@fitforge.test", "m2@fitforge.test"} {
		env.register(t, member)
		_, err := env.slots.BookSlot(env.db, member, &dto.BookSlotRequest{
			TrainerID: trainer.ID, SlotID: slot.ID, Price: 10, TransactionID: "tx-" + member,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, env.class(t, class.ID).Booked)

	require.NoError(t, env.slots.RemoveSlot(env.db, trainer.Email, trainer.ID, slot.ID))
	assert.Equal(t, 0, env.class(t, class.ID).Booked)
}

func TestBookSlot(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "yan@fitforge.test", 60)
	class := env.createClass(t, "Zumba")
	slot := addSlot(t, env, trainer, class.ID, 30)
	member := env.register(t, "member@fitforge.test")

	payment, err := env.slots.BookSlot(env.db, "Member@FitForge.test", &dto.BookSlotRequest{
		TrainerID:     trainer.ID,
		SlotID:        slot.ID,
		Price:         25.5,
		TransactionID: "pi_123",
	})
	require.NoError(t, err)

	assert.Equal(t, member.Email, payment.Email)
	assert.Equal(t, class.ID, payment.ClassID)
	assert.Equal(t, slot.ID, payment.SlotID)
	assert.Equal(t, 25.5, payment.Price)
	assert.Equal(t, "pi_123", payment.TransactionID)

	views := collectSlots(t, env, trainer.ID)
	require.Len(t, views, 1)
	assert.Equal(t, []string{member.Email}, views[0].BookedMembers)
	assert.Equal(t, 1, env.class(t, class.ID).Booked)

	keys := env.events.Keys()
	assert.Equal(t, events.SlotBooked, keys[len(keys)-1])

	_, err = env.slots.BookSlot(env.db, member.Email, &dto.BookSlotRequest{
		TrainerID: trainer.ID, SlotID: slot.ID, TransactionID: "pi_456",
	})
	assert.ErrorIs(t, err, appErrors.ErrAlreadyBooked)
	assert.Equal(t, 1, env.class(t, class.ID).Booked)
}

func TestBookSlot_NotFound(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "zed@fitforge.test", 60)
	class := env.createClass(t, "Barre")
	slot := addSlot(t, env, trainer, class.ID, 30)
	env.register(t, "member@fitforge.test")

	cases := []struct {
		name   string
		email  string
		req    dto.BookSlotRequest
		target error
	}{
		{"unknown member", "ghost@fitforge.test", dto.BookSlotRequest{TrainerID: trainer.ID, SlotID: slot.ID}, appErrors.ErrUserNotFound},
		{"unknown trainer", "member@fitforge.test", dto.BookSlotRequest{TrainerID: "missing", SlotID: slot.ID}, appErrors.ErrTrainerNotFound},
		{"unknown slot", "member@fitforge.test", dto.BookSlotRequest{TrainerID: trainer.ID, SlotID: "missing"}, appErrors.ErrSlotNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			req.TransactionID = "tx"
			_, err := env.slots.BookSlot(env.db, tc.email, &req)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestListSlots(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "ada@fitforge.test", 120)
	hiit := env.createClass(t, "HIIT")
	yoga := env.createClass(t, "Yoga")

	addSlot(t, env, trainer, hiit.ID, 20)
	addSlot(t, env, trainer, yoga.ID, 30)
	addSlot(t, env, trainer, hiit.ID, 40)

	views := collectSlots(t, env, trainer.ID)
	require.Len(t, views, 3)
	for i, view := range views {
		assert.Equal(t, i+1, view.Position)
		assert.NotNil(t, view.BookedMembers)
	}
	assert.Equal(t, []string{"HIIT", "Yoga", "HIIT"}, []string{views[0].SelectedClass, views[1].SelectedClass, views[2].SelectedClass})

	// the sequence can be ranged again and stops early on break
	seen := 0
	for _, err := range env.slots.ListSlots(env.db, trainer.ID) {
		require.NoError(t, err)
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
	assert.Len(t, collectSlots(t, env, trainer.ID), 3)
}

func TestListSlots_UnknownTrainer(t *testing.T) {
	env := newTestEnv(t)

	var errs []error
	for _, err := range env.slots.ListSlots(env.db, "missing") {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], appErrors.ErrTrainerNotFound)
}

func TestPaymentsAndBookings(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.newTrainer(t, "bea@fitforge.test", 60)
	other := env.newTrainer(t, "cal@fitforge.test", 60)
	class := env.createClass(t, "TRX")
	slot := addSlot(t, env, trainer, class.ID, 30)
	env.register(t, "member@fitforge.test")

	_, err := env.slots.BookSlot(env.db, "member@fitforge.test", &dto.BookSlotRequest{
		TrainerID: trainer.ID, SlotID: slot.ID, Price: 12, TransactionID: "tx-1",
	})
	require.NoError(t, err)

	payments, err := env.slots.ListTrainerPayments(env.db, trainer.Email, trainer.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "tx-1", payments[0].TransactionID)

	_, err = env.slots.ListTrainerPayments(env.db, other.Email, trainer.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	bookings, err := env.slots.ListMemberBookings(env.db, "MEMBER@fitforge.test")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, slot.ID, bookings[0].SlotID)

	none, err := env.slots.ListMemberBookings(env.db, "nobody@fitforge.test")
	require.NoError(t, err)
	assert.Empty(t, none)
}
