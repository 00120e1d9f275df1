package services

import (
	"testing"
	"time"

	"fitforge_backend/database/dbtest"
	"fitforge_backend/internal/email"
	"fitforge_backend/internal/events"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/repositories"
	"fitforge_backend/internal/services/dto"
	"fitforge_backend/internal/workers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// steppingClock returns fixedNow and moves one minute forward on every call,
// so rows written in sequence never share a timestamp.
func steppingClock() func() time.Time {
	current := fixedNow.Add(-time.Minute)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

type testEnv struct {
	db        *gorm.DB
	mailer    *email.MockProvider
	events    *events.Recorder
	users     UserService
	classes   ClassService
	apps      *ApplicationServiceImpl
	slots     *SlotServiceImpl
	userRepo  repositories.UserRepository
	classRepo repositories.ClassRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.New(t)
	mailer := email.NewMockProvider(email.NewDefaultTemplates())
	recorder := &events.Recorder{}
	jobs := workers.Inline{}

	userRepo := repositories.NewUserRepository()
	trainerRepo := repositories.NewTrainerRepository()
	slotRepo := repositories.NewSlotRepository()
	classRepo := repositories.NewClassRepository()
	applicationRepo := repositories.NewApplicationRepository()
	paymentRepo := repositories.NewPaymentRepository()

	clock := steppingClock()
	apps := NewApplicationService(userRepo, trainerRepo, applicationRepo, mailer, recorder, jobs).(*ApplicationServiceImpl)
	apps.now = clock
	slots := NewSlotService(userRepo, trainerRepo, slotRepo, classRepo, paymentRepo, recorder, jobs).(*SlotServiceImpl)
	slots.now = clock

	return &testEnv{
		db:        db,
		mailer:    mailer,
		events:    recorder,
		users:     NewUserService(userRepo, repositories.NewSubscriberRepository()),
		classes:   NewClassService(classRepo),
		apps:      apps,
		slots:     slots,
		userRepo:  userRepo,
		classRepo: classRepo,
	}
}

func (e *testEnv) register(t *testing.T, email string) *dto.UserResponse {
	t.Helper()
	user, err := e.users.RegisterUser(e.db, &dto.RegisterUserRequest{Email: email, Name: "Test " + email})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createClass(t *testing.T, title string) *dto.ClassResponse {
	t.Helper()
	class, err := e.classes.CreateClass(e.db, &dto.CreateClassRequest{Title: title})
	require.NoError(t, err)
	return class
}

func applicationRequest(budget int) *dto.FileApplicationRequest {
	return &dto.FileApplicationRequest{
		Name:          "Coach",
		Experience:    4,
		Skills:        []string{"hiit", "yoga"},
		AvailableDays: []string{"mon", "wed"},
		Biography:     "Ten years on the floor.",
		ClassDuration: budget,
	}
}

// newTrainer registers a user, files an application and accepts it.
func (e *testEnv) newTrainer(t *testing.T, email string, budget int) *models.TrainerProfile {
	t.Helper()
	user := e.register(t, email)

	app, err := e.apps.FileApplication(e.db, email, applicationRequest(budget))
	require.NoError(t, err)

	_, err = e.apps.ResolveApplication(e.db, app.ID, &dto.ResolveApplicationRequest{
		UserID: user.ID,
		Status: string(models.ApplicationStatusAccepted),
	})
	require.NoError(t, err)

	return e.trainer(t, *app.TrainerID)
}

func (e *testEnv) trainer(t *testing.T, id string) *models.TrainerProfile {
	t.Helper()
	var trainer models.TrainerProfile
	require.NoError(t, e.db.First(&trainer, "id = ?", id).Error)
	return &trainer
}

func (e *testEnv) class(t *testing.T, id string) *models.Class {
	t.Helper()
	var class models.Class
	require.NoError(t, e.db.First(&class, "id = ?", id).Error)
	return &class
}
