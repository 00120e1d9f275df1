package services

import (
	"iter"
	"slices"
	"time"

	"fitforge_backend/internal/appErrors"
	"fitforge_backend/internal/events"
	"fitforge_backend/internal/models"
	"fitforge_backend/internal/repositories"
	"fitforge_backend/internal/services/dto"

	"gorm.io/gorm"
)

// SlotService allocates trainer slots against classes. A trainer's
// class_duration is the remaining budget in minutes: adding a slot spends
// slot_time, removing it gives it back.
type SlotService interface {
	AddSlot(db *gorm.DB, callerEmail, trainerID string, req *dto.AddSlotRequest) (*dto.SlotView, error)
	RemoveSlot(db *gorm.DB, callerEmail, trainerID, slotID string) error
	BookSlot(db *gorm.DB, memberEmail string, req *dto.BookSlotRequest) (*dto.PaymentResponse, error)
	// ListSlots is lazy: every range over the result runs a fresh query.
	ListSlots(db *gorm.DB, trainerID string) iter.Seq2[dto.SlotView, error]
	ListTrainerPayments(db *gorm.DB, callerEmail, trainerID string) ([]*dto.PaymentResponse, error)
	ListMemberBookings(db *gorm.DB, memberEmail string) ([]*dto.PaymentResponse, error)
}

type SlotServiceImpl struct {
	userRepo    repositories.UserRepository
	trainerRepo repositories.TrainerRepository
	slotRepo    repositories.SlotRepository
	classRepo   repositories.ClassRepository
	paymentRepo repositories.PaymentRepository
	publisher   events.Publisher
	jobs        JobRunner
	now         func() time.Time
}

func NewSlotService(
	userRepo repositories.UserRepository,
	trainerRepo repositories.TrainerRepository,
	slotRepo repositories.SlotRepository,
	classRepo repositories.ClassRepository,
	paymentRepo repositories.PaymentRepository,
	publisher events.Publisher,
	jobs JobRunner,
) SlotService {
	return &SlotServiceImpl{
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
		slotRepo:    slotRepo,
		classRepo:   classRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		jobs:        jobs,
		now:         time.Now,
	}
}

func (s *SlotServiceImpl) AddSlot(db *gorm.DB, callerEmail, trainerID string, req *dto.AddSlotRequest) (*dto.SlotView, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, appErrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	trainer, err := s.lockOwnTrainer(tx, callerEmail, trainerID)
	if err != nil {
		return nil, err
	}

	class, err := s.classRepo.FindByIDForUpdate(tx, req.ClassID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if req.SlotTime > trainer.ClassDuration {
		return nil, appErrors.ErrBudgetExceeded.WithDetails(map[string]int{
			"remaining": trainer.ClassDuration,
			"requested": req.SlotTime,
		})
	}

	trainerIDs, err := s.classRepo.TrainerIDs(tx, class.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if !slices.Contains(trainerIDs, trainer.ID) {
		if len(trainerIDs) >= models.MaxTrainersPerClass {
			return nil, appErrors.ErrClassFull
		}
		if err := s.classRepo.AddTrainer(tx, class.ID, trainer.ID); err != nil {
			return nil, appErrors.InternalError(err)
		}
	}

	position, err := s.slotRepo.NextPosition(tx, trainer.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	slot := &models.Slot{
		TrainerID:     trainer.ID,
		ClassID:       class.ID,
		Name:          req.Name,
		SlotTime:      req.SlotTime,
		BookedMembers: []string{},
		Position:      position,
	}
	if err := s.slotRepo.Create(tx, slot); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if err := s.trainerRepo.AdjustClassDuration(tx, trainer.ID, -req.SlotTime); err != nil {
		return nil, handleRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, appErrors.InternalError(err)
	}

	view := buildSlotView(repositories.SlotRow{
		ID:            slot.ID,
		TrainerID:     slot.TrainerID,
		Name:          slot.Name,
		SlotTime:      slot.SlotTime,
		ClassID:       class.ID,
		ClassTitle:    class.Title,
		BookedMembers: slot.BookedMembers,
		Position:      slot.Position,
	})
	return &view, nil
}

func (s *SlotServiceImpl) RemoveSlot(db *gorm.DB, callerEmail, trainerID, slotID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return appErrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	trainer, err := s.lockOwnTrainer(tx, callerEmail, trainerID)
	if err != nil {
		return err
	}

	slot, err := s.slotRepo.FindForUpdate(tx, trainer.ID, slotID)
	if err != nil {
		return handleRepoError(err)
	}

	if err := s.slotRepo.Delete(tx, slot.ID); err != nil {
		return handleRepoError(err)
	}
	if err := s.trainerRepo.AdjustClassDuration(tx, trainer.ID, slot.SlotTime); err != nil {
		return handleRepoError(err)
	}

	// The trainer stays on the class while another of their slots uses it.
	remaining, err := s.slotRepo.CountForClass(tx, trainer.ID, slot.ClassID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if remaining == 0 {
		if err := s.classRepo.RemoveTrainer(tx, slot.ClassID, trainer.ID); err != nil {
			return appErrors.InternalError(err)
		}
	}

	if booked := len(slot.BookedMembers); booked > 0 {
		err := s.classRepo.AdjustBooked(tx, slot.ClassID, -booked)
		if err != nil && !appErrors.Is(err, repositories.ErrClassNotFound) {
			return appErrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// BookSlot appends the member to the slot, bumps the class counter and
// records the payment. The gateway transaction id comes from the client.
func (s *SlotServiceImpl) BookSlot(db *gorm.DB, memberEmail string, req *dto.BookSlotRequest) (*dto.PaymentResponse, error) {
	memberEmail = normalizeEmail(memberEmail)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, appErrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByEmail(tx, memberEmail); err != nil {
		return nil, handleRepoError(err)
	}
	if _, err := s.trainerRepo.FindByID(tx, req.TrainerID); err != nil {
		return nil, handleRepoError(err)
	}

	slot, err := s.slotRepo.FindForUpdate(tx, req.TrainerID, req.SlotID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if slot.HasMember(memberEmail) {
		return nil, appErrors.ErrAlreadyBooked
	}

	slot.BookedMembers = append(slot.BookedMembers, memberEmail)
	if err := s.slotRepo.UpdateBookedMembers(tx, slot); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if err := s.classRepo.AdjustBooked(tx, slot.ClassID, 1); err != nil {
		return nil, handleRepoError(err)
	}

	payment := &models.Payment{
		TrainerID:     slot.TrainerID,
		ClassID:       slot.ClassID,
		SlotID:        slot.ID,
		Email:         memberEmail,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		PaidAt:        s.now().UTC(),
	}
	if err := s.paymentRepo.Create(tx, payment); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, appErrors.InternalError(err)
	}

	publishAfterCommit(s.jobs, s.publisher, events.SlotBooked, events.SlotBookedEvent{
		PaymentID:     payment.ID,
		TrainerID:     payment.TrainerID,
		ClassID:       payment.ClassID,
		SlotID:        payment.SlotID,
		Email:         payment.Email,
		Price:         payment.Price,
		TransactionID: payment.TransactionID,
		PaidAt:        payment.PaidAt,
	})

	return buildPaymentResponse(payment), nil
}

func (s *SlotServiceImpl) ListSlots(db *gorm.DB, trainerID string) iter.Seq2[dto.SlotView, error] {
	return func(yield func(dto.SlotView, error) bool) {
		if _, err := s.trainerRepo.FindByID(db, trainerID); err != nil {
			yield(dto.SlotView{}, handleRepoError(err))
			return
		}

		rows, err := s.slotRepo.Rows(db, trainerID)
		if err != nil {
			yield(dto.SlotView{}, appErrors.InternalError(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			row, err := s.slotRepo.ScanRow(db, rows)
			if err != nil {
				yield(dto.SlotView{}, appErrors.InternalError(err))
				return
			}
			if !yield(buildSlotView(row), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(dto.SlotView{}, appErrors.InternalError(err))
		}
	}
}

func (s *SlotServiceImpl) ListTrainerPayments(db *gorm.DB, callerEmail, trainerID string) ([]*dto.PaymentResponse, error) {
	trainer, err := s.trainerRepo.FindByID(db, trainerID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if trainer.Email != normalizeEmail(callerEmail) {
		return nil, appErrors.ErrForbidden
	}

	payments, err := s.paymentRepo.ListByTrainer(db, trainer.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return buildPaymentResponses(payments), nil
}

func (s *SlotServiceImpl) ListMemberBookings(db *gorm.DB, memberEmail string) ([]*dto.PaymentResponse, error) {
	payments, err := s.paymentRepo.ListByEmail(db, normalizeEmail(memberEmail))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return buildPaymentResponses(payments), nil
}

// lockOwnTrainer loads the trainer row FOR UPDATE and checks it belongs to the caller.
func (s *SlotServiceImpl) lockOwnTrainer(tx *gorm.DB, callerEmail, trainerID string) (*models.TrainerProfile, error) {
	trainer, err := s.trainerRepo.FindByIDForUpdate(tx, trainerID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if trainer.Email != normalizeEmail(callerEmail) {
		return nil, appErrors.ErrForbidden
	}
	return trainer, nil
}

func buildPaymentResponses(payments []models.Payment) []*dto.PaymentResponse {
	result := make([]*dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		result = append(result, buildPaymentResponse(&payments[i]))
	}
	return result
}
