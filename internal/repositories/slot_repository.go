package repositories

import (
	"database/sql"
	"errors"

	"fitforge_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrSlotNotFound = errors.New("slot not found")

// SlotRow is a slot joined with the title of its selected class.
type SlotRow struct {
	ID            string
	TrainerID     string
	Name          string
	SlotTime      int
	ClassID       string
	ClassTitle    string
	BookedMembers datatypes.JSONSlice[string]
	Position      int
}

type SlotRepository interface {
	Create(db *gorm.DB, slot *models.Slot) error
	FindForUpdate(db *gorm.DB, trainerID, slotID string) (*models.Slot, error)
	Delete(db *gorm.DB, slotID string) error
	UpdateBookedMembers(db *gorm.DB, slot *models.Slot) error
	NextPosition(db *gorm.DB, trainerID string) (int, error)
	CountForClass(db *gorm.DB, trainerID, classID string) (int64, error)
	// Rows opens a cursor over the trainer's slots in position order.
	// The caller scans each row with ScanRow and must close the cursor.
	Rows(db *gorm.DB, trainerID string) (*sql.Rows, error)
	ScanRow(db *gorm.DB, rows *sql.Rows) (SlotRow, error)
}

type SlotRepositoryImpl struct{}

func NewSlotRepository() SlotRepository {
	return &SlotRepositoryImpl{}
}

func (r *SlotRepositoryImpl) Create(db *gorm.DB, slot *models.Slot) error {
	return db.Create(slot).Error
}

func (r *SlotRepositoryImpl) FindForUpdate(db *gorm.DB, trainerID, slotID string) (*models.Slot, error) {
	var slot models.Slot
	err := forUpdate(db).Where("id = ? AND trainer_id = ?", slotID, trainerID).First(&slot).Error
	if err != nil {
		return nil, notFound(err, ErrSlotNotFound)
	}
	return &slot, nil
}

func (r *SlotRepositoryImpl) Delete(db *gorm.DB, slotID string) error {
	result := db.Delete(&models.Slot{}, "id = ?", slotID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *SlotRepositoryImpl) UpdateBookedMembers(db *gorm.DB, slot *models.Slot) error {
	return db.Model(slot).Update("booked_members", slot.BookedMembers).Error
}

func (r *SlotRepositoryImpl) NextPosition(db *gorm.DB, trainerID string) (int, error) {
	var maxPos sql.NullInt64
	err := db.Model(&models.Slot{}).Where("trainer_id = ?", trainerID).
		Select("MAX(position)").Scan(&maxPos).Error
	if err != nil {
		return 0, err
	}
	if !maxPos.Valid {
		return 1, nil
	}
	return int(maxPos.Int64) + 1, nil
}

func (r *SlotRepositoryImpl) CountForClass(db *gorm.DB, trainerID, classID string) (int64, error) {
	var count int64
	err := db.Model(&models.Slot{}).
		Where("trainer_id = ? AND class_id = ?", trainerID, classID).
		Count(&count).Error
	return count, err
}

func (r *SlotRepositoryImpl) Rows(db *gorm.DB, trainerID string) (*sql.Rows, error) {
	return db.Table("slots").
		Select("slots.id, slots.trainer_id, slots.name, slots.slot_time, slots.class_id, " +
			"COALESCE(classes.title, '') AS class_title, slots.booked_members, slots.position").
		Joins("LEFT JOIN classes ON classes.id = slots.class_id").
		Where("slots.trainer_id = ?", trainerID).
		Order("slots.position ASC").
		Rows()
}

func (r *SlotRepositoryImpl) ScanRow(db *gorm.DB, rows *sql.Rows) (SlotRow, error) {
	var row SlotRow
	err := db.ScanRows(rows, &row)
	return row, err
}
