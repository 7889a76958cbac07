package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

// SlotRecord is the SQL row for a slot. The unique index on (date, time) is
// what rejects concurrent duplicate inserts.
type SlotRecord struct {
	ID     uint   `gorm:"primaryKey"`
	Date   string `gorm:"size:32;not null;uniqueIndex:idx_slots_date_time"`
	Time   string `gorm:"size:32;not null;uniqueIndex:idx_slots_date_time"`
	Booked bool   `gorm:"not null;default:false"`

	ClientFirstName string `gorm:"size:100"`
	ClientLastName  string `gorm:"size:100"`
	ClientEmail     string `gorm:"size:255"`
	ClientService   string `gorm:"size:100"`
}

func (SlotRecord) TableName() string { return "slots" }

func (rec SlotRecord) toModel() models.Slot {
	s := models.Slot{Date: rec.Date, Time: rec.Time, Booked: rec.Booked}
	if rec.Booked {
		s.Client = &models.Client{
			FirstName: rec.ClientFirstName,
			LastName:  rec.ClientLastName,
			Email:     rec.ClientEmail,
			Service:   rec.ClientService,
		}
	}
	return s
}

type SlotGormRepository struct {
	db *gorm.DB
}

// NewSlotGormRepository expects a *gorm.DB opened with TranslateError so that
// unique violations surface as gorm.ErrDuplicatedKey.
func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) Migrate() error {
	return r.db.AutoMigrate(&SlotRecord{})
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *SlotGormRepository) List(ctx context.Context) ([]models.Slot, error) {
	var recs []SlotRecord
	if err := r.db.WithContext(ctx).
		Order("date ASC").
		Order("time ASC").
		Find(&recs).Error; err != nil {
		return nil, storageErr("list slots", err)
	}

	out := make([]models.Slot, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toModel())
	}
	// Database collations may not compare byte-wise.
	domain.Sort(out)
	return out, nil
}

func (r *SlotGormRepository) Find(ctx context.Context, key domain.Key) (*models.Slot, error) {
	var rec SlotRecord
	err := r.db.WithContext(ctx).
		Where("date = ? AND time = ?", key.Date, key.Time).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find slot", err)
	}

	s := rec.toModel()
	return &s, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *SlotGormRepository) Insert(ctx context.Context, key domain.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	rec := SlotRecord{Date: key.Date, Time: key.Time}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return storageErr("insert slot", err)
	}
	return nil
}

func (r *SlotGormRepository) Delete(ctx context.Context, key domain.Key) error {
	if err := r.db.WithContext(ctx).
		Where("date = ? AND time = ?", key.Date, key.Time).
		Delete(&SlotRecord{}).Error; err != nil {
		return storageErr("delete slot", err)
	}
	return nil
}

func (r *SlotGormRepository) Book(ctx context.Context, key domain.Key, client models.Client) error {
	res := r.db.WithContext(ctx).
		Model(&SlotRecord{}).
		Where("date = ? AND time = ? AND booked = ?", key.Date, key.Time, false).
		Updates(map[string]any{
			"booked":            true,
			"client_first_name": client.FirstName,
			"client_last_name":  client.LastName,
			"client_email":      client.Email,
			"client_service":    client.Service,
		})
	if res.Error != nil {
		return storageErr("book slot", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSlotUnavailable
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
