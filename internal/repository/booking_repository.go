package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/autoconnect-transport/service-admin/internal/domain"
	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookingNumber  string     `gorm:"uniqueIndex;not null;size:20"`
	UserID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	CarID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status         string     `gorm:"not null;size:30;index"`
	ClientName     string     `gorm:"not null;size:200"`
	ClientEmail    string     `gorm:"not null;size:200"`
	ClientPhone    string     `gorm:"size:30"`
	PickupLocation string     `gorm:"size:300"`
	PickupDate     time.Time  `gorm:"not null"`
	PickupTime     string     `gorm:"size:8"`
	ReturnLocation string     `gorm:"size:300"`
	ReturnDate     time.Time  `gorm:"not null"`
	ReturnTime     string     `gorm:"size:8"`
	RentalType     string     `gorm:"not null;size:20"`
	PriceCents     int64      `gorm:"not null"`
	ExpensesCents  int64      `gorm:"not null;default:0"`
	CancelFeeCents int64      `gorm:"not null;default:0"`
	CancelReason   string     `gorm:"not null;size:500;default:'None'"`
	CancelDate     *time.Time `gorm:""`
	Officer        string     `gorm:"size:200"`
	Version        int64      `gorm:"not null;default:1"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the version matches (current version - 1 since
	// IncrementVersion was called before persisting).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"expenses_cents":   model.ExpensesCents,
			"cancel_fee_cents": model.CancelFeeCents,
			"cancel_reason":    model.CancelReason,
			"cancel_date":      model.CancelDate,
			"officer":          model.Officer,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:             bk.ID(),
		BookingNumber:  bk.BookingNumber(),
		UserID:         bk.UserID(),
		CarID:          bk.CarID(),
		Status:         string(bk.Status()),
		ClientName:     bk.ClientName(),
		ClientEmail:    bk.ClientEmail(),
		ClientPhone:    bk.ClientPhone(),
		PickupLocation: bk.PickupLocation(),
		PickupDate:     bk.PickupDate(),
		PickupTime:     bk.PickupTime(),
		ReturnLocation: bk.ReturnLocation(),
		ReturnDate:     bk.ReturnDate(),
		ReturnTime:     bk.ReturnTime(),
		RentalType:     bk.RentalType(),
		PriceCents:     bk.PriceCents(),
		ExpensesCents:  bk.ExpensesCents(),
		CancelFeeCents: bk.CancelFeeCents(),
		CancelReason:   bk.CancelReason(),
		CancelDate:     bk.CancelDate(),
		Officer:        bk.Officer(),
		Version:        bk.Version(),
		CreatedAt:      bk.CreatedAt(),
		UpdatedAt:      bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.BookingNumber,
		m.UserID,
		m.CarID,
		status,
		m.ClientName,
		m.ClientEmail,
		m.ClientPhone,
		m.PickupLocation,
		m.PickupDate,
		m.PickupTime,
		m.ReturnLocation,
		m.ReturnDate,
		m.ReturnTime,
		m.RentalType,
		m.PriceCents,
		m.ExpensesCents,
		m.CancelFeeCents,
		m.CancelReason,
		m.CancelDate,
		m.Officer,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
