package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-lifecycle-backend/models"
)

// BookingService is the booking ledger: it owns booking records and amount
// computation. It never decides room status itself; reservations and
// cancellations are delegated to the Coordinator.
type BookingService struct {
	DB          *gorm.DB
	Coordinator *Coordinator
}

func NewBookingService(db *gorm.DB, coordinator *Coordinator) *BookingService {
	return &BookingService{DB: db, Coordinator: coordinator}
}

// Quote is a priced stay for a room and date range.
type Quote struct {
	RoomID      uint      `json:"roomId"`
	RoomNumber  string    `json:"roomNumber"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	Nights      int       `json:"nights"`
	NightlyRate float64   `json:"nightlyRate"`
	Total       float64   `json:"total"`
}

// GetQuote computes nights × nightly price without touching any state.
func (s *BookingService) GetQuote(roomID uint, checkIn, checkOut time.Time) (*Quote, error) {
	nights, err := stayNights(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("room %d", roomID)
		}
		return nil, persistErr("load room", err)
	}

	return &Quote{
		RoomID:      room.ID,
		RoomNumber:  room.RoomNumber,
		CheckIn:     DateOnly(checkIn),
		CheckOut:    DateOnly(checkOut),
		Nights:      nights,
		NightlyRate: room.Price,
		Total:       float64(nights) * room.Price,
	}, nil
}

// Create submits a booking intent; the atomic reserve step belongs to the
// Coordinator. On success the booking is pending with the computed total.
func (s *BookingService) Create(in ReserveInput) (*models.Booking, error) {
	return s.Coordinator.Reserve(in)
}

// Cancel delegates to the Coordinator so the room is released
// consistently.
func (s *BookingService) Cancel(id uint) (*models.Booking, error) {
	return s.Coordinator.Cancel(id)
}

// BookingFilter narrows a listing; zero values mean "no filter".
type BookingFilter struct {
	GuestID string
	RoomID  uint
	Status  models.BookingStatus
	Limit   int
	Offset  int
}

// List returns a finite, restartable page of bookings, newest first.
func (s *BookingService) List(f BookingFilter) ([]models.Booking, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	q := s.DB.Model(&models.Booking{}).Preload("Room")
	if f.GuestID != "" {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, validationf("invalid status filter %q", f.Status)
		}
		q = q.Where("status = ?", f.Status)
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(f.Offset).Find(&bookings).Error; err != nil {
		return nil, persistErr("list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("booking %d", id)
		}
		return nil, persistErr("load booking", err)
	}
	return &booking, nil
}

// UpdateInput carries staff-only field edits. Status never changes on this
// path; lifecycle events go through the Coordinator.
type UpdateInput struct {
	CheckIn         *time.Time
	CheckOut        *time.Time
	GuestCount      *int
	SpecialRequests *string
}

// Update edits a booking's fields and re-prices the stay when the dates
// move. Checked-out and cancelled bookings are immutable.
func (s *BookingService) Update(id uint, in UpdateInput) (*models.Booking, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("booking %d", id)
			}
			return persistErr("load booking", err)
		}
		if !booking.Status.Active() {
			return invalidTransitionf("booking %d is %s and cannot be edited", id, booking.Status)
		}

		var room models.Room
		if err := tx.First(&room, booking.RoomID).Error; err != nil {
			return persistErr("load room", err)
		}

		updates := map[string]interface{}{}

		if in.CheckIn != nil || in.CheckOut != nil {
			ci := booking.CheckIn
			co := booking.CheckOut
			if in.CheckIn != nil {
				ci = *in.CheckIn
			}
			if in.CheckOut != nil {
				co = *in.CheckOut
			}
			nights, err := stayNights(ci, co)
			if err != nil {
				return err
			}
			overlap, err := activeOverlapExists(tx, booking.RoomID, ci, co, booking.ID)
			if err != nil {
				return err
			}
			if overlap {
				return fmt.Errorf("%w: room %s already has a booking in that range", ErrRoomUnavailable, room.RoomNumber)
			}
			updates["check_in"] = DateOnly(ci)
			updates["check_out"] = DateOnly(co)
			updates["nights"] = nights
			updates["total_amount"] = float64(nights) * room.Price
		}

		if in.GuestCount != nil {
			if *in.GuestCount <= 0 {
				return validationf("guest count must be positive")
			}
			if room.MaxOccupancy > 0 && *in.GuestCount > room.MaxOccupancy {
				return validationf("guest count %d exceeds room capacity %d", *in.GuestCount, room.MaxOccupancy)
			}
			updates["guest_count"] = *in.GuestCount
		}

		if in.SpecialRequests != nil {
			updates["special_requests"] = strings.TrimSpace(*in.SpecialRequests)
		}

		if len(updates) == 0 {
			return validationf("nothing to update")
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return persistErr("update booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// CompletePayment moves the payment axis pending → completed exactly once.
func (s *BookingService) CompletePayment(id uint, method, transactionRef string) (*models.Booking, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, validationf("payment method is required")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("booking %d", id)
			}
			return persistErr("load booking", err)
		}
		if booking.Status == models.BookingCancelled {
			return invalidTransitionf("cannot complete payment on a cancelled booking")
		}
		if booking.PaymentStatus == models.PaymentCompleted {
			return invalidTransitionf("payment already completed for booking %d", id)
		}
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"payment_status":  models.PaymentCompleted,
			"payment_method":  method,
			"transaction_ref": strings.TrimSpace(transactionRef),
		}).Error; err != nil {
			return persistErr("update payment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}
