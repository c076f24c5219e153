package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-lifecycle-backend/models"
)

// Coordinator is the single authority for Room.Status changes driven by
// booking, maintenance and cleaning events. Every multi-entity transition
// runs inside one database transaction, and the room-side precondition is a
// conditional UPDATE (compare-and-set), so partial updates and double
// reservations are structurally impossible.
type Coordinator struct {
	DB  *gorm.DB
	bus *eventBus
}

func NewCoordinator(db *gorm.DB) *Coordinator {
	return &Coordinator{DB: db, bus: newEventBus()}
}

// Subscribe returns a change-notification stream of committed entity
// changes. Delivery is best-effort per subscriber (see eventBus).
func (c *Coordinator) Subscribe(buffer int) (<-chan Event, func()) {
	return c.bus.Subscribe(buffer)
}

// casRoom applies updates only if the room currently has one of the
// expected statuses. A miss returns the caller-supplied error untouched.
func casRoom(tx *gorm.DB, roomID uint, from []models.RoomStatus, updates map[string]interface{}, miss error) error {
	res := tx.Model(&models.Room{}).
		Where("id = ? AND status IN ?", roomID, from).
		Updates(updates)
	if res.Error != nil {
		return persistErr("update room status", res.Error)
	}
	if res.RowsAffected == 0 {
		return miss
	}
	return nil
}

func loadRoom(tx *gorm.DB, roomID uint) (models.Room, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, notFoundf("room %d", roomID)
		}
		return room, persistErr("load room", err)
	}
	return room, nil
}

// ReserveInput is a guest's booking intent.
type ReserveInput struct {
	RoomID          uint
	GuestID         string
	GuestName       string
	GuestCount      int
	CheckIn         time.Time
	CheckOut        time.Time
	SpecialRequests string
}

// Reserve atomically checks availability and creates a pending booking,
// moving the room available → pending. Of two racing reservations for the
// same room at most one succeeds; the loser gets ErrRoomUnavailable and no
// booking row is created.
func (c *Coordinator) Reserve(in ReserveInput) (*models.Booking, error) {
	if strings.TrimSpace(in.GuestID) == "" {
		return nil, validationf("guest id is required")
	}
	nights, err := stayNights(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if in.GuestCount <= 0 {
		in.GuestCount = 1
	}

	var booking models.Booking
	var events []Event

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		room, err := loadRoom(tx, in.RoomID)
		if err != nil {
			return err
		}
		if room.MaxOccupancy > 0 && in.GuestCount > room.MaxOccupancy {
			return validationf("guest count %d exceeds room capacity %d", in.GuestCount, room.MaxOccupancy)
		}

		// Serialization point: only one of two concurrent reserves can
		// move the room out of available.
		if err := casRoom(tx, room.ID,
			[]models.RoomStatus{models.RoomAvailable},
			map[string]interface{}{"status": models.RoomPending},
			fmt.Errorf("%w: room %s is not available", ErrRoomUnavailable, room.RoomNumber),
		); err != nil {
			return err
		}

		overlap, err := activeOverlapExists(tx, room.ID, in.CheckIn, in.CheckOut, 0)
		if err != nil {
			return err
		}
		if overlap {
			return fmt.Errorf("%w: room %s already has a booking in that range", ErrRoomUnavailable, room.RoomNumber)
		}

		booking = models.Booking{
			RoomID:          room.ID,
			GuestID:         strings.TrimSpace(in.GuestID),
			GuestName:       strings.TrimSpace(in.GuestName),
			GuestCount:      in.GuestCount,
			CheckIn:         DateOnly(in.CheckIn),
			CheckOut:        DateOnly(in.CheckOut),
			Nights:          nights,
			TotalAmount:     float64(nights) * room.Price,
			SpecialRequests: strings.TrimSpace(in.SpecialRequests),
			Status:          models.BookingPending,
			PaymentStatus:   models.PaymentPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return persistErr("create booking", err)
		}

		events = append(events,
			Event{Kind: EventBookingCreated, RoomID: room.ID, BookingID: booking.ID, BookingStatus: booking.Status},
			Event{Kind: EventRoomStatusChanged, RoomID: room.ID, RoomStatus: models.RoomPending},
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.bus.Publish(events...)
	return c.reloadBooking(booking.ID)
}

// Confirm moves booking pending → confirmed and room pending → booked.
func (c *Coordinator) Confirm(bookingID uint) (*models.Booking, error) {
	return c.transitionBooking(bookingID, "confirm")
}

// CheckIn moves booking pending|confirmed → checked_in; the room ends up
// booked either way.
func (c *Coordinator) CheckIn(bookingID uint) (*models.Booking, error) {
	return c.transitionBooking(bookingID, "check_in")
}

// CheckOut moves booking checked_in → checked_out and the room to
// needs_cleaning: every vacated room requires cleaning before reuse.
func (c *Coordinator) CheckOut(bookingID uint) (*models.Booking, error) {
	return c.transitionBooking(bookingID, "check_out")
}

// Cancel releases the room back to available. Legal from any active
// booking status; a second cancel is an invalid transition.
func (c *Coordinator) Cancel(bookingID uint) (*models.Booking, error) {
	return c.transitionBooking(bookingID, "cancel")
}

func (c *Coordinator) transitionBooking(bookingID uint, event string) (*models.Booking, error) {
	now := time.Now().UTC()
	var events []Event

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("booking %d", bookingID)
			}
			return persistErr("load booking", err)
		}

		if !models.ValidBookingTransition(event, booking.Status) {
			return invalidTransitionf("%s not allowed from booking status %s", event, booking.Status)
		}

		updates := map[string]interface{}{}
		var next models.BookingStatus
		var roomFrom []models.RoomStatus
		var roomTo models.RoomStatus

		switch event {
		case "confirm":
			next = models.BookingConfirmed
			roomFrom = []models.RoomStatus{models.RoomPending}
			roomTo = models.RoomBooked
		case "check_in":
			next = models.BookingCheckedIn
			updates["checked_in_at"] = now
			// Direct pending → checked_in still has the room in pending;
			// after a confirm the room is already booked and stays put.
			if booking.Status == models.BookingPending {
				roomFrom = []models.RoomStatus{models.RoomPending}
				roomTo = models.RoomBooked
			}
		case "check_out":
			next = models.BookingCheckedOut
			updates["checked_out_at"] = now
			roomFrom = []models.RoomStatus{models.RoomBooked}
			roomTo = models.RoomNeedsCleaning
		case "cancel":
			next = models.BookingCancelled
			updates["cancelled_at"] = now
			roomFrom = []models.RoomStatus{models.RoomPending, models.RoomBooked}
			roomTo = models.RoomAvailable
		default:
			return invalidTransitionf("unknown event %s", event)
		}
		updates["status"] = next

		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return persistErr("update booking", err)
		}

		if len(roomFrom) > 0 {
			if err := casRoom(tx, booking.RoomID, roomFrom,
				map[string]interface{}{"status": roomTo},
				invalidTransitionf("room %d not in expected status for %s", booking.RoomID, event),
			); err != nil {
				return err
			}
			events = append(events, Event{Kind: EventRoomStatusChanged, RoomID: booking.RoomID, RoomStatus: roomTo})
		}

		events = append(events, Event{Kind: EventBookingTransition, RoomID: booking.RoomID, BookingID: booking.ID, BookingStatus: next})
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.bus.Publish(events...)
	return c.reloadBooking(bookingID)
}

func (c *Coordinator) reloadBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := c.DB.Preload("Room").First(&booking, id).Error; err != nil {
		return nil, persistErr("reload booking", err)
	}
	return &booking, nil
}

// StartMaintenanceInput describes a new maintenance request.
type StartMaintenanceInput struct {
	RoomID      uint
	Issue       string
	Description string
	Priority    models.MaintenancePriority
	Assignee    string
}

// StartMaintenance takes an available or needs_cleaning room out of
// service and opens a maintenance request. The pre-maintenance status is
// recorded so the room releases back to the same state.
func (c *Coordinator) StartMaintenance(in StartMaintenanceInput) (*models.MaintenanceRequest, error) {
	if strings.TrimSpace(in.Issue) == "" {
		return nil, validationf("issue is required")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, validationf("invalid priority %q", in.Priority)
	}

	var req models.MaintenanceRequest
	var events []Event

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		room, err := loadRoom(tx, in.RoomID)
		if err != nil {
			return err
		}
		if room.Status != models.RoomAvailable && room.Status != models.RoomNeedsCleaning {
			return invalidTransitionf("cannot start maintenance while room %s is %s", room.RoomNumber, room.Status)
		}

		req = models.MaintenanceRequest{
			RoomID:        room.ID,
			RoomNumber:    room.RoomNumber,
			Issue:         strings.TrimSpace(in.Issue),
			Description:   strings.TrimSpace(in.Description),
			Priority:      in.Priority,
			Assignee:      strings.TrimSpace(in.Assignee),
			Status:        models.MaintenancePending,
			ReleaseStatus: room.Status,
		}
		if err := tx.Create(&req).Error; err != nil {
			return persistErr("create maintenance request", err)
		}

		if err := casRoom(tx, room.ID,
			[]models.RoomStatus{models.RoomAvailable, models.RoomNeedsCleaning},
			map[string]interface{}{"status": models.RoomMaintenance, "active_maintenance_id": req.ID},
			invalidTransitionf("room %s changed status concurrently", room.RoomNumber),
		); err != nil {
			return err
		}

		events = append(events,
			Event{Kind: EventMaintenanceChanged, RoomID: room.ID, RequestID: req.ID, MaintenanceStatus: req.Status},
			Event{Kind: EventRoomStatusChanged, RoomID: room.ID, RoomStatus: models.RoomMaintenance},
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.bus.Publish(events...)
	return &req, nil
}

// BeginMaintenanceWork marks a pending request in_progress. The room stays
// under maintenance.
func (c *Coordinator) BeginMaintenanceWork(requestID uint) (*models.MaintenanceRequest, error) {
	var req models.MaintenanceRequest
	var events []Event

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("maintenance request %d", requestID)
			}
			return persistErr("load maintenance request", err)
		}
		if !models.ValidMaintenanceTransition("begin_work", req.Status) {
			return invalidTransitionf("begin_work not allowed from maintenance status %s", req.Status)
		}
		if err := tx.Model(&req).Update("status", models.MaintenanceInProgress).Error; err != nil {
			return persistErr("update maintenance request", err)
		}
		req.Status = models.MaintenanceInProgress
		events = append(events, Event{Kind: EventMaintenanceChanged, RoomID: req.RoomID, RequestID: req.ID, MaintenanceStatus: req.Status})
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.bus.Publish(events...)
	return &req, nil
}

// ResolveMaintenance completes the request and releases the room back to
// its recorded pre-maintenance status (needs_cleaning if it was in an
// occupied context, else available).
func (c *Coordinator) ResolveMaintenance(requestID uint) (*models.MaintenanceRequest, error) {
	return c.releaseMaintenance(requestID, "resolve", models.MaintenanceCompleted)
}

// CancelMaintenance withdraws the request; the room is released exactly as
// on resolve.
func (c *Coordinator) CancelMaintenance(requestID uint) (*models.MaintenanceRequest, error) {
	return c.releaseMaintenance(requestID, "cancel", models.MaintenanceCancelled)
}

func (c *Coordinator) releaseMaintenance(requestID uint, event string, to models.MaintenanceStatus) (*models.MaintenanceRequest, error) {
	now := time.Now().UTC()
	var req models.MaintenanceRequest
	var events []Event

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("maintenance request %d", requestID)
			}
			return persistErr("load maintenance request", err)
		}
		if !models.ValidMaintenanceTransition(event, req.Status) {
			return invalidTransitionf("%s not allowed from maintenance status %s", event, req.Status)
		}

		updates := map[string]interface{}{"status": to}
		if to == models.MaintenanceCompleted {
			updates["resolved_at"] = now
		}
		if err := tx.Model(&req).Updates(updates).Error; err != nil {
			return persistErr("update maintenance request", err)
		}

		release := req.ReleaseStatus
		if release != models.RoomAvailable && release != models.RoomNeedsCleaning {
			release = models.RoomAvailable
		}
		if err := casRoom(tx, req.RoomID,
			[]models.RoomStatus{models.RoomMaintenance},
			map[string]interface{}{"status": release, "active_maintenance_id": nil},
			invalidTransitionf("room %d is no longer under maintenance", req.RoomID),
		); err != nil {
			return err
		}

		req.Status = to
		events = append(events,
			Event{Kind: EventMaintenanceChanged, RoomID: req.RoomID, RequestID: req.ID, MaintenanceStatus: to},
			Event{Kind: EventRoomStatusChanged, RoomID: req.RoomID, RoomStatus: release},
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.bus.Publish(events...)
	return &req, nil
}

// CompleteCleaning moves a room needs_cleaning → available.
func (c *Coordinator) CompleteCleaning(roomID uint) (*models.Room, error) {
	var events []Event

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		room, err := loadRoom(tx, roomID)
		if err != nil {
			return err
		}
		if err := casRoom(tx, room.ID,
			[]models.RoomStatus{models.RoomNeedsCleaning},
			map[string]interface{}{"status": models.RoomAvailable},
			invalidTransitionf("room %s is %s, not needs_cleaning", room.RoomNumber, room.Status),
		); err != nil {
			return err
		}
		events = append(events, Event{Kind: EventRoomStatusChanged, RoomID: room.ID, RoomStatus: models.RoomAvailable})
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.bus.Publish(events...)

	var room models.Room
	if err := c.DB.First(&room, roomID).Error; err != nil {
		return nil, persistErr("reload room", err)
	}
	return &room, nil
}
