package services

import (
	"errors"
	"fmt"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"hotel-lifecycle-backend/models"
)

// RoomService is the room registry: source of truth for inventory and
// instantaneous status. Lifecycle status changes go through the
// Coordinator, never through Update.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// RoomFilter narrows a listing; zero values mean "no filter".
type RoomFilter struct {
	Status models.RoomStatus
	Type   models.RoomType
	Limit  int
	Offset int
}

func isDuplicateKey(err error) bool {
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	// sqlite (tests) reports unique violations as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create registers a new room with status available. A duplicate room
// number is a validation failure.
func (s *RoomService) Create(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return validationf("room number is required")
	}
	if room.Type != "" && !room.Type.Valid() {
		return validationf("invalid room type %q", room.Type)
	}
	if room.Price <= 0 {
		return validationf("price must be positive")
	}
	if room.MaxOccupancy <= 0 {
		room.MaxOccupancy = 2
	}
	room.Status = models.RoomAvailable
	room.ActiveMaintenanceID = nil

	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateKey(err) {
			return validationf("room number %q already exists", room.RoomNumber)
		}
		return persistErr("create room", err)
	}
	return nil
}

// List returns a finite, restartable page of room snapshots ordered by
// room number.
func (s *RoomService) List(f RoomFilter) ([]models.Room, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	q := s.DB.Model(&models.Room{})
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, validationf("invalid status filter %q", f.Status)
		}
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		if !f.Type.Valid() {
			return nil, validationf("invalid type filter %q", f.Type)
		}
		q = q.Where("type = ?", f.Type)
	}

	var rooms []models.Room
	if err := q.Order("room_number").Limit(limit).Offset(f.Offset).Find(&rooms).Error; err != nil {
		return nil, persistErr("list rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("room %d", id)
		}
		return nil, persistErr("load room", err)
	}
	return &room, nil
}

func (s *RoomService) GetByNumber(number string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Where("room_number = ?", strings.TrimSpace(number)).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("room %s", number)
		}
		return nil, persistErr("load room", err)
	}
	return &room, nil
}

// Update applies attribute edits. Status is rejected unless force is set
// (administrative correction); lifecycle transitions belong to the
// Coordinator.
func (s *RoomService) Update(id uint, patch map[string]interface{}, force bool) (*models.Room, error) {
	delete(patch, "id")
	delete(patch, "created_at")
	delete(patch, "updated_at")
	delete(patch, "deleted_at")
	delete(patch, "active_maintenance_id")

	if raw, ok := patch["status"]; ok {
		if !force {
			return nil, validationf("status changes go through lifecycle operations")
		}
		st, _ := raw.(string)
		if !models.RoomStatus(st).Valid() {
			return nil, validationf("invalid status %q", st)
		}
	}
	if raw, ok := patch["type"]; ok {
		t, _ := raw.(string)
		if !models.RoomType(t).Valid() {
			return nil, validationf("invalid room type %q", t)
		}
	}
	if raw, ok := patch["price"]; ok {
		if p, ok := raw.(float64); !ok || p <= 0 {
			return nil, validationf("price must be positive")
		}
	}
	if len(patch) == 0 {
		return nil, validationf("nothing to update")
	}

	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(room).Updates(patch).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, validationf("room number already exists")
		}
		return nil, persistErr("update room", err)
	}
	return s.GetByID(id)
}

// Delete soft-deletes a room. Live dependents (active bookings or open
// maintenance requests) make this a conflict.
func (s *RoomService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := loadRoom(tx, id); err != nil {
			return err
		}

		var activeBookings int64
		if err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND status IN ?", id, models.ActiveBookingStatuses).
			Count(&activeBookings).Error; err != nil {
			return persistErr("count active bookings", err)
		}
		if activeBookings > 0 {
			return fmt.Errorf("%w: room %d has %d active booking(s)", ErrConflict, id, activeBookings)
		}

		var openMaintenance int64
		if err := tx.Model(&models.MaintenanceRequest{}).
			Where("room_id = ? AND status IN ?", id, models.OpenMaintenanceStatuses).
			Count(&openMaintenance).Error; err != nil {
			return persistErr("count maintenance requests", err)
		}
		if openMaintenance > 0 {
			return fmt.Errorf("%w: room %d has open maintenance", ErrConflict, id)
		}

		if err := tx.Delete(&models.Room{}, id).Error; err != nil {
			return persistErr("delete room", err)
		}
		return nil
	})
}
