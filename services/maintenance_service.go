package services

import (
	"errors"

	"gorm.io/gorm"

	"hotel-lifecycle-backend/models"
)

// MaintenanceService is the read side of maintenance requests for staff
// dashboards. All status changes go through the Coordinator.
type MaintenanceService struct {
	DB *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{DB: db}
}

type MaintenanceFilter struct {
	RoomID   uint
	Status   models.MaintenanceStatus
	Priority models.MaintenancePriority
	Limit    int
	Offset   int
}

func (s *MaintenanceService) List(f MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	q := s.DB.Model(&models.MaintenanceRequest{})
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		if !f.Priority.Valid() {
			return nil, validationf("invalid priority filter %q", f.Priority)
		}
		q = q.Where("priority = ?", f.Priority)
	}

	var requests []models.MaintenanceRequest
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(f.Offset).Find(&requests).Error; err != nil {
		return nil, persistErr("list maintenance requests", err)
	}
	return requests, nil
}

func (s *MaintenanceService) GetByID(id uint) (*models.MaintenanceRequest, error) {
	var req models.MaintenanceRequest
	if err := s.DB.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("maintenance request %d", id)
		}
		return nil, persistErr("load maintenance request", err)
	}
	return &req, nil
}
