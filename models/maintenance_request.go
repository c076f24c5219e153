package models

import (
	"time"

	"gorm.io/gorm"
)

type MaintenancePriority string

const (
	PriorityHigh   MaintenancePriority = "high"
	PriorityMedium MaintenancePriority = "medium"
	PriorityLow    MaintenancePriority = "low"
)

func (p MaintenancePriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// Open means the request still holds its room under maintenance.
func (s MaintenanceStatus) Open() bool {
	return s == MaintenancePending || s == MaintenanceInProgress
}

// OpenMaintenanceStatuses is the set used in dependency queries.
var OpenMaintenanceStatuses = []MaintenanceStatus{MaintenancePending, MaintenanceInProgress}

type MaintenanceRequest struct {
	gorm.Model

	RoomID     uint   `gorm:"column:room_id;index" json:"roomId"`
	RoomNumber string `gorm:"column:room_number;size:50" json:"roomNumber"`

	Issue       string              `json:"issue"`
	Description string              `gorm:"type:text" json:"description,omitempty"`
	Priority    MaintenancePriority `gorm:"type:varchar(16)" json:"priority"`
	Assignee    string              `gorm:"size:191" json:"assignee,omitempty"`

	Status MaintenanceStatus `gorm:"type:varchar(16);index" json:"status"`

	// Room status to restore when the request completes or is cancelled.
	// needs_cleaning is preserved across a maintenance episode.
	ReleaseStatus RoomStatus `gorm:"column:release_status;type:varchar(32)" json:"-"`

	ResolvedAt *time.Time `gorm:"column:resolved_at" json:"resolvedAt,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}
