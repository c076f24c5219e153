package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomStatus is the instantaneous lifecycle state of a room. Exactly one
// status at a time; only the lifecycle coordinator may change it in response
// to booking, maintenance or cleaning events.
type RoomStatus string

const (
	RoomAvailable     RoomStatus = "available"
	RoomPending       RoomStatus = "pending"
	RoomBooked        RoomStatus = "booked"
	RoomNeedsCleaning RoomStatus = "needs_cleaning"
	RoomMaintenance   RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomPending, RoomBooked, RoomNeedsCleaning, RoomMaintenance:
		return true
	}
	return false
}

type RoomType string

const (
	RoomTypeStandard     RoomType = "standard"
	RoomTypeDeluxe       RoomType = "deluxe"
	RoomTypeSuite        RoomType = "suite"
	RoomTypePresidential RoomType = "presidential"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypePresidential:
		return true
	}
	return false
}

type Room struct {
	gorm.Model

	RoomNumber string     `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Type       RoomType   `json:"type" gorm:"type:varchar(32)"`
	Status     RoomStatus `json:"status" gorm:"type:varchar(32);default:'available';index"`

	Price        float64        `json:"price"`
	MaxOccupancy int            `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Amenities    datatypes.JSON `json:"amenities,omitempty"`
	Description  string         `json:"description" gorm:"type:text"`
	ImageURL     string         `json:"imageUrl" gorm:"column:image_url"`

	// Set while Status == maintenance, cleared when the request is
	// resolved or cancelled.
	ActiveMaintenanceID *uint `json:"activeMaintenanceId,omitempty" gorm:"column:active_maintenance_id"`
}
