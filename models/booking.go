package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

// Active means the booking still holds its room.
func (s BookingStatus) Active() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn:
		return true
	}
	return false
}

// ActiveBookingStatuses is the set used in overlap queries.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCheckedIn}

// PaymentStatus is a separate axis from the booking lifecycle.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomID uint `gorm:"column:room_id;index" json:"roomId"`

	// Guest identity comes from the external auth provider.
	GuestID   string `gorm:"column:guest_id;size:64;index" json:"guestId"`
	GuestName string `gorm:"column:guest_name;size:191" json:"guestName"`

	GuestCount int `gorm:"column:guest_count;default:1" json:"guestCount"`

	// Date-only granularity, normalized to midnight UTC.
	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	TotalAmount     float64 `gorm:"column:total_amount" json:"totalAmount"`
	SpecialRequests string  `gorm:"column:special_requests;type:text" json:"specialRequests,omitempty"`

	Status BookingStatus `gorm:"column:status;type:varchar(32);index" json:"status"`

	PaymentStatus  PaymentStatus `gorm:"column:payment_status;type:varchar(32);default:'pending'" json:"paymentStatus"`
	PaymentMethod  string        `gorm:"column:payment_method;size:64" json:"paymentMethod,omitempty"`
	TransactionRef string        `gorm:"column:transaction_ref;size:128" json:"transactionRef,omitempty"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checkedOutAt,omitempty"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at" json:"cancelledAt,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
