package services

import (
	"time"

	"gorm.io/gorm"

	"hotel-lifecycle-backend/models"
)

// DateOnly truncates to date granularity in UTC. All check-in/check-out
// comparisons happen on these normalized values.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// stayNights validates a requested stay and returns its length.
// check-out must be strictly after check-in, and check-in may not be in
// the past (today is fine).
func stayNights(checkIn, checkOut time.Time) (int, error) {
	ci := DateOnly(checkIn)
	co := DateOnly(checkOut)

	if !co.After(ci) {
		return 0, validationf("check_out must be after check_in")
	}
	if ci.Before(DateOnly(time.Now())) {
		return 0, validationf("check_in is in the past")
	}
	return int(co.Sub(ci).Hours() / 24), nil
}

// activeOverlapExists reports whether any active booking for the room
// overlaps [checkIn, checkOut). excludeID skips a booking being edited.
func activeOverlapExists(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, models.ActiveBookingStatuses).
		Where("check_in < ? AND check_out > ?", DateOnly(checkOut), DateOnly(checkIn))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, persistErr("count overlapping bookings", err)
	}
	return count > 0, nil
}
