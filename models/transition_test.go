package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidBookingTransition(t *testing.T) {
	assert.True(t, ValidBookingTransition("confirm", BookingPending))
	assert.False(t, ValidBookingTransition("confirm", BookingConfirmed))

	// check-in works straight from pending (walk-in flow)
	assert.True(t, ValidBookingTransition("check_in", BookingPending))
	assert.True(t, ValidBookingTransition("check_in", BookingConfirmed))
	assert.False(t, ValidBookingTransition("check_in", BookingCheckedOut))

	assert.True(t, ValidBookingTransition("check_out", BookingCheckedIn))
	assert.False(t, ValidBookingTransition("check_out", BookingPending))

	assert.True(t, ValidBookingTransition("cancel", BookingCheckedIn))
	assert.False(t, ValidBookingTransition("cancel", BookingCancelled))
	assert.False(t, ValidBookingTransition("cancel", BookingCheckedOut))

	assert.False(t, ValidBookingTransition("teleport", BookingPending))
}

func TestValidMaintenanceTransition(t *testing.T) {
	assert.True(t, ValidMaintenanceTransition("begin_work", MaintenancePending))
	assert.False(t, ValidMaintenanceTransition("begin_work", MaintenanceInProgress))

	assert.True(t, ValidMaintenanceTransition("resolve", MaintenancePending))
	assert.True(t, ValidMaintenanceTransition("resolve", MaintenanceInProgress))
	assert.False(t, ValidMaintenanceTransition("resolve", MaintenanceCompleted))

	assert.True(t, ValidMaintenanceTransition("cancel", MaintenanceInProgress))
	assert.False(t, ValidMaintenanceTransition("cancel", MaintenanceCancelled))
}

func TestBookingStatusActive(t *testing.T) {
	assert.True(t, BookingPending.Active())
	assert.True(t, BookingConfirmed.Active())
	assert.True(t, BookingCheckedIn.Active())
	assert.False(t, BookingCheckedOut.Active())
	assert.False(t, BookingCancelled.Active())
}
