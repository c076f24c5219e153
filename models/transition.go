package models

// bookingTransitions maps a lifecycle event to the booking statuses it is
// legal from. Anything absent is an invalid transition.
var bookingTransitions = map[string][]BookingStatus{
	"confirm":   {BookingPending},
	"check_in":  {BookingPending, BookingConfirmed},
	"check_out": {BookingCheckedIn},
	"cancel":    {BookingPending, BookingConfirmed, BookingCheckedIn},
}

func ValidBookingTransition(event string, from BookingStatus) bool {
	allowed, ok := bookingTransitions[event]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == from {
			return true
		}
	}
	return false
}

var maintenanceTransitions = map[string][]MaintenanceStatus{
	"begin_work": {MaintenancePending},
	"resolve":    {MaintenancePending, MaintenanceInProgress},
	"cancel":     {MaintenancePending, MaintenanceInProgress},
}

func ValidMaintenanceTransition(event string, from MaintenanceStatus) bool {
	allowed, ok := maintenanceTransitions[event]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == from {
			return true
		}
	}
	return false
}
