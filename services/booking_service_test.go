package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-lifecycle-backend/models"
)

func newBookingFixtures(t *testing.T) (*BookingService, *Coordinator, *models.Room) {
	t.Helper()
	db := newTestDB(t)
	coord := NewCoordinator(db)
	svc := NewBookingService(db, coord)
	room := seedRoom(t, db, "101", 100)
	return svc, coord, room
}

func TestGetQuote(t *testing.T) {
	svc, _, room := newBookingFixtures(t)

	checkIn, checkOut := futureStay(3, 2)
	quote, err := svc.GetQuote(room.ID, checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, room.ID, quote.RoomID)
	assert.Equal(t, "101", quote.RoomNumber)
	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, 100.0, quote.NightlyRate)
	assert.Equal(t, 200.0, quote.Total)

	// quoting holds nothing
	assert.Equal(t, models.RoomAvailable, roomStatus(t, svc.DB, room.ID))

	_, err = svc.GetQuote(room.ID, checkOut, checkIn)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetQuote(9999, checkIn, checkOut)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDelegatesToCoordinator(t *testing.T) {
	svc, _, room := newBookingFixtures(t)

	checkIn, checkOut := futureStay(1, 3)
	booking, err := svc.Create(ReserveInput{
		RoomID:   room.ID,
		GuestID:  "guest-7",
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, 300.0, booking.TotalAmount)
	assert.Equal(t, models.RoomPending, roomStatus(t, svc.DB, room.ID))
}

func TestListBookingsFilters(t *testing.T) {
	svc, coord, room := newBookingFixtures(t)
	other := seedRoom(t, svc.DB, "102", 150)

	ci1, co1 := futureStay(1, 2)
	first, err := coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "alice", CheckIn: ci1, CheckOut: co1})
	require.NoError(t, err)
	ci2, co2 := futureStay(5, 1)
	second, err := coord.Reserve(ReserveInput{RoomID: other.ID, GuestID: "bob", CheckIn: ci2, CheckOut: co2})
	require.NoError(t, err)
	_, err = coord.Confirm(second.ID)
	require.NoError(t, err)

	all, err := svc.List(BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[0].Room.RoomNumber)

	byGuest, err := svc.List(BookingFilter{GuestID: "alice"})
	require.NoError(t, err)
	require.Len(t, byGuest, 1)
	assert.Equal(t, first.ID, byGuest[0].ID)

	byRoom, err := svc.List(BookingFilter{RoomID: other.ID})
	require.NoError(t, err)
	require.Len(t, byRoom, 1)
	assert.Equal(t, second.ID, byRoom[0].ID)

	confirmed, err := svc.List(BookingFilter{Status: models.BookingConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, second.ID, confirmed[0].ID)

	_, err = svc.List(BookingFilter{Status: "lost"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateBookingRepricesOnDateChange(t *testing.T) {
	svc, coord, room := newBookingFixtures(t)

	checkIn, checkOut := futureStay(2, 2)
	booking, err := coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "g", CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)
	assert.Equal(t, 200.0, booking.TotalAmount)

	newCheckOut := checkOut.AddDate(0, 0, 2)
	updated, err := svc.Update(booking.ID, UpdateInput{CheckOut: &newCheckOut})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Nights)
	assert.Equal(t, 400.0, updated.TotalAmount)

	requests := "late arrival"
	count := 2
	updated, err = svc.Update(booking.ID, UpdateInput{GuestCount: &count, SpecialRequests: &requests})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.GuestCount)
	assert.Equal(t, "late arrival", updated.SpecialRequests)

	tooMany := 99
	_, err = svc.Update(booking.ID, UpdateInput{GuestCount: &tooMany})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(booking.ID, UpdateInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateBookingRejectsOverlappingMove(t *testing.T) {
	svc, coord, room := newBookingFixtures(t)
	releaseRoom := func() {
		require.NoError(t, svc.DB.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("status", models.RoomAvailable).Error)
	}

	ci1, co1 := futureStay(1, 2)
	cancelled, err := coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "g1", CheckIn: ci1, CheckOut: co1})
	require.NoError(t, err)
	_, err = coord.Cancel(cancelled.ID)
	require.NoError(t, err)

	ci2, co2 := futureStay(10, 2)
	_, err = coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "g2", CheckIn: ci2, CheckOut: co2})
	require.NoError(t, err)
	releaseRoom()

	ci3, co3 := futureStay(20, 2)
	moving, err := coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "g3", CheckIn: ci3, CheckOut: co3})
	require.NoError(t, err)

	// moving onto an active booking's range is refused
	clashIn := ci2.AddDate(0, 0, 1)
	clashOut := clashIn.AddDate(0, 0, 2)
	_, err = svc.Update(moving.ID, UpdateInput{CheckIn: &clashIn, CheckOut: &clashOut})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// a cancelled booking's old range does not block
	updated, err := svc.Update(moving.ID, UpdateInput{CheckIn: &ci1, CheckOut: &co1})
	require.NoError(t, err)
	assert.Equal(t, DateOnly(ci1), updated.CheckIn.UTC())
}

func TestUpdateBookingImmutableAfterTerminalState(t *testing.T) {
	svc, coord, room := newBookingFixtures(t)

	checkIn, checkOut := futureStay(1, 1)
	booking, err := coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "g", CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)
	_, err = coord.Cancel(booking.ID)
	require.NoError(t, err)

	count := 2
	_, err = svc.Update(booking.ID, UpdateInput{GuestCount: &count})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Update(9999, UpdateInput{GuestCount: &count})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompletePayment(t *testing.T) {
	svc, coord, room := newBookingFixtures(t)

	checkIn, checkOut := futureStay(1, 1)
	booking, err := coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "g", CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)

	paid, err := svc.CompletePayment(booking.ID, "card", "txn-123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, paid.PaymentStatus)
	assert.Equal(t, "card", paid.PaymentMethod)
	assert.Equal(t, "txn-123", paid.TransactionRef)

	// payment completes exactly once
	_, err = svc.CompletePayment(booking.ID, "card", "txn-456")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.CompletePayment(booking.ID, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompletePaymentRejectsCancelledBooking(t *testing.T) {
	svc, coord, room := newBookingFixtures(t)

	checkIn, checkOut := futureStay(1, 1)
	booking, err := coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "g", CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)
	_, err = coord.Cancel(booking.ID)
	require.NoError(t, err)

	_, err = svc.CompletePayment(booking.ID, "cash", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
