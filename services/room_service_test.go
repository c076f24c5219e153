package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hotel-lifecycle-backend/models"
)

func TestCreateRoomRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	amenities, _ := json.Marshal([]string{"wifi", "minibar"})
	room := &models.Room{
		RoomNumber:   "305",
		Type:         models.RoomTypeDeluxe,
		Price:        180,
		MaxOccupancy: 3,
		Amenities:    datatypes.JSON(amenities),
		Description:  "Deluxe king room",
	}
	require.NoError(t, svc.Create(room))
	require.NotZero(t, room.ID)

	got, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, "305", got.RoomNumber)
	assert.Equal(t, models.RoomTypeDeluxe, got.Type)
	assert.Equal(t, models.RoomAvailable, got.Status)
	assert.Equal(t, 180.0, got.Price)
	assert.Equal(t, 3, got.MaxOccupancy)
	assert.JSONEq(t, `["wifi","minibar"]`, string(got.Amenities))
	assert.Equal(t, "Deluxe king room", got.Description)

	byNumber, err := svc.GetByNumber("305")
	require.NoError(t, err)
	assert.Equal(t, got.ID, byNumber.ID)
}

func TestCreateRoomValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	err := svc.Create(&models.Room{RoomNumber: "  ", Price: 100})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(&models.Room{RoomNumber: "101", Type: "penthouse", Price: 100})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(&models.Room{RoomNumber: "101", Type: models.RoomTypeStandard, Price: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRoomDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	require.NoError(t, svc.Create(&models.Room{RoomNumber: "101", Type: models.RoomTypeStandard, Price: 100}))

	err := svc.Create(&models.Room{RoomNumber: "101", Type: models.RoomTypeSuite, Price: 300})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListRoomsFilterAndPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	for _, number := range []string{"101", "102", "103", "104"} {
		require.NoError(t, svc.Create(&models.Room{RoomNumber: number, Type: models.RoomTypeStandard, Price: 100}))
	}
	require.NoError(t, db.Model(&models.Room{}).Where("room_number = ?", "104").
		Update("status", models.RoomNeedsCleaning).Error)

	available, err := svc.List(RoomFilter{Status: models.RoomAvailable})
	require.NoError(t, err)
	assert.Len(t, available, 3)

	dirty, err := svc.List(RoomFilter{Status: models.RoomNeedsCleaning})
	require.NoError(t, err)
	require.Len(t, dirty, 1)
	assert.Equal(t, "104", dirty[0].RoomNumber)

	// restartable paging: two pages of two cover everything in order
	page1, err := svc.List(RoomFilter{Limit: 2})
	require.NoError(t, err)
	page2, err := svc.List(RoomFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.Len(t, page2, 2)
	assert.Equal(t, "101", page1[0].RoomNumber)
	assert.Equal(t, "103", page2[0].RoomNumber)

	_, err = svc.List(RoomFilter{Status: "smoking"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRoomGuardsStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := &models.Room{RoomNumber: "101", Type: models.RoomTypeStandard, Price: 100}
	require.NoError(t, svc.Create(room))

	_, err := svc.Update(room.ID, map[string]interface{}{"status": "booked"}, false)
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.Update(room.ID, map[string]interface{}{"price": 120.0, "description": "refreshed"}, false)
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Price)
	assert.Equal(t, "refreshed", updated.Description)

	// administrative correction with force
	updated, err = svc.Update(room.ID, map[string]interface{}{"status": "needs_cleaning"}, true)
	require.NoError(t, err)
	assert.Equal(t, models.RoomNeedsCleaning, updated.Status)

	_, err = svc.Update(room.ID, map[string]interface{}{"status": "sparkling"}, true)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(9999, map[string]interface{}{"price": 10.0}, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRoomConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	coord := NewCoordinator(db)

	room := seedRoom(t, db, "101", 100)
	checkIn, checkOut := futureStay(1, 2)
	booking, err := coord.Reserve(ReserveInput{RoomID: room.ID, GuestID: "g", CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)

	err = svc.Delete(room.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = coord.Cancel(booking.ID)
	require.NoError(t, err)

	req, err := coord.StartMaintenance(StartMaintenanceInput{RoomID: room.ID, Issue: "AC broken"})
	require.NoError(t, err)
	err = svc.Delete(room.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = coord.ResolveMaintenance(req.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(room.ID))
	_, err = svc.GetByID(room.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(9999), ErrNotFound)
}
