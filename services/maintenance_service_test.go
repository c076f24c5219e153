package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-lifecycle-backend/models"
)

func TestListMaintenanceRequests(t *testing.T) {
	db := newTestDB(t)
	coord := NewCoordinator(db)
	svc := NewMaintenanceService(db)

	roomA := seedRoom(t, db, "101", 100)
	roomB := seedRoom(t, db, "102", 100)

	first, err := coord.StartMaintenance(StartMaintenanceInput{RoomID: roomA.ID, Issue: "leaky faucet", Priority: models.PriorityLow})
	require.NoError(t, err)
	second, err := coord.StartMaintenance(StartMaintenanceInput{RoomID: roomB.ID, Issue: "broken lock", Priority: models.PriorityHigh})
	require.NoError(t, err)
	_, err = coord.ResolveMaintenance(first.ID)
	require.NoError(t, err)

	all, err := svc.List(MaintenanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	open, err := svc.List(MaintenanceFilter{Status: models.MaintenancePending})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, second.ID, open[0].ID)

	urgent, err := svc.List(MaintenanceFilter{Priority: models.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, urgent, 1)
	assert.Equal(t, "broken lock", urgent[0].Issue)

	byRoom, err := svc.List(MaintenanceFilter{RoomID: roomA.ID})
	require.NoError(t, err)
	require.Len(t, byRoom, 1)
	assert.Equal(t, models.MaintenanceCompleted, byRoom[0].Status)

	_, err = svc.List(MaintenanceFilter{Priority: "urgent-ish"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetMaintenanceRequest(t *testing.T) {
	db := newTestDB(t)
	coord := NewCoordinator(db)
	svc := NewMaintenanceService(db)

	room := seedRoom(t, db, "101", 100)
	req, err := coord.StartMaintenance(StartMaintenanceInput{RoomID: room.ID, Issue: "tv dead"})
	require.NoError(t, err)

	got, err := svc.GetByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, "tv dead", got.Issue)
	assert.Equal(t, "101", got.RoomNumber)
	assert.Equal(t, models.RoomAvailable, got.ReleaseStatus)

	_, err = svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
