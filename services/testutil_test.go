package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-lifecycle-backend/models"
)

var testDBSeq int64

// newTestDB opens a private in-memory SQLite database. A single pooled
// connection keeps concurrent transactions serialized the way the MySQL
// row locks would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Staff{},
		&models.Room{},
		&models.Booking{},
		&models.MaintenanceRequest{},
	))
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, number string, price float64) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:   number,
		Type:         models.RoomTypeStandard,
		Status:       models.RoomAvailable,
		Price:        price,
		MaxOccupancy: 4,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

// futureStay returns a check-in/check-out pair n days out, lasting the
// given number of nights.
func futureStay(daysOut, nights int) (time.Time, time.Time) {
	checkIn := DateOnly(time.Now()).AddDate(0, 0, daysOut)
	return checkIn, checkIn.AddDate(0, 0, nights)
}

func roomStatus(t *testing.T, db *gorm.DB, id uint) models.RoomStatus {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, id).Error)
	return room.Status
}
