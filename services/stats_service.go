package services

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"hotel-lifecycle-backend/models"
)

const roomCountsKey = "room_status_counts"

// StatsService keeps derived counts ("rooms needing cleaning" etc.)
// current through the Coordinator change feed instead of refetching the
// whole collection after every mutation.
type StatsService struct {
	DB    *gorm.DB
	cache *gocache.Cache
	stop  func()
}

func NewStatsService(db *gorm.DB, coordinator *Coordinator, ttl time.Duration) *StatsService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	s := &StatsService{
		DB:    db,
		cache: gocache.New(ttl, 2*ttl),
	}
	if coordinator != nil {
		ch, cancel := coordinator.Subscribe(64)
		s.stop = cancel
		go s.watch(ch)
	}
	return s
}

// watch invalidates cached counts on every committed change. Missed events
// are harmless: the TTL bounds staleness.
func (s *StatsService) watch(ch <-chan Event) {
	for range ch {
		s.cache.Delete(roomCountsKey)
	}
}

// RoomStatusCounts returns the number of rooms per status, including
// zeroes for unrepresented statuses.
func (s *StatsService) RoomStatusCounts() (map[models.RoomStatus]int64, error) {
	if cached, ok := s.cache.Get(roomCountsKey); ok {
		return cached.(map[models.RoomStatus]int64), nil
	}

	var rows []struct {
		Status models.RoomStatus
		Count  int64
	}
	if err := s.DB.Model(&models.Room{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, persistErr("count rooms by status", err)
	}

	counts := map[models.RoomStatus]int64{
		models.RoomAvailable:     0,
		models.RoomPending:       0,
		models.RoomBooked:        0,
		models.RoomNeedsCleaning: 0,
		models.RoomMaintenance:   0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	s.cache.SetDefault(roomCountsKey, counts)
	return counts, nil
}

// Close detaches the change-feed subscription.
func (s *StatsService) Close() {
	if s.stop != nil {
		s.stop()
	}
}
