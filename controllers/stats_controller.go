package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-lifecycle-backend/services"
	"hotel-lifecycle-backend/utils"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GetRoomCounts handles GET /api/stats/rooms: rooms per status for the
// staff dashboard, served from the change-feed-invalidated cache.
func (sc *StatsController) GetRoomCounts(c *gin.Context) {
	counts, err := sc.Stats.RoomStatusCounts()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, counts)
}
