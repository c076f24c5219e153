package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"hotel-lifecycle-backend/models"
	"hotel-lifecycle-backend/services"
	"hotel-lifecycle-backend/utils"
)

type RoomController struct {
	Rooms       *services.RoomService
	Coordinator *services.Coordinator
}

func NewRoomController(rooms *services.RoomService, coordinator *services.Coordinator) *RoomController {
	return &RoomController{Rooms: rooms, Coordinator: coordinator}
}

// GetRooms handles GET /api/rooms with optional status/type filters and
// offset/limit pagination.
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Rooms.List(services.RoomFilter{
		Status: models.RoomStatus(c.Query("status")),
		Type:   models.RoomType(c.Query("type")),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	room, err := rc.Rooms.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type createRoomRequest struct {
	RoomNumber   string   `json:"roomNumber" binding:"required"`
	Type         string   `json:"type"`
	Price        float64  `json:"price" binding:"required"`
	MaxOccupancy int      `json:"maxOccupancy"`
	Amenities    []string `json:"amenities"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	amenities, _ := json.Marshal(req.Amenities)
	room := models.Room{
		RoomNumber:   req.RoomNumber,
		Type:         models.RoomType(req.Type),
		Price:        req.Price,
		MaxOccupancy: req.MaxOccupancy,
		Amenities:    datatypes.JSON(amenities),
		Description:  req.Description,
		ImageURL:     req.ImageURL,
	}
	if err := rc.Rooms.Create(&room); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom handles PATCH /api/rooms/:id. Status edits require
// ?force=true (administrative correction); normal lifecycle transitions
// use the dedicated endpoints.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room, err := rc.Rooms.Update(id, patch, c.Query("force") == "true")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// CompleteCleaning handles POST /api/rooms/:id/cleaning/complete.
func (rc *RoomController) CompleteCleaning(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	room, err := rc.Coordinator.CompleteCleaning(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
