package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-lifecycle-backend/models"
	"hotel-lifecycle-backend/services"
	"hotel-lifecycle-backend/utils"
)

type MaintenanceController struct {
	Maintenance *services.MaintenanceService
	Coordinator *services.Coordinator
}

func NewMaintenanceController(maintenance *services.MaintenanceService, coordinator *services.Coordinator) *MaintenanceController {
	return &MaintenanceController{Maintenance: maintenance, Coordinator: coordinator}
}

func (mc *MaintenanceController) GetRequests(c *gin.Context) {
	requests, err := mc.Maintenance.List(services.MaintenanceFilter{
		RoomID:   uint(queryInt(c, "room_id")),
		Status:   models.MaintenanceStatus(c.Query("status")),
		Priority: models.MaintenancePriority(c.Query("priority")),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, requests)
}

func (mc *MaintenanceController) GetRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, err := mc.Maintenance.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, req)
}

type createMaintenanceRequest struct {
	RoomID      uint   `json:"roomId" binding:"required"`
	Issue       string `json:"issue" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
}

// CreateRequest handles POST /api/maintenance: takes the room out of
// service and opens the request.
func (mc *MaintenanceController) CreateRequest(c *gin.Context) {
	var req createMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	created, err := mc.Coordinator.StartMaintenance(services.StartMaintenanceInput{
		RoomID:      req.RoomID,
		Issue:       req.Issue,
		Description: req.Description,
		Priority:    models.MaintenancePriority(req.Priority),
		Assignee:    req.Assignee,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (mc *MaintenanceController) transition(c *gin.Context, fn func(uint) (*models.MaintenanceRequest, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, err := fn(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, req)
}

func (mc *MaintenanceController) StartWork(c *gin.Context) {
	mc.transition(c, mc.Coordinator.BeginMaintenanceWork)
}

func (mc *MaintenanceController) ResolveRequest(c *gin.Context) {
	mc.transition(c, mc.Coordinator.ResolveMaintenance)
}

func (mc *MaintenanceController) CancelRequest(c *gin.Context) {
	mc.transition(c, mc.Coordinator.CancelMaintenance)
}
