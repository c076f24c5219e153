package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-lifecycle-backend/middleware"
	"hotel-lifecycle-backend/services"
	"hotel-lifecycle-backend/utils"
)

type AuthController struct {
	Staff    *services.StaffService
	TokenTTL time.Duration
}

func NewAuthController(staff *services.StaffService, tokenTTL time.Duration) *AuthController {
	return &AuthController{Staff: staff, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login and issues a staff JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	staff, err := ac.Staff.Authenticate(req.Username, req.Password)
	if err != nil {
		// Credential failures come back as validation errors; report
		// them as unauthorized rather than bad request.
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(staff.ID, staff.Username, staff.Role, ac.TokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"staff": staff,
	})
}
