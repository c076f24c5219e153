package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-lifecycle-backend/models"
	"hotel-lifecycle-backend/services"
	"hotel-lifecycle-backend/utils"
)

type BookingController struct {
	Bookings    *services.BookingService
	Coordinator *services.Coordinator
}

func NewBookingController(bookings *services.BookingService, coordinator *services.Coordinator) *BookingController {
	return &BookingController{Bookings: bookings, Coordinator: coordinator}
}

// QuoteBooking handles GET /api/bookings/quote?room_id&check_in&check_out.
func (bc *BookingController) QuoteBooking(c *gin.Context) {
	roomID := queryInt(c, "room_id")
	if roomID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "room_id is required")
		return
	}
	checkIn, ok := parseDate(c.Query("check_in"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_in date")
		return
	}
	checkOut, ok := parseDate(c.Query("check_out"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_out date")
		return
	}

	quote, err := bc.Bookings.GetQuote(uint(roomID), checkIn, checkOut)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}

type createBookingRequest struct {
	RoomID          uint   `json:"roomId" binding:"required"`
	GuestID         string `json:"guestId" binding:"required"`
	GuestName       string `json:"guestName"`
	GuestCount      int    `json:"guestCount"`
	CheckIn         string `json:"checkIn" binding:"required"`
	CheckOut        string `json:"checkOut" binding:"required"`
	SpecialRequests string `json:"specialRequests"`
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	checkIn, ok := parseDate(req.CheckIn)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
		return
	}
	checkOut, ok := parseDate(req.CheckOut)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
		return
	}

	booking, err := bc.Bookings.Create(services.ReserveInput{
		RoomID:          req.RoomID,
		GuestID:         req.GuestID,
		GuestName:       req.GuestName,
		GuestCount:      req.GuestCount,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookings handles GET /api/bookings with guest_id/status/room_id
// filters and offset/limit pagination.
func (bc *BookingController) GetBookings(c *gin.Context) {
	bookings, err := bc.Bookings.List(services.BookingFilter{
		GuestID: c.Query("guest_id"),
		RoomID:  uint(queryInt(c, "room_id")),
		Status:  models.BookingStatus(c.Query("status")),
		Limit:   queryInt(c, "limit"),
		Offset:  queryInt(c, "offset"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

type updateBookingRequest struct {
	CheckIn         *string `json:"checkIn"`
	CheckOut        *string `json:"checkOut"`
	GuestCount      *int    `json:"guestCount"`
	SpecialRequests *string `json:"specialRequests"`
}

// UpdateBooking handles PATCH /api/bookings/:id (staff-only field edits;
// no status changes on this path).
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	in := services.UpdateInput{
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
	}
	if req.CheckIn != nil {
		t, ok := parseDate(*req.CheckIn)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
			return
		}
		in.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, ok := parseDate(*req.CheckOut)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
			return
		}
		in.CheckOut = &t
	}

	booking, err := bc.Bookings.Update(id, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) transition(c *gin.Context, fn func(uint) (*models.Booking, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := fn(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	bc.transition(c, bc.Coordinator.Confirm)
}

func (bc *BookingController) CheckInBooking(c *gin.Context) {
	bc.transition(c, bc.Coordinator.CheckIn)
}

func (bc *BookingController) CheckOutBooking(c *gin.Context) {
	bc.transition(c, bc.Coordinator.CheckOut)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	bc.transition(c, bc.Bookings.Cancel)
}

type completePaymentRequest struct {
	Method         string `json:"method" binding:"required"`
	TransactionRef string `json:"transactionRef"`
}

// CompletePayment handles POST /api/bookings/:id/payment.
func (bc *BookingController) CompletePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req completePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	booking, err := bc.Bookings.CompletePayment(id, req.Method, req.TransactionRef)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
