package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/middleware"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateReservationPayload struct {
	GuestID    uint   `json:"guest_id" binding:"required"`
	RoomTypeID uint   `json:"room_type_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`

	Adults    int `json:"adults"`
	Children  int `json:"children"`
	ExtraBeds int `json:"extra_beds"`

	ServiceCharges float64 `json:"service_charges"`
	AdvanceAmount  float64 `json:"advance_amount"`
	AdvanceMode    string  `json:"advance_mode"`

	AccompanyingGuests []map[string]any `json:"accompanying_guests,omitempty"`
}

// CheckInPayload's room_id is optional: zero lets the engine auto-assign the
// lowest-numbered available room of the booked type.
type CheckInPayload struct {
	RoomID uint `json:"room_id"`
}

type ChangeRoomPayload struct {
	RoomID uint `json:"room_id" binding:"required"`
}

type CheckOutPayload struct {
	SettlementAmount float64 `json:"settlement_amount"`
	Mode             string  `json:"mode"`
}

type TerminatePayload struct {
	Reason  string  `json:"reason"`
	Penalty float64 `json:"penalty"`
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: svc}
}

// parseDate accepts "2006-01-02" or RFC3339.
func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func reservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation id")
		return 0, false
	}
	return uint(id), true
}

// CreateReservation handles POST /api/reservations.
func (ctl *ReservationController) CreateReservation(c *gin.Context) {
	var payload CreateReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	checkIn, ok := parseDate(payload.CheckIn)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_in format")
		return
	}
	checkOut, ok := parseDate(payload.CheckOut)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_out format")
		return
	}

	res, err := ctl.Reservations.Create(middleware.ActorFrom(c), services.CreateReservationInput{
		GuestID:            payload.GuestID,
		RoomTypeID:         payload.RoomTypeID,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Adults:             payload.Adults,
		Children:           payload.Children,
		ExtraBeds:          payload.ExtraBeds,
		ServiceCharges:     payload.ServiceCharges,
		AdvanceAmount:      payload.AdvanceAmount,
		AdvanceMode:        payload.AdvanceMode,
		AccompanyingGuests: payload.AccompanyingGuests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}

// GetReservations handles GET /api/reservations.
func (ctl *ReservationController) GetReservations(c *gin.Context) {
	list, err := ctl.Reservations.List(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetReservationByID handles GET /api/reservations/:id.
func (ctl *ReservationController) GetReservationByID(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	res, err := ctl.Reservations.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// ConfirmReservation handles POST /api/reservations/:id/confirm.
func (ctl *ReservationController) ConfirmReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	res, err := ctl.Reservations.Confirm(middleware.ActorFrom(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// CheckIn handles POST /api/reservations/:id/check-in.
func (ctl *ReservationController) CheckIn(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var payload CheckInPayload
	if err := c.ShouldBindJSON(&payload); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	res, err := ctl.Reservations.CheckIn(middleware.ActorFrom(c), id, payload.RoomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// ChangeRoom handles POST /api/reservations/:id/change-room.
func (ctl *ReservationController) ChangeRoom(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var payload ChangeRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	res, err := ctl.Reservations.ChangeRoom(middleware.ActorFrom(c), id, payload.RoomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// CheckOut handles POST /api/reservations/:id/check-out.
func (ctl *ReservationController) CheckOut(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var payload CheckOutPayload
	if err := c.ShouldBindJSON(&payload); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	res, err := ctl.Reservations.CheckOut(middleware.ActorFrom(c), id, payload.SettlementAmount, payload.Mode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// CancelReservation handles POST /api/reservations/:id/cancel.
func (ctl *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var payload TerminatePayload
	if err := c.ShouldBindJSON(&payload); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	res, err := ctl.Reservations.Cancel(middleware.ActorFrom(c), id, payload.Reason, payload.Penalty)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// MarkNoShow handles POST /api/reservations/:id/no-show.
func (ctl *ReservationController) MarkNoShow(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var payload TerminatePayload
	if err := c.ShouldBindJSON(&payload); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	res, err := ctl.Reservations.NoShow(middleware.ActorFrom(c), id, payload.Reason, payload.Penalty)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}
