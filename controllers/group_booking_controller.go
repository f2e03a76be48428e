package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/middleware"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/utils"
)

type GroupReservationPayload struct {
	GuestID    uint   `json:"guest_id" binding:"required"`
	RoomTypeID uint   `json:"room_type_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`

	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	ExtraBeds      int     `json:"extra_beds"`
	ServiceCharges float64 `json:"service_charges"`
}

type CreateGroupBookingPayload struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`

	SpecialRates       bool     `json:"special_rates"`
	DiscountPercentage *float64 `json:"discount_percentage"`

	Reservations []GroupReservationPayload `json:"reservations" binding:"required"`
}

type GroupBookingController struct {
	GroupBookings *services.GroupBookingService
}

func NewGroupBookingController(svc *services.GroupBookingService) *GroupBookingController {
	return &GroupBookingController{GroupBookings: svc}
}

// CreateGroupBooking handles POST /api/group-bookings.
func (ctl *GroupBookingController) CreateGroupBooking(c *gin.Context) {
	var payload CreateGroupBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	start, ok := parseDate(payload.StartDate)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid start_date format")
		return
	}
	end, ok := parseDate(payload.EndDate)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid end_date format")
		return
	}

	in := services.CreateGroupBookingInput{
		Name:               payload.Name,
		ContactPerson:      payload.ContactPerson,
		ContactEmail:       payload.ContactEmail,
		ContactPhone:       payload.ContactPhone,
		StartDate:          start,
		EndDate:            end,
		SpecialRates:       payload.SpecialRates,
		DiscountPercentage: payload.DiscountPercentage,
	}
	for _, r := range payload.Reservations {
		checkIn, ok := parseDate(r.CheckIn)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid check_in format")
			return
		}
		checkOut, ok := parseDate(r.CheckOut)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid check_out format")
			return
		}
		in.Reservations = append(in.Reservations, services.GroupReservationInput{
			GuestID:        r.GuestID,
			RoomTypeID:     r.RoomTypeID,
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			Adults:         r.Adults,
			Children:       r.Children,
			ExtraBeds:      r.ExtraBeds,
			ServiceCharges: r.ServiceCharges,
		})
	}

	group, err := ctl.GroupBookings.CreateGroupBooking(middleware.ActorFrom(c), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, group)
}

// ListGroupBookings handles GET /api/group-bookings?page=&limit=&status=.
func (ctl *GroupBookingController) ListGroupBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := ctl.GroupBookings.List(page, limit, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// GetGroupBookingByID handles GET /api/group-bookings/:id.
func (ctl *GroupBookingController) GetGroupBookingByID(c *gin.Context) {
	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid group booking id")
		return
	}
	group, err := ctl.GroupBookings.GetByID(uint(rawID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, group)
}
