package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/utils"
)

// RoomController covers inventory setup reads/writes. Occupancy flips stay
// inside the reservation lifecycle; this surface never writes OCCUPIED.
type RoomController struct {
	DB    *gorm.DB
	Rooms *services.RoomAssignmentService
}

func NewRoomController(db *gorm.DB, rooms *services.RoomAssignmentService) *RoomController {
	return &RoomController{DB: db, Rooms: rooms}
}

// GetRooms handles GET /api/rooms.
func (ctl *RoomController) GetRooms(c *gin.Context) {
	var rooms []models.Room
	if err := ctl.DB.Preload("RoomType").Order("room_number ASC").Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetAvailableRooms handles GET /api/room-types/:id/available-rooms.
func (ctl *RoomController) GetAvailableRooms(c *gin.Context) {
	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return
	}
	rooms, err := ctl.Rooms.FindAvailableRooms(uint(rawID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// CreateRoom handles POST /api/rooms (inventory setup).
func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "room number is required")
		return
	}
	if room.RoomTypeID != 0 {
		var rt models.RoomType
		if err := ctl.DB.First(&rt, room.RoomTypeID).Error; err != nil {
			utils.JSONError(c, http.StatusBadRequest, "room type not found")
			return
		}
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	room.Active = true

	if err := ctl.DB.Create(&room).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// SetRoomStatus handles PATCH /api/rooms/:id/status for housekeeping states.
// Occupancy is owned by the lifecycle engine, so OCCUPIED is rejected here.
func (ctl *RoomController) SetRoomStatus(c *gin.Context) {
	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	switch payload.Status {
	case models.RoomAvailable, models.RoomMaintenance, models.RoomCleaning:
	default:
		utils.JSONError(c, http.StatusBadRequest, "status must be AVAILABLE, MAINTENANCE or CLEANING")
		return
	}

	var room models.Room
	if err := ctl.DB.First(&room, rawID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}
	if room.Status == models.RoomOccupied {
		utils.JSONError(c, http.StatusConflict, "room is occupied")
		return
	}
	if err := ctl.DB.Model(&room).Update("status", payload.Status).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update room status")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
