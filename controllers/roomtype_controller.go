package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/utils"
)

type RoomTypeController struct {
	DB *gorm.DB
}

func NewRoomTypeController(db *gorm.DB) *RoomTypeController {
	return &RoomTypeController{DB: db}
}

func (ctl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	var types []models.RoomType
	if err := ctl.DB.Find(&types).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list room types")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (ctl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if rt.Name == "" || rt.BasePrice < 0 {
		utils.JSONError(c, http.StatusBadRequest, "name and a non-negative base price are required")
		return
	}
	if err := ctl.DB.Create(&rt).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room type")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}
