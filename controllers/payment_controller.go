package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/middleware"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/utils"
)

type RecordPaymentPayload struct {
	Amount         float64 `json:"amount" binding:"required"`
	Mode           string  `json:"mode" binding:"required"`
	TransactionRef string  `json:"transaction_ref"`
	Notes          string  `json:"notes"`
}

type RefundPayload struct {
	Amount float64 `json:"amount" binding:"required"`
	Reason string  `json:"reason"`
}

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: svc}
}

// RecordPayment handles POST /api/reservations/:id/payments.
func (ctl *PaymentController) RecordPayment(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var payload RecordPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	result, err := ctl.Payments.RecordPayment(middleware.ActorFrom(c), id, services.RecordPaymentInput{
		Amount:         payload.Amount,
		Mode:           payload.Mode,
		TransactionRef: payload.TransactionRef,
		Notes:          payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, result)
}

// RefundPayment handles POST /api/payments/:id/refund.
func (ctl *PaymentController) RefundPayment(c *gin.Context) {
	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment id")
		return
	}
	var payload RefundPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	result, err := ctl.Payments.Refund(middleware.ActorFrom(c), uint(rawID), services.RefundInput{
		Amount: payload.Amount,
		Reason: payload.Reason,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// ListReservationPayments handles GET /api/reservations/:id/payments.
func (ctl *PaymentController) ListReservationPayments(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	payments, err := ctl.Payments.ListByReservation(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

// ListPayments handles GET /api/payments?status=.
func (ctl *PaymentController) ListPayments(c *gin.Context) {
	payments, err := ctl.Payments.ListByStatus(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}
