package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/utils"
)

// respondServiceError translates the service error taxonomy into HTTP
// statuses so UI layers can tell "fix input" apart from "retry".
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		utils.JSONError(c, http.StatusForbidden, err.Error())
	case services.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case services.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case services.IsConflict(err):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrLedgerInconsistency):
		utils.GetLogger().Error("ledger inconsistency", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	default:
		utils.GetLogger().Error("internal error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}
