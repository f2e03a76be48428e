package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
)

// appendActivity writes an audit entry inside the caller's open transaction so
// a log row never describes a mutation that did not commit, and a committed
// mutation never lacks its log row.
func appendActivity(tx *gorm.DB, reservationID uint, action, actor, description string, metadata map[string]any) error {
	entry := models.ActivityLog{
		ReservationID: reservationID,
		Action:        action,
		Actor:         actor,
		Description:   description,
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to encode activity metadata: %w", err)
		}
		entry.Metadata = datatypes.JSON(raw)
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}
