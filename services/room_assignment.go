package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
)

// RoomAssignmentService owns room occupancy state. Rooms flip to OCCUPIED on
// check-in / room-change-in and back to AVAILABLE on checkout / room-change-out;
// no other code path writes Room.Status.
type RoomAssignmentService struct {
	DB *gorm.DB
}

func NewRoomAssignmentService(db *gorm.DB) *RoomAssignmentService {
	return &RoomAssignmentService{DB: db}
}

// FindAvailableRooms lists active AVAILABLE rooms of a type, ordered by room
// number so results are deterministic.
func (s *RoomAssignmentService) FindAvailableRooms(roomTypeID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.
		Where("room_type_id = ? AND status = ? AND active = ?", roomTypeID, models.RoomAvailable, true).
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	return rooms, nil
}

// firstAvailableRoom picks the lowest-numbered active AVAILABLE room of the
// type inside the caller's transaction, for check-ins that leave room
// selection to the engine.
func firstAvailableRoom(tx *gorm.DB, roomTypeID uint) (*models.Room, error) {
	var room models.Room
	err := lockForUpdate(tx).
		Where("room_type_id = ? AND status = ? AND active = ?", roomTypeID, models.RoomAvailable, true).
		Order("room_number ASC").
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRoomsAvailable
		}
		return nil, fmt.Errorf("failed to find available room: %w", err)
	}
	return &room, nil
}

// assignRoom re-reads the room under lock inside the caller's transaction and
// marks it OCCUPIED. Two concurrent assigns of the same room cannot both
// succeed: the second observes OCCUPIED and fails.
func assignRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := lockForUpdate(tx).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	if !room.Active || room.Status != models.RoomAvailable {
		return nil, ErrRoomUnavailable
	}
	if err := tx.Model(&room).Update("status", models.RoomOccupied).Error; err != nil {
		return nil, fmt.Errorf("failed to occupy room %d: %w", roomID, err)
	}
	room.Status = models.RoomOccupied
	return &room, nil
}

// releaseRoom marks the room AVAILABLE. Releasing an already-available room is
// a no-op, not an error.
func releaseRoom(tx *gorm.DB, roomID uint) error {
	var room models.Room
	if err := lockForUpdate(tx).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	if room.Status == models.RoomAvailable {
		return nil
	}
	if err := tx.Model(&room).Update("status", models.RoomAvailable).Error; err != nil {
		return fmt.Errorf("failed to release room %d: %w", roomID, err)
	}
	return nil
}
