package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
)

// GroupBookingService creates one parent booking plus N child reservations as
// a single atomic unit: a failure on any child rolls back the parent and all
// prior children.
type GroupBookingService struct {
	DB   *gorm.DB
	Auth Authorizer
}

func NewGroupBookingService(db *gorm.DB, auth Authorizer) *GroupBookingService {
	return &GroupBookingService{DB: db, Auth: auth}
}

type GroupReservationInput struct {
	GuestID    uint      `json:"guest_id"`
	RoomTypeID uint      `json:"room_type_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`

	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	ExtraBeds      int     `json:"extra_beds"`
	ServiceCharges float64 `json:"service_charges"`
}

type CreateGroupBookingInput struct {
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	ContactEmail  string    `json:"contact_email"`
	ContactPhone  string    `json:"contact_phone"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`

	SpecialRates       bool     `json:"special_rates"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`

	Reservations []GroupReservationInput `json:"reservations"`
}

// CreateGroupBooking validates the date range and discount up front, then
// creates the parent row and every child reservation (each with its own bill
// and activity entry) inside one transaction. When special rates are enabled
// the uniform discount is applied once, at creation time, to each child's
// room-rate charges.
func (s *GroupBookingService) CreateGroupBooking(actor string, in CreateGroupBookingInput) (*models.GroupBooking, error) {
	if err := authorize(s.Auth, actor, "groupBooking.create", "groupBooking"); err != nil {
		return nil, err
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if len(in.Reservations) == 0 {
		return nil, ErrInvalidAmount
	}

	discount := 0.0
	if in.SpecialRates && in.DiscountPercentage != nil {
		discount = *in.DiscountPercentage
		if discount < 0 || discount > 100 {
			return nil, ErrInvalidDiscount
		}
	}

	var groupID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		group := models.GroupBooking{
			ReferenceCode:      uuid.NewString(),
			Name:               in.Name,
			ContactPerson:      in.ContactPerson,
			ContactEmail:       in.ContactEmail,
			ContactPhone:       in.ContactPhone,
			StartDate:          in.StartDate,
			EndDate:            in.EndDate,
			TotalRooms:         len(in.Reservations),
			Status:             models.GroupBookingActive,
			SpecialRates:       in.SpecialRates,
			DiscountPercentage: in.DiscountPercentage,
		}
		if err := tx.Create(&group).Error; err != nil {
			return fmt.Errorf("failed to create group booking: %w", err)
		}
		groupID = group.ID

		for i, child := range in.Reservations {
			if err := s.createChild(tx, actor, &group, discount, child); err != nil {
				return fmt.Errorf("reservation %d of %d: %w", i+1, len(in.Reservations), err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(groupID)
}

func (s *GroupBookingService) createChild(tx *gorm.DB, actor string, group *models.GroupBooking, discount float64, in GroupReservationInput) error {
	nights, err := Nights(in.CheckIn, in.CheckOut)
	if err != nil {
		return err
	}
	if in.ServiceCharges < 0 {
		return ErrInvalidAmount
	}

	var guest models.Guest
	if err := tx.First(&guest, in.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		return fmt.Errorf("failed to load guest %d: %w", in.GuestID, err)
	}
	var roomType models.RoomType
	if err := tx.First(&roomType, in.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomTypeNotFound
		}
		return fmt.Errorf("failed to load room type %d: %w", in.RoomTypeID, err)
	}

	roomCharges := RoomCharge(roomType.BasePrice, nights)
	extraBedCharges := ExtraBedCharge(in.ExtraBeds, roomType.ExtraBedCharge, nights)
	if discount > 0 {
		// Both room-rate derived charges get the group rate so the
		// total/charges invariant survives the discount.
		if roomCharges, err = ApplyDiscount(roomCharges, discount); err != nil {
			return err
		}
		if extraBedCharges, err = ApplyDiscount(extraBedCharges, discount); err != nil {
			return err
		}
	}
	total := Cents(roomCharges + extraBedCharges + in.ServiceCharges)

	adults := in.Adults
	if adults <= 0 {
		adults = 1
	}

	res := models.Reservation{
		ReferenceCode:   uuid.NewString(),
		GuestID:         guest.ID,
		RoomTypeID:      roomType.ID,
		CheckInDate:     in.CheckIn,
		CheckOutDate:    in.CheckOut,
		Adults:          adults,
		Children:        in.Children,
		ExtraBeds:       in.ExtraBeds,
		Status:          models.ReservationUnconfirmed,
		RoomCharges:     roomCharges,
		ExtraBedCharges: extraBedCharges,
		ServiceCharges:  Cents(in.ServiceCharges),
		TotalAmount:     total,
		PendingAmount:   total,
		GroupBookingID:  &group.ID,
	}
	if err := tx.Create(&res).Error; err != nil {
		return fmt.Errorf("failed to create group reservation: %w", err)
	}

	bill := models.Bill{
		ReservationID: res.ID,
		Status:        models.BillUnpaid,
		RoomCharges:   res.RoomCharges,
		TotalAmount:   res.TotalAmount,
		PendingAmount: res.PendingAmount,
	}
	if err := tx.Create(&bill).Error; err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}

	if err := appendActivity(tx, res.ID, models.ActionCreated, actor,
		fmt.Sprintf("reservation %s created under group %s", res.ReferenceCode, group.Name),
		map[string]any{"groupBookingId": group.ID, "discount": discount}); err != nil {
		return err
	}
	return validateLedger(tx, &res)
}

// GroupBookingPage is a paginated listing with total/pages metadata.
type GroupBookingPage struct {
	Items []models.GroupBooking `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Pages int                   `json:"pages"`
}

// List pages through group bookings, optionally filtered by status.
func (s *GroupBookingService) List(page, limit int, status string) (*GroupBookingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := s.DB.Model(&models.GroupBooking{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count group bookings: %w", err)
	}

	var items []models.GroupBooking
	err := q.
		Preload("Reservations").
		Preload("Reservations.Guest").
		Preload("Reservations.RoomType").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list group bookings: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &GroupBookingPage{Items: items, Total: total, Page: page, Limit: limit, Pages: pages}, nil
}

// GetByID returns the group booking with its nested reservations.
func (s *GroupBookingService) GetByID(groupID uint) (*models.GroupBooking, error) {
	var group models.GroupBooking
	err := s.DB.
		Preload("Reservations").
		Preload("Reservations.Guest").
		Preload("Reservations.RoomType").
		First(&group, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupBookingNotFound
		}
		return nil, fmt.Errorf("failed to load group booking %d: %w", groupID, err)
	}
	return &group, nil
}
