package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/services"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// day0 is the fixed reference date used across scenarios; stays run day0..day2.
var (
	day0 = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	day2 = day0.AddDate(0, 0, 2)
)

type allowAll struct{}

func (allowAll) Allowed(string, string, string) bool { return true }

type denyAll struct{}

func (denyAll) Allowed(string, string, string) bool { return false }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so the in-memory database is shared by every session
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.RolePermission{},
		&models.Staff{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.GroupBooking{},
		&models.Reservation{},
		&models.Bill{},
		&models.Payment{},
		&models.ActivityLog{},
	))
	return db
}

type testEnv struct {
	db            *gorm.DB
	reservations  *services.ReservationService
	payments      *services.PaymentService
	groupBookings *services.GroupBookingService
	rooms         *services.RoomAssignmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	rsvc := services.NewReservationService(db, allowAll{})
	rsvc.Now = func() time.Time { return day0 }

	return &testEnv{
		db:            db,
		reservations:  rsvc,
		payments:      services.NewPaymentService(db, allowAll{}),
		groupBookings: services.NewGroupBookingService(db, allowAll{}),
		rooms:         services.NewRoomAssignmentService(db),
	}
}

func seedRoomType(t *testing.T, db *gorm.DB, name string, basePrice, extraBed float64) models.RoomType {
	t.Helper()
	rt := models.RoomType{Name: name, BasePrice: basePrice, ExtraBedCharge: extraBed, AdultCapacity: 2, ChildCapacity: 1}
	require.NoError(t, db.Create(&rt).Error)
	return rt
}

func seedRoom(t *testing.T, db *gorm.DB, roomTypeID uint, number string) models.Room {
	t.Helper()
	room := models.Room{RoomTypeID: roomTypeID, RoomNumber: number, Floor: "1", Status: models.RoomAvailable, Active: true}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedGuest(t *testing.T, db *gorm.DB, name string) models.Guest {
	t.Helper()
	guest := models.Guest{FullName: name, Email: name + "@example.com"}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

// bookStay creates a day0..day2 reservation (2 nights) for a fresh guest.
func bookStay(t *testing.T, env *testEnv, roomTypeID uint, advance float64, mode string) *models.Reservation {
	t.Helper()
	guest := seedGuest(t, env.db, "guest")
	res, err := env.reservations.Create("manager", services.CreateReservationInput{
		GuestID:       guest.ID,
		RoomTypeID:    roomTypeID,
		CheckIn:       day0,
		CheckOut:      day2,
		Adults:        2,
		AdvanceAmount: advance,
		AdvanceMode:   mode,
	})
	require.NoError(t, err)
	return res
}
