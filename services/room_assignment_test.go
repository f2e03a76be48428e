package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakeelviam/salmiya-grand-hotel-new-sub000/models"
)

func TestFindAvailableRooms_FiltersAndOrders(t *testing.T) {
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	deluxe := seedRoomType(t, env.db, "Deluxe", 100, 15)

	// Seeded out of order to prove the room-number ordering.
	seedRoom(t, env.db, standard.ID, "103")
	seedRoom(t, env.db, standard.ID, "101")
	occupied := seedRoom(t, env.db, standard.ID, "102")
	maintenance := seedRoom(t, env.db, standard.ID, "104")
	inactive := seedRoom(t, env.db, standard.ID, "105")
	seedRoom(t, env.db, deluxe.ID, "201")

	require.NoError(t, env.db.Model(&occupied).Update("status", models.RoomOccupied).Error)
	require.NoError(t, env.db.Model(&maintenance).Update("status", models.RoomMaintenance).Error)
	require.NoError(t, env.db.Model(&inactive).Update("active", false).Error)

	rooms, err := env.rooms.FindAvailableRooms(standard.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "101", rooms[0].RoomNumber)
	assert.Equal(t, "103", rooms[1].RoomNumber)
}

func TestFindAvailableRooms_EmptyAfterCheckIn(t *testing.T) {
	// With a single room of the type, checking a guest in leaves nothing
	// available until checkout releases the room again.
	env := newTestEnv(t)
	standard := seedRoomType(t, env.db, "Standard", 50, 10)
	room := seedRoom(t, env.db, standard.ID, "101")
	res := bookStay(t, env, standard.ID, 0, "")

	_, err := env.reservations.Confirm("manager", res.ID)
	require.NoError(t, err)
	_, err = env.reservations.CheckIn("manager", res.ID, room.ID)
	require.NoError(t, err)

	rooms, err := env.rooms.FindAvailableRooms(standard.ID)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	_, err = env.reservations.CheckOut("manager", res.ID, 0, "")
	require.NoError(t, err)

	rooms, err = env.rooms.FindAvailableRooms(standard.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, room.ID, rooms[0].ID)
}
