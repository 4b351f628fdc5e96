package services

import (
	"context"
	"testing"

	"hotelbooking/constants"
	"hotelbooking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomIDs(rooms []models.Room) []uint {
	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestAvailableRooms_HalfOpenOverlap(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewAvailabilityService(AvailabilityServiceOptions{DB: db})
	ctx := context.Background()

	insertBooking(t, db, f.guest.ID, f.double.ID, day(10), day(12), constants.BookingStatusConfirmed)

	rooms, err := svc.AvailableRooms(ctx, RoomScope{HotelID: f.hotel.ID}, day(11), day(13), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.single.ID}, roomIDs(rooms))

	// check-out day of one stay is the check-in day of the next
	rooms, err = svc.AvailableRooms(ctx, RoomScope{HotelID: f.hotel.ID}, day(12), day(14), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{f.single.ID, f.double.ID}, roomIDs(rooms))

	rooms, err = svc.AvailableRooms(ctx, RoomScope{HotelID: f.hotel.ID}, day(8), day(10), 1)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestAvailableRooms_CanceledDoesNotBlock(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewAvailabilityService(AvailabilityServiceOptions{DB: db})

	insertBooking(t, db, f.guest.ID, f.double.ID, day(10), day(12), constants.BookingStatusCanceled)
	insertBooking(t, db, f.guest.ID, f.single.ID, day(10), day(12), constants.BookingStatusPending)

	rooms, err := svc.AvailableRooms(context.Background(), RoomScope{RoomID: f.double.ID}, day(10), day(12), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.double.ID}, roomIDs(rooms))

	rooms, err = svc.AvailableRooms(context.Background(), RoomScope{RoomID: f.single.ID}, day(10), day(12), 1)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestAvailableRooms_Capacity(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewAvailabilityService(AvailabilityServiceOptions{DB: db})

	rooms, err := svc.AvailableRooms(context.Background(), RoomScope{CityID: f.city.ID}, day(1), day(2), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.double.ID}, roomIDs(rooms))

	rooms, err = svc.AvailableRooms(context.Background(), RoomScope{CityID: f.city.ID}, day(1), day(2), 3)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestSearchHotels(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewAvailabilityService(AvailabilityServiceOptions{DB: db})
	ctx := context.Background()

	hotels, err := svc.SearchHotels(ctx, f.city.ID, day(1), day(3), 2)
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, f.hotel.ID, hotels[0].ID)
	assert.Equal(t, "Hà Nội", hotels[0].City.Name)

	insertBooking(t, db, f.guest.ID, f.double.ID, day(1), day(3), constants.BookingStatusPending)
	hotels, err = svc.SearchHotels(ctx, f.city.ID, day(2), day(3), 2)
	require.NoError(t, err)
	assert.Empty(t, hotels)

	// the single room is still free for one guest
	hotels, err = svc.SearchHotels(ctx, f.city.ID, day(2), day(3), 1)
	require.NoError(t, err)
	assert.Len(t, hotels, 1)

	hotels, err = svc.SearchHotels(ctx, f.city.ID+100, day(1), day(3), 1)
	require.NoError(t, err)
	assert.Empty(t, hotels)
}
