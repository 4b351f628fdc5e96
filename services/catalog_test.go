package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Upload(ctx context.Context, file interface{}, folder string) (string, error) {
	args := m.Called(ctx, file, folder)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestCitySearch_AccentAndCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	fr := &models.Country{Name: "France"}
	require.NoError(t, db.Create(fr).Error)
	require.NoError(t, db.Create(&models.City{Name: "Paris", CountryID: fr.ID}).Error)
	require.NoError(t, db.Create(&models.City{Name: "Hải Phòng", CountryID: f.city.CountryID}).Error)

	svc := NewCityService(CityServiceOptions{DB: db})
	ctx := context.Background()

	cities, err := svc.Search(ctx, "ha noi")
	require.NoError(t, err)
	require.NotEmpty(t, cities)
	assert.Equal(t, "Hà Nội", cities[0].Name)

	cities, err = svc.Search(ctx, "FRANCE")
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Paris", cities[0].Name)

	// country match returns every Vietnamese city
	cities, err = svc.Search(ctx, "viet")
	require.NoError(t, err)
	assert.Len(t, cities, 2)

	cities, err = svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cities, 3)

	cities, err = svc.Search(ctx, "zzzz")
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestCitySearch_UsesCache(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	mr, rdb := newTestRedis(t)
	svc := NewCityService(CityServiceOptions{DB: db, Cache: NewCache(rdb, time.Minute)})

	_, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, mr.Exists(citiesCacheKey))
}

func TestHotelCreate_Permissions(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewHotelService(HotelServiceOptions{DB: db})
	ctx := context.Background()

	in := HotelInput{Name: strPtr("Riverside"), City: strPtr("hà nội")}

	_, err := svc.Create(ctx, f.guest, in)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	_, err = svc.Create(ctx, f.staff, HotelInput{Name: strPtr("Nowhere Inn"), City: strPtr("Atlantis")})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDBNotFound))
	assert.Contains(t, apperrors.GetAppError(err).Message, "Atlantis")

	h, err := svc.Create(ctx, f.staff, in)
	require.NoError(t, err)
	require.NotNil(t, h.ManagerID)
	assert.Equal(t, f.staff.ID, *h.ManagerID)
	assert.Equal(t, f.city.ID, h.CityID)
	assert.Equal(t, 0.0, h.Rating)
}

func TestHotelUpdate_ManagerOrAdmin(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewHotelService(HotelServiceOptions{DB: db})
	ctx := context.Background()

	otherStaff := &models.User{Username: "staff2", Email: "staff2@example.com", Role: constants.RoleStaff}
	require.NoError(t, db.Create(otherStaff).Error)

	_, err := svc.Update(ctx, otherStaff, f.hotel.ID, HotelInput{Address: strPtr("1 Main St")}, true)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	h, err := svc.Update(ctx, f.staff, f.hotel.ID, HotelInput{Address: strPtr("1 Main St")}, true)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", h.Address)
	assert.Equal(t, "Lakeside", h.Name)

	_, err = svc.Update(ctx, f.admin, f.hotel.ID, HotelInput{Address: strPtr("2 Main St")}, false)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRequiredField))

	h, err = svc.Update(ctx, f.admin, f.hotel.ID, HotelInput{Name: strPtr("Lakeside II"), City: strPtr("Hà Nội")}, false)
	require.NoError(t, err)
	assert.Equal(t, "Lakeside II", h.Name)

	require.NoError(t, svc.Delete(ctx, f.admin, f.hotel.ID))
	_, err = svc.Get(ctx, f.hotel.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDBNotFound))
}

func TestHotelList_CacheInvalidatedOnWrite(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	_, rdb := newTestRedis(t)
	svc := NewHotelService(HotelServiceOptions{DB: db, Cache: NewCache(rdb, time.Minute)})
	ctx := context.Background()

	hotels, total, err := svc.List(ctx, HotelFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Lakeside", hotels[0].Name)

	_, err = svc.Update(ctx, f.staff, f.hotel.ID, HotelInput{Name: strPtr("Renamed")}, true)
	require.NoError(t, err)

	hotels, _, err = svc.List(ctx, HotelFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", hotels[0].Name)

	hotels, total, err = svc.List(ctx, HotelFilter{City: "Hà Nội", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	hotels, total, err = svc.List(ctx, HotelFilter{City: "Paris", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, hotels)
}

func TestHotelCreate_UploadsImagePayload(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	store := new(mockImageStore)
	svc := NewHotelService(HotelServiceOptions{DB: db, Images: store})
	payload := "data:image/png;base64,iVBORw0KGgo="

	store.On("Upload", mock.Anything, payload, "hotels").Return("https://img.example.com/h.png", nil).Once()

	h, err := svc.Create(context.Background(), f.staff, HotelInput{Name: strPtr("Pic"), City: strPtr("Hà Nội"), Image: &payload})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/h.png", h.Image)
	store.AssertExpectations(t)

	// hosted URLs are kept as sent
	h, err = svc.Create(context.Background(), f.staff, HotelInput{Name: strPtr("Url"), City: strPtr("Hà Nội"), Image: strPtr("https://cdn/x.jpg")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.jpg", h.Image)

	store.On("Upload", mock.Anything, payload, "hotels").Return("", errors.New("boom")).Once()
	_, err = svc.Create(context.Background(), f.staff, HotelInput{Name: strPtr("Fail"), City: strPtr("Hà Nội"), Image: &payload})
	assert.Error(t, err)
}

func TestRoomList_StayFilter(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewRoomService(RoomServiceOptions{DB: db})
	ctx := context.Background()

	insertBooking(t, db, f.guest.ID, f.double.ID, day(5), day(7), constants.BookingStatusConfirmed)

	rooms, err := svc.List(ctx, f.hotel.ID, StayQuery{})
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	rooms, err = svc.List(ctx, f.hotel.ID, StayQuery{CheckIn: "2030-06-05", CheckOut: "2030-06-06", Guests: "1"})
	require.NoError(t, err)
	assert.Equal(t, []uint{f.single.ID}, roomIDs(rooms))

	rooms, err = svc.List(ctx, f.hotel.ID, StayQuery{CheckIn: "2030-06-05"})
	require.NoError(t, err)
	assert.Empty(t, rooms)

	rooms, err = svc.List(ctx, f.hotel.ID, StayQuery{CheckIn: "bad", CheckOut: "2030-06-06", Guests: "1"})
	require.NoError(t, err)
	assert.Empty(t, rooms)

	_, err = svc.List(ctx, 999, StayQuery{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDBNotFound))
}

func TestRoomWrites(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewRoomService(RoomServiceOptions{DB: db})
	ctx := context.Background()

	capacity, price := 3, 120.5
	in := RoomInput{RoomType: strPtr("family"), Capacity: &capacity, Price: &price}

	_, err := svc.Create(ctx, f.guest, f.hotel.ID, in)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	room, err := svc.Create(ctx, f.staff, f.hotel.ID, in)
	require.NoError(t, err)
	assert.Equal(t, f.hotel.ID, room.HotelID)

	zero := 0
	_, err = svc.Update(ctx, f.staff, f.hotel.ID, room.ID, RoomInput{Capacity: &zero}, true)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))

	negative := -1.0
	_, err = svc.Update(ctx, f.staff, f.hotel.ID, room.ID, RoomInput{Price: &negative}, true)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))

	four := 4
	updated, err := svc.Update(ctx, f.admin, f.hotel.ID, room.ID, RoomInput{Capacity: &four}, true)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Capacity)
	assert.Equal(t, 120.5, updated.Price)

	require.NoError(t, svc.Delete(ctx, f.staff, f.hotel.ID, room.ID))
	_, err = svc.Get(ctx, f.hotel.ID, room.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDBNotFound))
}

func TestUserToggles(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	svc := NewUserService(UserServiceOptions{DB: db})
	ctx := context.Background()

	_, err := svc.ToggleActive(ctx, f.staff, f.guest.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	u, err := svc.ToggleActive(ctx, f.admin, f.guest.ID)
	require.NoError(t, err)
	assert.True(t, u.IsBlocked)
	u, err = svc.ToggleActive(ctx, f.admin, f.guest.ID)
	require.NoError(t, err)
	assert.False(t, u.IsBlocked)

	_, err = svc.ToggleTheme(ctx, f.admin, f.guest.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	u, err = svc.ToggleTheme(ctx, f.guest, f.guest.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ThemeDark, u.Theme)
	u, err = svc.ToggleTheme(ctx, f.guest, f.guest.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ThemeLight, u.Theme)

	users, total, err := svc.List(ctx, f.admin, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, users, 2)

	_, _, err = svc.List(ctx, f.guest, 1, 2)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
}

func TestUserGetByID_Missing(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewUserService(UserServiceOptions{DB: db})

	_, err := svc.GetByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDBNotFound))
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
}

func TestPermissionPredicates(t *testing.T) {
	staffID := uint(3)
	hotel := &models.Hotel{ManagerID: &staffID}
	staff := &models.User{ID: 3, Role: constants.RoleStaff}
	otherStaff := &models.User{ID: 4, Role: constants.RoleStaff}
	admin := &models.User{ID: 1, Role: constants.RoleAdmin}
	guest := &models.User{ID: 9}
	booking := &models.Booking{UserID: 9}

	assert.False(t, IsAuthenticated(nil))
	assert.False(t, IsNotBlocked(&models.User{IsBlocked: true}))
	assert.True(t, IsStaff(admin))
	assert.True(t, CanManageHotel(staff, hotel))
	assert.False(t, CanManageHotel(otherStaff, hotel))
	assert.True(t, CanManageHotel(admin, hotel))
	assert.False(t, CanManageHotel(guest, hotel))
	assert.True(t, CanViewBooking(guest, booking))
	assert.True(t, CanViewBooking(admin, booking))
	assert.False(t, CanViewBooking(staff, booking))
	assert.False(t, CanChangeBookingStatus(staff))
	assert.True(t, CanReviewBooking(guest, booking))
	assert.True(t, IsSelf(guest, 9))
	assert.False(t, IsSelf(nil, 9))
}
