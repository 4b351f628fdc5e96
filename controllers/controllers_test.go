package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIRoot(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/api/v1/", nil, nil)
	assertStatus(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), "/api/v1/discounts/roulette")
}

func TestHotels_ListAndCreate(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/api/v1/hotels?city=da%20nang", nil, nil)
	assertStatus(t, http.StatusOK, w)
	var hotels []dto.HotelResponse
	env := decode(t, w, &hotels)
	require.Len(t, hotels, 1)
	assert.Equal(t, "Seaside", hotels[0].Name)
	assert.Equal(t, "Việt Nam", hotels[0].City.Country)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Total)

	body := map[string]interface{}{"name": "Harbor", "city": "Da Nang", "address": "1 Bach Dang"}

	w = e.do(http.MethodPost, "/api/v1/hotels", nil, body)
	assertStatus(t, http.StatusUnauthorized, w)

	w = e.do(http.MethodPost, "/api/v1/hotels", e.guest, body)
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPost, "/api/v1/hotels", e.staff, map[string]interface{}{"name": "Harbor", "city": "Atlantis"})
	assertStatus(t, http.StatusNotFound, w)
	assert.Contains(t, decode(t, w, nil).Mess, "Atlantis")

	// rating gửi lên bị bỏ qua
	body["rating"] = 5
	w = e.do(http.MethodPost, "/api/v1/hotels", e.staff, body)
	assertStatus(t, http.StatusCreated, w)
	var created dto.HotelResponse
	decode(t, w, &created)
	assert.Equal(t, "Harbor", created.Name)
	assert.Equal(t, 0.0, created.Rating)
	require.NotNil(t, created.ManagerID)
	assert.Equal(t, e.staff.ID, *created.ManagerID)
}

func TestHotels_UpdateRequiresManager(t *testing.T) {
	e := newEnv(t)
	path := fmt.Sprintf("/api/v1/hotels/%d", e.hotel.ID)

	w := e.do(http.MethodPatch, path, e.other, map[string]interface{}{"address": "x"})
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPatch, path, e.staff, map[string]interface{}{"address": "12 Tran Phu"})
	assertStatus(t, http.StatusOK, w)
	var hotel dto.HotelResponse
	decode(t, w, &hotel)
	assert.Equal(t, "12 Tran Phu", hotel.Address)
	assert.Equal(t, "Seaside", hotel.Name)

	// PUT cần đủ name và city
	w = e.do(http.MethodPut, path, e.admin, map[string]interface{}{"address": "y"})
	assertStatus(t, http.StatusBadRequest, w)

	w = e.do(http.MethodGet, "/api/v1/hotels/abc", nil, nil)
	assertStatus(t, http.StatusBadRequest, w)
	w = e.do(http.MethodGet, "/api/v1/hotels/9999", nil, nil)
	assertStatus(t, http.StatusNotFound, w)
}

func TestRooms_AvailabilityFilter(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.db.Create(&models.Booking{
		UserID:    e.other.ID,
		RoomID:    e.double.ID,
		StartDate: models.NewDate(2030, 6, 3),
		EndDate:   models.NewDate(2030, 6, 4),
		Guests:    2,
		Status:    constants.BookingStatusConfirmed,
	}).Error)
	base := fmt.Sprintf("/api/v1/hotels/%d/rooms", e.hotel.ID)

	var rooms []dto.RoomResponse
	w := e.do(http.MethodGet, base, nil, nil)
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &rooms)
	assert.Len(t, rooms, 2)

	rooms = nil
	w = e.do(http.MethodGet, base+"?check_in=2030-06-01&check_out=2030-06-05&guests=1", nil, nil)
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, e.single.ID, rooms[0].ID)

	// bộ lọc sai định dạng trả về danh sách rỗng
	rooms = nil
	w = e.do(http.MethodGet, base+"?check_in=06/01/2030&check_out=2030-06-05&guests=1", nil, nil)
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &rooms)
	assert.Empty(t, rooms)
}

func TestSearch(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, fmt.Sprintf("/api/v1/search?city_id=%d&check_in=2030-06-01", e.city.ID), nil, nil)
	assertStatus(t, http.StatusBadRequest, w)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/v1/search?city_id=%d&check_in=2030-06-05&check_out=2030-06-01&guests=1", e.city.ID), nil, nil)
	assertStatus(t, http.StatusBadRequest, w)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/v1/search?city_id=%d&check_in=2030-06-01&check_out=2030-06-05&guests=2", e.city.ID), nil, nil)
	assertStatus(t, http.StatusOK, w)
	var hotels []dto.HotelResponse
	decode(t, w, &hotels)
	require.Len(t, hotels, 1)
	assert.Equal(t, e.hotel.ID, hotels[0].ID)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/v1/search?city_id=%d&check_in=2030-06-01&check_out=2030-06-05&guests=3", e.city.ID), nil, nil)
	assertStatus(t, http.StatusOK, w)
	hotels = nil
	decode(t, w, &hotels)
	assert.Empty(t, hotels)
}

func TestCities(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/api/v1/cities?search=nang", nil, nil)
	assertStatus(t, http.StatusOK, w)
	var cities []dto.CityResponse
	decode(t, w, &cities)
	require.Len(t, cities, 1)
	assert.Equal(t, "Da Nang", cities[0].Name)
	assert.Equal(t, "Việt Nam", cities[0].Country.Name)
}

func bookingBody(roomID uint, start, end string, guests int) map[string]interface{} {
	return map[string]interface{}{
		"room":       roomID,
		"start_date": start,
		"end_date":   end,
		"guests":     guests,
		"first_name": "An",
		"last_name":  "Nguyen",
		"phone":      "0900000000",
	}
}

func TestBookings_CreateAndList(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodPost, "/api/v1/bookings", nil, bookingBody(e.double.ID, "2030-06-01", "2030-06-04", 2))
	assertStatus(t, http.StatusUnauthorized, w)

	w = e.do(http.MethodPost, "/api/v1/bookings", e.blocked, bookingBody(e.double.ID, "2030-06-01", "2030-06-04", 2))
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPost, "/api/v1/bookings", e.guest, bookingBody(e.double.ID, "2030-06-01", "2030-06-04", 2))
	assertStatus(t, http.StatusCreated, w)
	var b dto.BookingResponse
	decode(t, w, &b)
	assert.Equal(t, 300.0, b.TotalPrice)
	assert.Equal(t, constants.BookingStatusPending, b.Status)
	assert.Equal(t, "guest@example.com", b.Email)
	assert.Equal(t, e.hotel.ID, b.Room.Hotel)
	assert.False(t, b.DiscountApplied)
	assert.False(t, b.HasReview)

	// trùng lịch
	w = e.do(http.MethodPost, "/api/v1/bookings", e.other, bookingBody(e.double.ID, "2030-06-03", "2030-06-05", 1))
	assertStatus(t, http.StatusBadRequest, w)

	// chạm biên không tính là trùng
	w = e.do(http.MethodPost, "/api/v1/bookings", e.other, bookingBody(e.double.ID, "2030-06-04", "2030-06-05", 1))
	assertStatus(t, http.StatusCreated, w)

	w = e.do(http.MethodPost, "/api/v1/bookings", e.other, bookingBody(e.single.ID, "2030-06-01", "2030-06-02", 2))
	assertStatus(t, http.StatusBadRequest, w)

	w = e.do(http.MethodPost, "/api/v1/bookings", e.other, bookingBody(e.single.ID, "2030/06/01", "2030-06-02", 1))
	assertStatus(t, http.StatusBadRequest, w)

	var list []dto.BookingResponse
	w = e.do(http.MethodGet, "/api/v1/bookings", e.guest, nil)
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &list)
	assert.Len(t, list, 1)

	list = nil
	w = e.do(http.MethodGet, "/api/v1/bookings", e.admin, nil)
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &list)
	assert.Len(t, list, 2)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", b.ID), e.other, nil)
	assertStatus(t, http.StatusForbidden, w)
}

func TestBookings_StatusPatch(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodPost, "/api/v1/bookings", e.guest, bookingBody(e.double.ID, "2030-06-01", "2030-06-04", 2))
	assertStatus(t, http.StatusCreated, w)
	var b dto.BookingResponse
	decode(t, w, &b)
	path := fmt.Sprintf("/api/v1/bookings/%d", b.ID)

	w = e.do(http.MethodPatch, path, e.guest, map[string]interface{}{"status": "confirmed"})
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPatch, path, e.admin, map[string]interface{}{"status": "confirmed", "guests": 3})
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPatch, path, e.admin, map[string]interface{}{"status": "archived"})
	assertStatus(t, http.StatusBadRequest, w)

	w = e.do(http.MethodPatch, path, e.admin, map[string]interface{}{"status": "confirmed"})
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &b)
	assert.Equal(t, constants.BookingStatusConfirmed, b.Status)
	assert.Equal(t, 2, b.Guests)

	w = e.do(http.MethodPatch, path, e.admin, map[string]interface{}{"status": "pending"})
	assertStatus(t, http.StatusBadRequest, w)
}

func TestRoulette(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/api/v1/discounts/roulette", e.guest, nil)
	assertStatus(t, http.StatusNoContent, w)

	w = e.do(http.MethodPost, "/api/v1/discounts/roulette", e.guest, nil)
	assertStatus(t, http.StatusCreated, w)
	var first dto.DiscountResponse
	decode(t, w, &first)
	assert.GreaterOrEqual(t, first.Amount, constants.DiscountMinPercent)
	assert.LessOrEqual(t, first.Amount, constants.DiscountMaxPercent)

	w = e.do(http.MethodPost, "/api/v1/discounts/roulette", e.guest, nil)
	assertStatus(t, http.StatusBadRequest, w)
	var existing dto.DiscountResponse
	decode(t, w, &existing)
	assert.Equal(t, first.Code, existing.Code)
	assert.Equal(t, first.Amount, existing.Amount)

	var count int64
	require.NoError(t, e.db.Model(&models.Discount{}).Where("user_id = ?", e.guest.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = e.do(http.MethodGet, "/api/v1/discounts/roulette", e.guest, nil)
	assertStatus(t, http.StatusOK, w)

	// booking dùng discount
	w = e.do(http.MethodPost, "/api/v1/bookings", e.guest, bookingBody(e.double.ID, "2030-06-01", "2030-06-02", 1))
	assertStatus(t, http.StatusCreated, w)
	var b dto.BookingResponse
	decode(t, w, &b)
	assert.True(t, b.DiscountApplied)
	assert.InDelta(t, 100*(1-float64(first.Amount)/100), b.TotalPrice, 0.001)

	w = e.do(http.MethodGet, "/api/v1/discounts/roulette", e.guest, nil)
	assertStatus(t, http.StatusNoContent, w)
}

func TestReviews(t *testing.T) {
	e := newEnv(t)
	booking := &models.Booking{
		UserID:    e.guest.ID,
		RoomID:    e.single.ID,
		StartDate: models.NewDate(2030, 6, 1),
		EndDate:   models.NewDate(2030, 6, 2),
		Guests:    1,
		Status:    constants.BookingStatusPending,
	}
	require.NoError(t, e.db.Create(booking).Error)
	path := fmt.Sprintf("/api/v1/hotels/%d/reviews", e.hotel.ID)
	body := map[string]interface{}{"booking": booking.ID, "text": "Great", "rating": 4}

	w := e.do(http.MethodPost, path, e.guest, body)
	assertStatus(t, http.StatusBadRequest, w)

	require.NoError(t, e.db.Model(booking).Update("status", constants.BookingStatusConfirmed).Error)

	w = e.do(http.MethodPost, path, e.other, body)
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPost, path, e.guest, map[string]interface{}{"booking": booking.ID, "rating": 6})
	assertStatus(t, http.StatusBadRequest, w)

	w = e.do(http.MethodPost, path, e.guest, body)
	assertStatus(t, http.StatusCreated, w)
	var review dto.ReviewResponse
	decode(t, w, &review)
	assert.Equal(t, "guest", review.User)
	assert.Equal(t, "Seaside", review.Hotel)

	w = e.do(http.MethodPost, path, e.guest, body)
	assertStatus(t, http.StatusBadRequest, w)

	var hotel dto.HotelResponse
	w = e.do(http.MethodGet, fmt.Sprintf("/api/v1/hotels/%d", e.hotel.ID), nil, nil)
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &hotel)
	assert.Equal(t, 4.0, hotel.Rating)

	w = e.do(http.MethodPut, fmt.Sprintf("%s/%d", path, review.ID), e.guest, map[string]interface{}{"rating": 2})
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &review)
	assert.Equal(t, 2, review.Rating)

	var list []dto.ReviewResponse
	w = e.do(http.MethodGet, path, nil, nil)
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &list)
	require.Len(t, list, 1)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/v1/hotels/%d", e.hotel.ID), nil, nil)
	decode(t, w, &hotel)
	assert.Equal(t, 2.0, hotel.Rating)
}

func TestUsers_Toggles(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/api/v1/users", e.guest, nil)
	assertStatus(t, http.StatusForbidden, w)

	var users []dto.UserAdminResponse
	w = e.do(http.MethodGet, "/api/v1/users", e.admin, nil)
	assertStatus(t, http.StatusOK, w)
	decode(t, w, &users)
	assert.Len(t, users, 5)

	w = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d/toggle_active", e.guest.ID), e.staff, nil)
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d/toggle_active", e.guest.ID), e.admin, nil)
	assertStatus(t, http.StatusOK, w)
	var active dto.ToggleActiveResponse
	decode(t, w, &active)
	assert.Equal(t, "guest", active.User)
	assert.False(t, active.Active)
	assert.Equal(t, "User blocked", active.Status)

	// user bị khóa không đặt phòng được
	w = e.do(http.MethodPost, "/api/v1/bookings", e.guest, bookingBody(e.double.ID, "2030-06-01", "2030-06-04", 2))
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d/toggle_theme", e.guest.ID), e.other, nil)
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d/toggle_theme", e.other.ID), e.other, nil)
	assertStatus(t, http.StatusOK, w)
	var theme dto.ToggleThemeResponse
	decode(t, w, &theme)
	assert.Equal(t, constants.ThemeDark, theme.Theme)
}

func TestUpload_WithoutStorage(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodPost, "/api/v1/uploads/image", e.guest, map[string]interface{}{"image": "data:image/png;base64,AAAA"})
	assertStatus(t, http.StatusForbidden, w)

	w = e.do(http.MethodPost, "/api/v1/uploads/image", e.staff, map[string]interface{}{"image": "data:image/png;base64,AAAA"})
	assertStatus(t, http.StatusServiceUnavailable, w)
}
