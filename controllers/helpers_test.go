package controllers_test

import (
	"bytes"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/constants"
	"hotelbooking/controllers"
	middlewares "hotelbooking/middleware"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/routes"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "controller-secret"

type testEnv struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB

	guest, other, admin, staff, blocked *models.User
	city                                *models.City
	hotel                               *models.Hotel
	single, double                      *models.Room
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterBindings())

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	e := &testEnv{t: t, db: db}
	e.seed()

	tokens := services.NewTokenParser(testSecret)
	users := services.NewUserService(services.UserServiceOptions{DB: db})
	availability := services.NewAvailabilityService(services.AvailabilityServiceOptions{DB: db})
	cities := services.NewCityService(services.CityServiceOptions{DB: db})
	hotels := services.NewHotelService(services.HotelServiceOptions{DB: db, Cities: cities})
	rooms := services.NewRoomService(services.RoomServiceOptions{DB: db, Availability: availability})
	discounts := services.NewDiscountService(services.DiscountServiceOptions{
		DB:   db,
		Rand: rand.New(rand.NewSource(42)),
	})
	bookings := services.NewBookingService(services.BookingServiceOptions{
		DB:           db,
		Availability: availability,
		Discounts:    discounts,
	})
	reviews := services.NewReviewService(services.ReviewServiceOptions{DB: db})
	facade := services.NewBookingFacade(services.BookingFacadeOptions{Bookings: bookings})

	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.ErrorHandler())
	routes.SetupRoutes(r, routes.Options{
		Auth:     middlewares.NewAuthenticator(tokens, users),
		Hotels:   controllers.NewHotelController(hotels),
		Rooms:    controllers.NewRoomController(rooms),
		Reviews:  controllers.NewReviewController(reviews),
		Search:   controllers.NewSearchController(availability, cities),
		Bookings: controllers.NewBookingController(facade),
		Roulette: controllers.NewRouletteController(discounts),
		Users:    controllers.NewUserController(users),
		Uploads:  controllers.NewUploadController(nil, "hotels"),
	})
	e.router = r
	return e
}

func (e *testEnv) seed() {
	t, db := e.t, e.db
	country := &models.Country{Name: "Việt Nam"}
	require.NoError(t, db.Create(country).Error)
	e.city = &models.City{Name: "Da Nang", CountryID: country.ID}
	require.NoError(t, db.Create(e.city).Error)

	mk := func(name string, role int, blocked bool) *models.User {
		u := &models.User{Username: name, Email: name + "@example.com", Role: role, Theme: constants.ThemeLight}
		require.NoError(t, db.Create(u).Error)
		if blocked {
			require.NoError(t, db.Model(u).Update("is_blocked", true).Error)
			u.IsBlocked = true
		}
		return u
	}
	e.guest = mk("guest", constants.RoleUser, false)
	e.other = mk("other", constants.RoleUser, false)
	e.admin = mk("admin", constants.RoleAdmin, false)
	e.staff = mk("staff", constants.RoleStaff, false)
	e.blocked = mk("blocked", constants.RoleUser, true)

	managerID := e.staff.ID
	e.hotel = &models.Hotel{Name: "Seaside", CityID: e.city.ID, ManagerID: &managerID}
	require.NoError(t, db.Omit("City", "Manager").Create(e.hotel).Error)
	e.single = &models.Room{HotelID: e.hotel.ID, RoomType: "single", Capacity: 1, Price: 50}
	e.double = &models.Room{HotelID: e.hotel.ID, RoomType: "double", Capacity: 2, Price: 100}
	require.NoError(t, db.Omit("Hotel").Create(e.single).Error)
	require.NoError(t, db.Omit("Hotel").Create(e.double).Error)
}

func (e *testEnv) token(u *models.User) string {
	claims := &services.Claims{
		UserInfo:       services.UserInfo{UserId: u.ID, Role: u.Role},
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(e.t, err)
	return "Bearer " + s
}

// do gửi request; body nil hoặc giá trị sẽ được encode JSON
func (e *testEnv) do(method, path string, as *models.User, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", e.token(as))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code       int                  `json:"code"`
	Mess       string               `json:"mess"`
	Data       json.RawMessage      `json:"data"`
	Pagination *response.Pagination `json:"pagination"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func assertStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
