package services

import (
	"testing"
	"time"

	"hotelbooking/constants"
	"hotelbooking/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

type fixture struct {
	guest   *models.User
	other   *models.User
	admin   *models.User
	staff   *models.User
	blocked *models.User
	city    *models.City
	hotel   *models.Hotel
	single  *models.Room
	double  *models.Room
}

func seed(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{}

	country := &models.Country{Name: "Việt Nam"}
	require.NoError(t, db.Create(country).Error)
	f.city = &models.City{Name: "Hà Nội", CountryID: country.ID}
	require.NoError(t, db.Create(f.city).Error)

	mk := func(name string, role int, blocked bool) *models.User {
		u := &models.User{Username: name, Email: name + "@example.com", Role: role, Theme: constants.ThemeLight}
		require.NoError(t, db.Create(u).Error)
		if blocked {
			require.NoError(t, db.Model(u).Update("is_blocked", true).Error)
			u.IsBlocked = true
		}
		return u
	}
	f.guest = mk("guest", constants.RoleUser, false)
	f.other = mk("other", constants.RoleUser, false)
	f.admin = mk("admin", constants.RoleAdmin, false)
	f.staff = mk("staff", constants.RoleStaff, false)
	f.blocked = mk("blocked", constants.RoleUser, true)

	managerID := f.staff.ID
	f.hotel = &models.Hotel{Name: "Lakeside", CityID: f.city.ID, ManagerID: &managerID}
	require.NoError(t, db.Omit("City", "Manager").Create(f.hotel).Error)

	f.single = &models.Room{HotelID: f.hotel.ID, RoomType: "single", Capacity: 1, Price: 50}
	f.double = &models.Room{HotelID: f.hotel.ID, RoomType: "double", Capacity: 2, Price: 100}
	require.NoError(t, db.Omit("Hotel").Create(f.single).Error)
	require.NoError(t, db.Omit("Hotel").Create(f.double).Error)
	return f
}

func day(d int) models.Date {
	return models.NewDate(2030, time.June, d)
}

func insertBooking(t *testing.T, db *gorm.DB, userID, roomID uint, start, end models.Date, status string) *models.Booking {
	t.Helper()
	b := &models.Booking{
		UserID:    userID,
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Guests:    1,
		Status:    status,
	}
	require.NoError(t, db.Omit("User", "Room").Create(b).Error)
	return b
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
