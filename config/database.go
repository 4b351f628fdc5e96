package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"hotelbooking/models"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// bookingOverlapConstraint rejects two pending/confirmed bookings of the same
// room with intersecting [start_date, end_date) ranges.
const bookingOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (room_id WITH =, daterange(start_date, end_date, '[)') WITH &&)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END
$$;`

func getDBConfigByEnv(env string) string {
	prefix := strings.ToUpper(env) + "_"
	switch env {
	case "dev", "qc", "prod":
	default:
		log.Fatalf("Unknown environment: %s", env)
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		os.Getenv(prefix+"DB_HOST"),
		os.Getenv(prefix+"DB_USER"),
		os.Getenv(prefix+"DB_PASSWORD"),
		os.Getenv(prefix+"DB_NAME"),
		os.Getenv(prefix+"DB_PORT"),
		envStr(prefix+"DB_SSLMODE", "require"),
	)
}

// ConnectDB mở kết nối theo DB_DRIVER. Postgres dùng driver lib/pq để lỗi
// vi phạm constraint trả về dạng *pq.Error.
func ConnectDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        getDBConfigByEnv(cfg.Env),
		})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite has a single writer; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}

	DB = db
	log.Println("Successfully connected to db")
	return db, nil
}

// Migrate creates the schema. On Postgres it also installs the booking
// overlap exclusion constraint.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("failed to enable btree_gist: %w", err)
	}
	if err := db.Exec(bookingOverlapConstraint).Error; err != nil {
		return fmt.Errorf("failed to add booking overlap constraint: %w", err)
	}
	return nil
}
