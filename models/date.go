package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"hotelbooking/constants"
)

// Date is a calendar day (UTC midnight). It is stored as YYYY-MM-DD so that
// range comparisons behave the same on Postgres date columns and SQLite text.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(constants.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(constants.DateLayout)
}

// DaysUntil returns the number of whole nights between d and end.
func (d Date) DaysUntil(end Date) int {
	return int(end.Sub(d.Time).Hours() / 24)
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

func (d Date) GormDataType() string {
	return "date"
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		y, m, day := v.Date()
		*d = NewDate(y, m, day)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("models.Date: cannot scan %T", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(constants.DateLayout) {
		s = s[:len(constants.DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
