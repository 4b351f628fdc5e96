package models

// All lists the tables in dependency order.
func All() []interface{} {
	return []interface{}{
		&Country{},
		&City{},
		&User{},
		&Hotel{},
		&Room{},
		&Booking{},
		&Discount{},
		&Review{},
	}
}
