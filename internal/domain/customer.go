package domain

import "time"

type Customer struct {
	ID        uint
	Name      string
	Phone     string
	CreatedAt time.Time
}
