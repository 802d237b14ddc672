package domain

import "time"

type Order struct {
	ID         uint
	CustomerID uint
	Note       *string
	CreatedAt  time.Time
}
