package domain

import (
	"errors"
	"time"
)

// ErrItemNotFound is returned by repositories when no item matches the requested id.
var ErrItemNotFound = errors.New("item not found")

type Item struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Tax         *float64  `json:"tax"`
	CreatedAt   time.Time `json:"createdAt"`
}
