package events

import "time"

const (
	ItemDomain   = "item"
	ItemExchange = "sample.item"
)

const (
	ItemCreatedEvent = "item.created"
	ItemUpdatedEvent = "item.updated"
	ItemDeletedEvent = "item.deleted"
)

const (
	EventVersionV1 = "v1"
)

type ItemCreatedPayload struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Tax         *float64  `json:"tax"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ItemUpdatedPayload struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Tax         *float64  `json:"tax"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ItemDeletedPayload struct {
	ID        int       `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}
