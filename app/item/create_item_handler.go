package item

import (
	"context"
	"sampleapi/domain"
	"sampleapi/pkg/events"
	"sampleapi/pkg/httperror"
)

type CreateItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
	service        string
}

// CreateItemRequest is the client-supplied part of an item. It is used for
// both create and full-replacement update. Every field comes from the body
// only; name and price must be present, an empty name is allowed.
type CreateItemRequest struct {
	Name        *string  `json:"name" query:"-" params:"-" validate:"required"`
	Description *string  `json:"description" query:"-" params:"-"`
	Price       *float64 `json:"price" query:"-" params:"-" validate:"required"`
	Tax         *float64 `json:"tax" query:"-" params:"-"`
}

func NewCreateItemHandler(repository Repository, eventPublisher events.Publisher, service string) *CreateItemHandler {
	return &CreateItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
		service:        service,
	}
}

func (h CreateItemHandler) Handle(ctx context.Context, req *CreateItemRequest) (*domain.Item, error) {
	if err := validateRequest("create", req); err != nil {
		return nil, err
	}

	item, err := h.repository.Create(ctx, req)
	if err != nil {
		return nil, httperror.InternalServerError(
			"item.create.create_failed",
			"An error occurred while creating the item",
			nil,
		)
	}

	publishEvent(ctx, h.eventPublisher, h.service, events.ItemCreatedEvent, item.ID, events.ItemCreatedPayload{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Tax:         item.Tax,
		CreatedAt:   item.CreatedAt,
	})

	return &item, nil
}
