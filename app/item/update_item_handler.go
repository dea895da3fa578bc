package item

import (
	"context"
	"errors"
	"sampleapi/domain"
	"sampleapi/pkg/events"
	"sampleapi/pkg/httperror"
	"time"
)

type UpdateItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
	service        string
}

// UpdateItemRequest replaces every client-owned field of an item. The id
// comes from the path only.
type UpdateItemRequest struct {
	ItemID      int      `params:"id" json:"-" query:"-"`
	Name        *string  `json:"name" query:"-" params:"-" validate:"required"`
	Description *string  `json:"description" query:"-" params:"-"`
	Price       *float64 `json:"price" query:"-" params:"-" validate:"required"`
	Tax         *float64 `json:"tax" query:"-" params:"-"`
}

func (r *UpdateItemRequest) replacement() *CreateItemRequest {
	return &CreateItemRequest{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Tax:         r.Tax,
	}
}

func NewUpdateItemHandler(repository Repository, eventPublisher events.Publisher, service string) *UpdateItemHandler {
	return &UpdateItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
		service:        service,
	}
}

func (h UpdateItemHandler) Handle(ctx context.Context, req *UpdateItemRequest) (*domain.Item, error) {
	if err := validateRequest("update", req); err != nil {
		return nil, err
	}

	item, err := h.repository.Update(ctx, req.ItemID, req.replacement())
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, httperror.NotFound(
				"item.update.not_found",
				"Item not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"item.update.update_failed",
			"An error occurred while updating the item",
			nil,
		)
	}

	publishEvent(ctx, h.eventPublisher, h.service, events.ItemUpdatedEvent, item.ID, events.ItemUpdatedPayload{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Tax:         item.Tax,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	})

	return &item, nil
}
