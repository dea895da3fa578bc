package item

import (
	"context"
	"errors"
	"sampleapi/domain"
	"sampleapi/pkg/events"
	"sampleapi/pkg/httperror"
	"time"
)

type DeleteItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
	service        string
}

func NewDeleteItemHandler(repository Repository, eventPublisher events.Publisher, service string) *DeleteItemHandler {
	return &DeleteItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
		service:        service,
	}
}

type DeleteItemRequest struct {
	ItemID int `params:"id" json:"-" query:"-"`
}

type DeleteItemResponse struct {
	Message string `json:"message"`
}

func (h DeleteItemHandler) Handle(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	err := h.repository.DeleteItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, httperror.NotFound(
				"item.destroy.not_found",
				"Item not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"item.destroy.failed",
			"Failed to delete item",
			nil,
		)
	}

	publishEvent(ctx, h.eventPublisher, h.service, events.ItemDeletedEvent, req.ItemID, events.ItemDeletedPayload{
		ID:        req.ItemID,
		DeletedAt: time.Now().UTC(),
	})

	return &DeleteItemResponse{
		Message: "Item deleted successfully",
	}, nil
}
