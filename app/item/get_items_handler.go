package item

import (
	"context"
	"sampleapi/domain"
	"sampleapi/pkg/httperror"
)

const DefaultLimit = 10

type GetItemsHandler struct {
	repository   Repository
	defaultLimit int
}

func NewGetItemsHandler(repository Repository, defaultLimit int) *GetItemsHandler {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}

	return &GetItemsHandler{
		repository:   repository,
		defaultLimit: defaultLimit,
	}
}

type GetItemsRequest struct {
	Skip  *int `query:"skip" validate:"omitempty,min=0"`
	Limit *int `query:"limit" validate:"omitempty,min=0"`
}

type GetItemsResponse []domain.Item

func (h GetItemsHandler) Handle(ctx context.Context, req *GetItemsRequest) (*GetItemsResponse, error) {
	if err := validateRequest("index", req); err != nil {
		return nil, err
	}

	skip := 0
	if req.Skip != nil {
		skip = *req.Skip
	}

	limit := h.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	items, err := h.repository.GetItems(ctx, limit, skip)
	if err != nil {
		return nil, httperror.InternalServerError(
			"item.index.failed",
			"Failed to retrieve items",
			nil,
		)
	}

	res := GetItemsResponse(items)
	if res == nil {
		res = GetItemsResponse{}
	}

	return &res, nil
}
