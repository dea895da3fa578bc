package meta

import (
	"context"
)

type WelcomeHandler struct {
	message string
}

func NewWelcomeHandler(serviceTitle string) *WelcomeHandler {
	return &WelcomeHandler{
		message: "Welcome to " + serviceTitle,
	}
}

type WelcomeRequest struct{}

type WelcomeResponse struct {
	Message string `json:"message"`
}

func (h WelcomeHandler) Handle(ctx context.Context, req *WelcomeRequest) (*WelcomeResponse, error) {
	return &WelcomeResponse{
		Message: h.message,
	}, nil
}
