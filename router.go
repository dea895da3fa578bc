package main

import (
	"context"
	"errors"
	"sampleapi/app/item"
	"sampleapi/app/meta"
	"sampleapi/domain"
	"sampleapi/internal/middleware"
	"sampleapi/pkg/config"
	"sampleapi/pkg/events"
	"sampleapi/pkg/httperror"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		// Path params are parsed last so they win over body and query.
		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(res)
	}
}

type dependencies struct {
	config     *config.AppConfig
	repository item.Repository
	publisher  events.Publisher
	openAPI    *openapi3.T
}

func newApp(deps dependencies) *fiber.App {
	cfg := deps.config

	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceTitle,
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
		ErrorHandler: writeError,
	})

	app.Use(recover.New())
	app.Use(middleware.NewRequestIDMiddleware())

	welcomeHandler := meta.NewWelcomeHandler(cfg.ServiceTitle)
	openAPIHandler := meta.NewOpenAPIHandler(deps.openAPI)

	getItemsHandler := item.NewGetItemsHandler(deps.repository, cfg.DefaultPageLimit)
	getItemHandler := item.NewGetItemHandler(deps.repository)
	createItemHandler := item.NewCreateItemHandler(deps.repository, deps.publisher, cfg.ServiceName)
	updateItemHandler := item.NewUpdateItemHandler(deps.repository, deps.publisher, cfg.ServiceName)
	deleteItemHandler := item.NewDeleteItemHandler(deps.repository, deps.publisher, cfg.ServiceName)

	app.Get("/", handle[meta.WelcomeRequest, meta.WelcomeResponse](welcomeHandler))
	app.Get(meta.OpenAPIPath, handle[meta.OpenAPIRequest, openapi3.T](openAPIHandler))

	app.Get("/items", handle[item.GetItemsRequest, item.GetItemsResponse](getItemsHandler))
	app.Get("/items/:id", handle[item.GetItemRequest, domain.Item](getItemHandler))
	app.Post("/items", handle[item.CreateItemRequest, domain.Item](createItemHandler))
	app.Put("/items/:id", handle[item.UpdateItemRequest, domain.Item](updateItemHandler))
	app.Delete("/items/:id", handle[item.DeleteItemRequest, item.DeleteItemResponse](deleteItemHandler))

	return app
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
