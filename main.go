package main

import (
	"context"
	"os"
	"os/signal"
	"sampleapi/app/meta"
	"sampleapi/infra/grpc"
	"sampleapi/infra/memory"
	"sampleapi/infra/rabbitmq"
	"sampleapi/pkg/config"
	"sampleapi/pkg/events"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config", zap.Any("appConfig", appConfig))

	openAPI, err := meta.LoadOpenAPI(context.Background(), meta.Info{
		Title:   appConfig.ServiceTitle,
		Version: appConfig.ServiceVersion,
	})
	if err != nil {
		zap.L().Fatal("Failed to load OpenAPI document", zap.Error(err))
	}

	repository := memory.NewMemRepository()
	defer repository.Close()

	var publisher events.Publisher
	var rabbitPublisher *rabbitmq.Publisher
	if appConfig.RabbitMQURL != "" {
		rabbitPublisher, err = rabbitmq.NewPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Event publishing disabled", zap.Error(err))
		} else {
			publisher = rabbitPublisher
			defer publisher.Close()
		}
	}

	app := newApp(dependencies{
		config:     appConfig,
		repository: repository,
		publisher:  publisher,
		openAPI:    openAPI,
	})

	var grpcServer *grpc.Server
	if appConfig.GRPCPort != "" {
		grpcServer, err = grpc.NewServer(appConfig.GRPCPort)
		if err != nil {
			zap.L().Fatal("Failed to create gRPC server", zap.Error(err))
		}

		go func() {
			if err := grpcServer.Start(); err != nil {
				zap.L().Error("Failed to start gRPC server", zap.Error(err))
				os.Exit(1)
			}
		}()

		if rabbitPublisher != nil {
			watchCtx, stopWatch := context.WithCancel(context.Background())
			defer stopWatch()
			go grpcServer.WatchDependency(watchCtx, grpc.EventPublisherServiceName, rabbitPublisher.IsHealthy, 15*time.Second)
		}
	}

	go func() {
		if err := app.Listen(appConfig.Address()); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app, grpcServer)
}

func gracefulShutdown(app *fiber.App, grpcServer *grpc.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}
