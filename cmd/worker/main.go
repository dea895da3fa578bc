package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sampleapi/infra/rabbitmq"
	"sampleapi/internal/consumers"
	"sampleapi/pkg/config"
	"sampleapi/pkg/events"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Item audit worker starting...")

	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for worker service")
	}

	auditHandler := consumers.NewItemAuditHandler(zap.L())

	consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, rabbitmq.ConsumerConfig{
		Exchange:       events.ItemExchange,
		QueueName:      events.ItemExchange + ".audit." + events.EventVersionV1,
		RoutingKeys:    []string{events.ItemDomain + ".*." + events.EventVersionV1},
		ServiceName:    appConfig.ServiceName,
		PrefetchCount:  10,
		WorkerPoolSize: 4,
	})
	if err != nil {
		zap.L().Fatal("Failed to create item consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	zap.L().Info("Worker service started successfully. Waiting for events...")

	if err := consumer.Consume(ctx, auditHandler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		zap.L().Error("Item consumer error", zap.Error(err))
	}

	zap.L().Info("Worker service stopped gracefully")
}
