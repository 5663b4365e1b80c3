package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"karma-manager/internal/config"
	"karma-manager/internal/events"
	"karma-manager/internal/messaging/kafka/consumer"
	"karma-manager/internal/presence"
	"karma-manager/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const presenceGroupID = "karma-manager-presence"

// RunConsumer applies punch events to the presence board until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	board := presence.NewBoard(rdb, loc, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.PunchRecordedTopic,
		GroupID:        presenceGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumePunchRecorded(ctx, reader, board, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
