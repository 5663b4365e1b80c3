package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"karma-manager/internal/events"
	"karma-manager/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	minApplyBackoff = 50 * time.Millisecond
	maxApplyBackoff = 5 * time.Second
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// PunchApplier receives decoded punch events, e.g. the presence board.
type PunchApplier interface {
	Apply(ctx context.Context, evt events.PunchRecordedEvent) error
}

func ConsumePunchRecorded(
	ctx context.Context,
	reader MessageReader,
	applier PunchApplier,
	logger *zap.Logger,
) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("kafka.consumer.punch")
	log.Info("punch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("punch consumer stopped")
				return
			}
			log.Error("fetch punch message failed", zap.Error(err))
			continue
		}

		var event events.PunchRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode punch_recorded event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			commit(ctx, reader, msg, log)
			continue
		}
		if event.EventType != "" && event.EventType != events.PunchRecordedEventType {
			log.Warn("skipping unexpected event type", zap.String("event_type", event.EventType))
			commit(ctx, reader, msg, log)
			continue
		}

		if err := applyWithRetry(ctx, applier, event, log); err != nil {
			if isPoison(err) {
				log.Warn("dropping invalid punch event",
					zap.String("company_id", event.CompanyID),
					zap.String("person_id", event.PersonID),
					zap.Error(err),
				)
				commit(ctx, reader, msg, log)
				continue
			}

			// only cancellation ends the retry loop; the offset stays uncommitted
			log.Info("punch consumer stopped before applying event",
				zap.Int64("offset", msg.Offset),
				zap.String("person_id", event.PersonID),
			)
			return
		}

		commit(ctx, reader, msg, log)
		log.Debug("punch event applied",
			zap.String("request_id", event.RequestID),
			zap.String("company_id", event.CompanyID),
			zap.String("person_id", event.PersonID),
			zap.String("direction", event.Direction),
		)
	}
}

// applyWithRetry retries transient failures with capped exponential backoff
// until the event is applied, the error is poison, or ctx is done. Later
// commits would also commit this offset, so the consumer does not move on.
func applyWithRetry(ctx context.Context, applier PunchApplier, event events.PunchRecordedEvent, log *zap.Logger) error {
	backoff := minApplyBackoff
	for attempt := 1; ; attempt++ {
		err := applier.Apply(ctx, event)
		if err == nil || isPoison(err) {
			return err
		}

		log.Warn("apply punch event failed, retrying",
			zap.String("request_id", event.RequestID),
			zap.String("company_id", event.CompanyID),
			zap.String("person_id", event.PersonID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > maxApplyBackoff {
			backoff = maxApplyBackoff
		}
	}
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit punch message failed", zap.Error(err))
	}
}

// isPoison reports errors that will never succeed on redelivery.
func isPoison(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < 500
}
