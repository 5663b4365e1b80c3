package presence

import (
	"context"

	"karma-manager/internal/attendance"
	"karma-manager/internal/events"

	"go.uber.org/zap"
)

// Applier is satisfied by Board.
type Applier interface {
	Apply(ctx context.Context, evt events.PunchRecordedEvent) error
}

// FeedFromLedger returns a Pump callback that mirrors in-process punches onto
// the board. It is used when no broker relays punch events.
func FeedFromLedger(board Applier, logger *zap.Logger) func(context.Context, attendance.PunchEvent) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("presence.feed")
	return func(ctx context.Context, evt attendance.PunchEvent) {
		wire := attendance.NewPunchRecordedEvent(evt, evt.PersonName, "")
		if err := board.Apply(ctx, wire); err != nil {
			log.Warn("presence update failed",
				zap.String("company_id", evt.CompanyID),
				zap.String("person_id", evt.Record.PersonID),
				zap.Error(err),
			)
		}
	}
}
