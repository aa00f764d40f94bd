package scheduler

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type workEvent struct {
	ID        snowflake.ID
	QuoteID   snowflake.ID
	EventType string
	Payload   datatypes.JSONMap
	CreatedAt time.Time
}

// DispatchPending claims one batch of undispatched events and marks them
// dispatched. Delivery is a structured log entry; downstream consumers tail
// the log or read the table directly.
func (s *Scheduler) DispatchPending(ctx context.Context) error {
	events, err := s.fetchEventsForWork(ctx, s.batchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		s.log.Info("document event",
			zap.String("event_id", event.ID.String()),
			zap.String("quote_id", event.QuoteID.String()),
			zap.String("type", event.EventType),
			zap.Time("created_at", event.CreatedAt),
		)
	}
	return nil
}

func (s *Scheduler) fetchEventsForWork(ctx context.Context, limit int) ([]workEvent, error) {
	if limit <= 0 {
		limit = defaultBatchSize
	}
	var events []workEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Raw(
			`SELECT id, quote_id, event_type, payload, created_at
			 FROM document_events
			 WHERE dispatched_at IS NULL
			 ORDER BY created_at ASC, id ASC
			 FOR UPDATE SKIP LOCKED
			 LIMIT ?`,
			limit,
		).Scan(&events).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		ids := make([]snowflake.ID, 0, len(events))
		for _, event := range events {
			ids = append(ids, event.ID)
		}
		return tx.WithContext(ctx).Exec(
			`UPDATE document_events
			 SET dispatched_at = ?
			 WHERE id IN ?`,
			time.Now().UTC(),
			ids,
		).Error
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
