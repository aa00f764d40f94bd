package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event describes a document lifecycle event to store in the outbox.
type Event struct {
	QuoteID snowflake.ID
	Type    string
	Payload map[string]any
}

// Outbox appends document events to the document_events table for
// downstream consumers (notifications, quote history).
type Outbox struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewOutbox(db *gorm.DB, genID *snowflake.Node) *Outbox {
	return &Outbox{db: db, genID: genID}
}

func (o *Outbox) Publish(ctx context.Context, event Event) error {
	if o == nil || o.db == nil || o.genID == nil {
		return errors.New("outbox_unavailable")
	}
	if event.QuoteID == 0 {
		return errors.New("invalid_quote_id")
	}
	name := strings.TrimSpace(event.Type)
	if name == "" {
		return errors.New("missing_event_type")
	}

	payload := datatypes.JSONMap{}
	for key, value := range event.Payload {
		if strings.TrimSpace(key) == "" {
			continue
		}
		payload[key] = value
	}

	return o.db.WithContext(ctx).Exec(
		`INSERT INTO document_events (id, quote_id, event_type, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		o.genID.Generate(),
		event.QuoteID,
		name,
		payload,
		time.Now().UTC(),
	).Error
}
