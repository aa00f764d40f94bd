package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Pointer identifies the currently published artifact for a quote. At most
// one live pointer exists per quote; publishes overwrite it in place.
type Pointer struct {
	QuoteID   snowflake.ID `gorm:"primaryKey;column:quote_id"`
	PublicURL string       `gorm:"type:text;not null"`
	Stale     bool         `gorm:"not null;default:false"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Pointer) TableName() string { return "document_pointers" }

type PointerRepository interface {
	// Get returns nil without error when no pointer exists.
	Get(ctx context.Context, quoteID snowflake.ID) (*Pointer, error)
	Upsert(ctx context.Context, pointer Pointer) error
	// MarkStale invalidates the pointer so the next download republishes.
	// Marking a quote with no pointer is a no-op.
	MarkStale(ctx context.Context, quoteID snowflake.ID) error
}

var (
	ErrPointerUpdate = errors.New("pointer_update_failed")
)
