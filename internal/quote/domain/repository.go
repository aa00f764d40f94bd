package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	GetByID(ctx context.Context, id snowflake.ID) (*Quote, error)
	Save(ctx context.Context, quote *Quote) error
	UpdateSnapshot(ctx context.Context, id snowflake.ID, data QuoteData, presentation PresentationConfig) error
	UpdateDocument(ctx context.Context, id snowflake.ID, publicURL string) error
}

func ParseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidQuoteID
	}
	return id, nil
}

var (
	ErrInvalidQuoteID  = errors.New("invalid_quote_id")
	ErrQuoteNotFound   = errors.New("quote_not_found")
	ErrMetadataUpdate  = errors.New("metadata_update_failed")
	ErrInvalidSnapshot = errors.New("invalid_quote_snapshot")
)
