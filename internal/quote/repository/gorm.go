package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type quoteRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) GetByID(ctx context.Context, id snowflake.ID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) Save(ctx context.Context, quote *domain.Quote) error {
	if quote == nil || quote.ID == 0 {
		return domain.ErrInvalidQuoteID
	}
	now := time.Now().UTC()
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = now
	}
	quote.UpdatedAt = now
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *quoteRepository) UpdateSnapshot(ctx context.Context, id snowflake.ID, data domain.QuoteData, presentation domain.PresentationConfig) error {
	rawData, err := json.Marshal(data)
	if err != nil {
		return domain.ErrInvalidSnapshot
	}
	rawPresentation, err := json.Marshal(presentation)
	if err != nil {
		return domain.ErrInvalidSnapshot
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"data":         rawData,
			"presentation": rawPresentation,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepository) UpdateDocument(ctx context.Context, id snowflake.ID, publicURL string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       domain.QuoteStatusDocumented,
			"document_url": publicURL,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return domain.ErrMetadataUpdate
	}
	if result.RowsAffected == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}
