package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pointerRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.PointerRepository {
	return &pointerRepository{db: db}
}

func (r *pointerRepository) Get(ctx context.Context, quoteID snowflake.ID) (*domain.Pointer, error) {
	var pointer domain.Pointer
	err := r.db.WithContext(ctx).First(&pointer, "quote_id = ?", quoteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pointer, nil
}

func (r *pointerRepository) Upsert(ctx context.Context, pointer domain.Pointer) error {
	pointer.UpdatedAt = time.Now().UTC()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"public_url", "stale", "updated_at"}),
		}).
		Create(&pointer).Error
	if err != nil {
		return domain.ErrPointerUpdate
	}
	return nil
}

func (r *pointerRepository) MarkStale(ctx context.Context, quoteID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Pointer{}).
		Where("quote_id = ?", quoteID).
		Updates(map[string]any{
			"stale":      true,
			"updated_at": time.Now().UTC(),
		}).Error
}
