package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PresentationTemplate is a saved branding preset the form layer can apply
// to a quote before compilation.
type PresentationTemplate struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	Name      string            `gorm:"type:text;not null"`
	IsDefault bool              `gorm:"not null;default:false"`
	Style     datatypes.JSONMap `gorm:"type:jsonb"`
	Contact   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PresentationTemplate) TableName() string { return "presentation_templates" }

type CreateRequest struct {
	Name      string         `json:"name"`
	IsDefault bool           `json:"is_default"`
	Style     map[string]any `json:"style"`
	Contact   map[string]any `json:"contact"`
}

type UpdateRequest struct {
	ID      string         `json:"id"`
	Name    *string        `json:"name"`
	Style   map[string]any `json:"style"`
	Contact map[string]any `json:"contact"`
}

type Response struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	IsDefault bool           `json:"is_default"`
	Style     map[string]any `json:"style"`
	Contact   map[string]any `json:"contact"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	SetDefault(ctx context.Context, id string) (*Response, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("not_found")
)
