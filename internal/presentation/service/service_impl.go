package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/presentation/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("presentation.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	template := domain.PresentationTemplate{
		ID:        s.genID.Generate(),
		Name:      name,
		IsDefault: req.IsDefault,
		Style:     datatypes.JSONMap(req.Style),
		Contact:   datatypes.JSONMap(req.Contact),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if template.IsDefault {
			if err := clearDefault(ctx, tx); err != nil {
				return err
			}
		}
		return tx.Create(&template).Error
	})
	if err != nil {
		return nil, err
	}
	return toResponse(template), nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	var templates []domain.PresentationTemplate
	if err := s.db.WithContext(ctx).
		Order("is_default DESC, name ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	responses := make([]domain.Response, 0, len(templates))
	for _, template := range templates {
		responses = append(responses, *toResponse(template))
	}
	return responses, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	templateID, err := domain.ParseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	template, err := s.load(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return toResponse(*template), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	templateID, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	template, err := s.load(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		template.Name = name
	}
	if req.Style != nil {
		template.Style = datatypes.JSONMap(req.Style)
	}
	if req.Contact != nil {
		template.Contact = datatypes.JSONMap(req.Contact)
	}
	template.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(template).Error; err != nil {
		return nil, err
	}
	return toResponse(*template), nil
}

func (s *Service) SetDefault(ctx context.Context, id string) (*domain.Response, error) {
	templateID, err := domain.ParseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	template, err := s.load(ctx, templateID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefault(ctx, tx); err != nil {
			return err
		}
		return tx.Model(&domain.PresentationTemplate{}).
			Where("id = ?", templateID).
			Updates(map[string]any{"is_default": true, "updated_at": time.Now().UTC()}).Error
	})
	if err != nil {
		return nil, err
	}
	template.IsDefault = true
	return toResponse(*template), nil
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (*domain.PresentationTemplate, error) {
	var template domain.PresentationTemplate
	err := s.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func clearDefault(ctx context.Context, tx *gorm.DB) error {
	return tx.WithContext(ctx).
		Model(&domain.PresentationTemplate{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

func toResponse(template domain.PresentationTemplate) *domain.Response {
	return &domain.Response{
		ID:        template.ID.String(),
		Name:      template.Name,
		IsDefault: template.IsDefault,
		Style:     map[string]any(template.Style),
		Contact:   map[string]any(template.Contact),
		CreatedAt: template.CreatedAt,
		UpdatedAt: template.UpdatedAt,
	}
}
