package seed

import (
	"context"
	"errors"
	"time"

	presdomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/presentation/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDefaultTemplate seeds a default presentation template so a fresh
// install can compile documents before any template is saved.
func EnsureDefaultTemplate(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).
			Model(&presdomain.PresentationTemplate{}).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		template := presdomain.PresentationTemplate{
			ID:        node.Generate(),
			Name:      "Classic",
			IsDefault: true,
			Style: datatypes.JSONMap{
				"primaryColor":   "#1a2a4f",
				"secondaryColor": "#c8a35f",
				"fontFamily":     "Georgia, serif",
			},
			Contact:   datatypes.JSONMap{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Create(&template).Error
	})
}
