package settings

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository persists the settings row.
type Repository interface {
	Get(ctx context.Context) (*PortalSettings, error)
	Update(ctx context.Context, s *PortalSettings) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed settings repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Migrate creates the settings table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&PortalSettings{}); err != nil {
		return fmt.Errorf("failed to migrate settings schema: %w", err)
	}
	return nil
}

// Get returns the settings row, seeding it with defaults on first use.
func (r *gormRepository) Get(ctx context.Context) (*PortalSettings, error) {
	s := PortalSettings{ID: 1, FooterCaption: DefaultFooterCaption}
	if err := r.db.WithContext(ctx).FirstOrCreate(&s, PortalSettings{ID: 1}).Error; err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &s, nil
}

func (r *gormRepository) Update(ctx context.Context, s *PortalSettings) error {
	s.ID = 1
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
