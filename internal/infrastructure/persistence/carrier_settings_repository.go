package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/persistence/models"
)

// GormCarrierSettingsRepository implements shipping.SettingsStore using GORM.
// Settings are read fresh on every call so credential or enablement changes
// take effect without a restart.
type GormCarrierSettingsRepository struct {
	db *gorm.DB
}

// NewGormCarrierSettingsRepository creates a new GormCarrierSettingsRepository
func NewGormCarrierSettingsRepository(db *gorm.DB) *GormCarrierSettingsRepository {
	return &GormCarrierSettingsRepository{db: db}
}

// Get returns the settings row for a provider
func (r *GormCarrierSettingsRepository) Get(ctx context.Context, provider shipping.ServiceProvider) (shipping.CarrierSettings, error) {
	var model models.CarrierSettingsModel
	if err := r.db.WithContext(ctx).
		First(&model, "service_provider = ?", string(provider)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shipping.CarrierSettings{}, shipping.ErrSettingsNotFound
		}
		return shipping.CarrierSettings{}, err
	}
	return model.ToDomain(), nil
}

// Ensure GormCarrierSettingsRepository implements SettingsStore
var _ shipping.SettingsStore = (*GormCarrierSettingsRepository)(nil)
