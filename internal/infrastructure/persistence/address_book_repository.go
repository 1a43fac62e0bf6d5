package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/persistence/models"
)

// GormAddressRepository implements shipping.AddressResolver over the ERP
// address book.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// Resolve returns the address stored under the given document name
func (r *GormAddressRepository) Resolve(ctx context.Context, name string) (shipping.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).
		First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shipping.Address{}, shipping.ErrAddressNotFound
		}
		return shipping.Address{}, err
	}
	return model.ToDomain(), nil
}

// GormContactRepository implements shipping.ContactResolver over the ERP
// address book.
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Resolve returns the contact stored under the given document name
func (r *GormContactRepository) Resolve(ctx context.Context, name string) (shipping.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).
		First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shipping.Contact{}, shipping.ErrContactNotFound
		}
		return shipping.Contact{}, err
	}
	return model.ToDomain(), nil
}

// ResolveCompanyContact returns the contact linked to the given ERP user.
// Company trips resolve their contact by user instead of by document name.
func (r *GormContactRepository) ResolveCompanyContact(ctx context.Context, user string) (shipping.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).
		First(&model, "\"user\" = ?", user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shipping.Contact{}, shipping.ErrContactNotFound
		}
		return shipping.Contact{}, err
	}
	return model.ToDomain(), nil
}

// Ensure the repositories implement the resolver interfaces
var (
	_ shipping.AddressResolver = (*GormAddressRepository)(nil)
	_ shipping.ContactResolver = (*GormContactRepository)(nil)
)
