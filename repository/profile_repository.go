package repository

import (
	"context"

	"storefront-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressRepository defines data access for saved addresses.
type AddressRepository interface {
	Create(ctx context.Context, addr *models.Address) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.Address, error)
	Update(ctx context.Context, addr *models.Address) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ClearDefault(ctx context.Context, userID uuid.UUID, addrType string) error
}

type gormAddressRepo struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) AddressRepository {
	return &gormAddressRepo{db: db}
}

func (r *gormAddressRepo) Create(ctx context.Context, addr *models.Address) error {
	return r.db.WithContext(ctx).Create(addr).Error
}

func (r *gormAddressRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addrs []models.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *gormAddressRepo) FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.Address, error) {
	var addr models.Address
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&addr).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *gormAddressRepo) Update(ctx context.Context, addr *models.Address) error {
	return r.db.WithContext(ctx).Save(addr).Error
}

func (r *gormAddressRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormAddressRepo) ClearDefault(ctx context.Context, userID uuid.UUID, addrType string) error {
	return r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("user_id = ? AND type = ?", userID, addrType).
		Update("is_default", false).Error
}

// MeasurementRepository defines data access for saved measurements.
type MeasurementRepository interface {
	Create(ctx context.Context, m *models.Measurement) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Measurement, error)
	FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.Measurement, error)
	Update(ctx context.Context, m *models.Measurement) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type gormMeasurementRepo struct {
	db *gorm.DB
}

func NewGormMeasurementRepository(db *gorm.DB) MeasurementRepository {
	return &gormMeasurementRepo{db: db}
}

func (r *gormMeasurementRepo) Create(ctx context.Context, m *models.Measurement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormMeasurementRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Measurement, error) {
	var ms []models.Measurement
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *gormMeasurementRepo) FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.Measurement, error) {
	var m models.Measurement
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormMeasurementRepo) Update(ctx context.Context, m *models.Measurement) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *gormMeasurementRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Measurement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WishlistRepository defines data access for wishlist entries.
type WishlistRepository interface {
	Add(ctx context.Context, item *models.WishlistItem) error
	Remove(ctx context.Context, userID uuid.UUID, productID string) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
}

type gormWishlistRepo struct {
	db *gorm.DB
}

func NewGormWishlistRepository(db *gorm.DB) WishlistRepository {
	return &gormWishlistRepo{db: db}
}

func (r *gormWishlistRepo) Add(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormWishlistRepo) Remove(ctx context.Context, userID uuid.UUID, productID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormWishlistRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
