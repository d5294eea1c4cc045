package repositories

import (
	"context"
	"time"

	"jewelry-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository is the customer side of the party registry. Orders
// reference customers by foreign key, so the registry only answers existence,
// name-search and growth-statistic queries.
type CustomerRepository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindIDsByName(ctx context.Context, name string) ([]uuid.UUID, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// StoreRepository is the store side of the party registry.
type StoreRepository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// FindIDsByName matches customer names case-insensitively, substring match.
func (r *GormCustomerRepository) FindIDsByName(ctx context.Context, name string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("name ILIKE ?", "%"+name+"%").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}

func (r *GormCustomerRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

type GormStoreRepository struct {
	db *gorm.DB
}

func NewGormStoreRepository(db *gorm.DB) StoreRepository {
	return &GormStoreRepository{db: db}
}

func (r *GormStoreRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
