package repositories

import (
	"context"
	"errors"

	"jewelry-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderDetailRepository defines the interface for line-item data access
type OrderDetailRepository interface {
	BulkCreate(ctx context.Context, details []models.OrderDetail) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.OrderDetail, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderDetail, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// GormOrderDetailRepository implements OrderDetailRepository using GORM
type GormOrderDetailRepository struct {
	db *gorm.DB
}

func NewGormOrderDetailRepository(db *gorm.DB) OrderDetailRepository {
	return &GormOrderDetailRepository{db: db}
}

func (r *GormOrderDetailRepository) BulkCreate(ctx context.Context, details []models.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *GormOrderDetailRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	err := r.db.WithContext(ctx).First(&detail, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *GormOrderDetailRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *GormOrderDetailRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OrderDetail{}, "order_id = ?", orderID).Error
}

func (r *GormOrderDetailRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.OrderDetail{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
