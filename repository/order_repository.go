package repositories

import (
	"context"
	"errors"
	"time"

	"jewelry-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows FindAll results.
type OrderFilter struct {
	Status      *models.OrderStatus
	CustomerIDs []uuid.UUID
	StoreID     *uuid.UUID
}

// TimeRange is an inclusive creation-time window for report queries.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	UpdateTotals(ctx context.Context, id uuid.UUID, totalPrice, totalProfit int64, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	SumPaidProfit(ctx context.Context, window *TimeRange, storeID *uuid.UUID) (int64, error)
	SumPaidQuantity(ctx context.Context, window *TimeRange, storeID *uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, storeID *uuid.UUID) (map[models.OrderStatus]int64, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OrderDetails", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Payments")
}

// Create persists an order together with its line items and payment-method
// associations. Payment method rows themselves are never written here.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Payments.*").Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := preloadOrder(r.db.WithContext(ctx)).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate loads an order under a row lock so concurrent payment
// application cannot lose updates to the accumulators or status.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("created_at ASC").
		Find(&order.OrderDetails).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if len(filter.CustomerIDs) > 0 {
		query = query.Where("customer_id IN ?", filter.CustomerIDs)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}

	if err := preloadOrder(query).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).
		Omit("Payments", "OrderDetails").
		Save(order).Error
}

func (r *GormOrderRepository) UpdateTotals(ctx context.Context, id uuid.UUID, totalPrice, totalProfit int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_price":      totalPrice,
			"total_profit":     totalProfit,
			"quantity":         quantity,
			"remaining_amount": gorm.Expr("GREATEST(0, ? - (cash_paid + bank_paid))", totalPrice),
			"excess_amount":    gorm.Expr("GREATEST(0, (cash_paid + bank_paid) - ?)", totalPrice),
		}).Error
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *GormOrderRepository) paidScope(ctx context.Context, window *TimeRange, storeID *uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid)
	if window != nil {
		query = query.Where("created_at BETWEEN ? AND ?", window.Start, window.End)
	}
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}
	return query
}

func (r *GormOrderRepository) SumPaidProfit(ctx context.Context, window *TimeRange, storeID *uuid.UUID) (int64, error) {
	var total int64
	err := r.paidScope(ctx, window, storeID).
		Select("COALESCE(SUM(total_profit), 0)").
		Scan(&total).Error
	return total, err
}

func (r *GormOrderRepository) SumPaidQuantity(ctx context.Context, window *TimeRange, storeID *uuid.UUID) (int64, error) {
	var total int64
	err := r.paidScope(ctx, window, storeID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *GormOrderRepository) CountByStatus(ctx context.Context, storeID *uuid.UUID) (map[models.OrderStatus]int64, error) {
	type statusCount struct {
		Status models.OrderStatus
		Count  int64
	}
	var rows []statusCount

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}
	if err := query.
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
