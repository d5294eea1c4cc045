package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrInsufficientStock is returned by ProductRepository.DecrementStock when
// the conditional update finds less stock than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository bundles the per-entity repositories behind one handle so the
// order engine can run multi-entity steps inside a single transaction.
type Repository struct {
	Orders    OrderRepository
	Details   OrderDetailRepository
	Products  ProductRepository
	Customers CustomerRepository
	Stores    StoreRepository

	db *gorm.DB
}

// New builds a Repository backed by the given GORM handle.
func New(db *gorm.DB) *Repository {
	return &Repository{
		Orders:    NewGormOrderRepository(db),
		Details:   NewGormOrderDetailRepository(db),
		Products:  NewGormProductRepository(db),
		Customers: NewGormCustomerRepository(db),
		Stores:    NewGormStoreRepository(db),
		db:        db,
	}
}

// WithTx runs fn against transaction-scoped repositories. A Repository built
// without a database handle (test fakes) runs fn against itself.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(New(txdb))
	})
}
