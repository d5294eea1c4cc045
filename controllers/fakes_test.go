package controllers_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"jewelry-backend/models"
	repositories "jewelry-backend/repository"

	"github.com/google/uuid"
)

// memStore backs the fake repositories used by the handler tests.
type memStore struct {
	orders    map[uuid.UUID]*models.Order
	details   []models.OrderDetail
	products  map[uuid.UUID]*models.Product
	customers map[uuid.UUID]*models.Customer
	stores    map[uuid.UUID]*models.Store
}

func newTestRepo() (*repositories.Repository, *memStore) {
	store := &memStore{
		orders:    make(map[uuid.UUID]*models.Order),
		products:  make(map[uuid.UUID]*models.Product),
		customers: make(map[uuid.UUID]*models.Customer),
		stores:    make(map[uuid.UUID]*models.Store),
	}
	repo := &repositories.Repository{
		Orders:    &fakeOrderRepo{store},
		Details:   &fakeDetailRepo{store},
		Products:  &fakeProductRepo{store},
		Customers: &fakeCustomerRepo{store},
		Stores:    &fakeStoreRepo{store},
	}
	return repo, store
}

func (m *memStore) detailsFor(orderID uuid.UUID) []models.OrderDetail {
	var out []models.OrderDetail
	for _, d := range m.details {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out
}

type fakeOrderRepo struct{ m *memStore }

func (f *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	for i := range order.OrderDetails {
		if order.OrderDetails[i].ID == uuid.Nil {
			order.OrderDetails[i].ID = uuid.New()
		}
		order.OrderDetails[i].OrderID = order.ID
		f.m.details = append(f.m.details, order.OrderDetails[i])
	}
	stored := *order
	stored.OrderDetails = nil
	f.m.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) find(id uuid.UUID) *models.Order {
	stored, ok := f.m.orders[id]
	if !ok {
		return nil
	}
	order := *stored
	order.OrderDetails = f.m.detailsFor(id)
	return &order
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	return f.find(id), nil
}

func (f *fakeOrderRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*models.Order, error) {
	return f.find(id), nil
}

func (f *fakeOrderRepo) FindAll(_ context.Context, filter repositories.OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	for id := range f.m.orders {
		order := f.find(id)
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		orders = append(orders, *order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (f *fakeOrderRepo) Save(_ context.Context, order *models.Order) error {
	stored := *order
	stored.OrderDetails = nil
	f.m.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) UpdateTotals(_ context.Context, id uuid.UUID, totalPrice, totalProfit int64, quantity int) error {
	order := f.m.orders[id]
	order.TotalPrice = totalPrice
	order.TotalProfit = totalProfit
	order.Quantity = quantity
	totalPaid := order.CashPaid + order.BankPaid
	order.RemainingAmount = max(0, totalPrice-totalPaid)
	order.ExcessAmount = max(0, totalPaid-totalPrice)
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.m.orders[id]; !ok {
		return 0, nil
	}
	delete(f.m.orders, id)
	return 1, nil
}

func (f *fakeOrderRepo) SumPaidProfit(_ context.Context, window *repositories.TimeRange, storeID *uuid.UUID) (int64, error) {
	var total int64
	for _, order := range f.m.orders {
		if order.Status == models.OrderStatusPaid {
			total += order.TotalProfit
		}
	}
	return total, nil
}

func (f *fakeOrderRepo) SumPaidQuantity(_ context.Context, window *repositories.TimeRange, storeID *uuid.UUID) (int64, error) {
	var total int64
	for _, order := range f.m.orders {
		if order.Status == models.OrderStatusPaid {
			total += int64(order.Quantity)
		}
	}
	return total, nil
}

func (f *fakeOrderRepo) CountByStatus(_ context.Context, storeID *uuid.UUID) (map[models.OrderStatus]int64, error) {
	counts := make(map[models.OrderStatus]int64)
	for _, order := range f.m.orders {
		counts[order.Status]++
	}
	return counts, nil
}

type fakeDetailRepo struct{ m *memStore }

func (f *fakeDetailRepo) BulkCreate(_ context.Context, details []models.OrderDetail) error {
	for i := range details {
		if details[i].ID == uuid.Nil {
			details[i].ID = uuid.New()
		}
		f.m.details = append(f.m.details, details[i])
	}
	return nil
}

func (f *fakeDetailRepo) FindByID(_ context.Context, id uuid.UUID) (*models.OrderDetail, error) {
	for _, d := range f.m.details {
		if d.ID == id {
			detail := d
			return &detail, nil
		}
	}
	return nil, nil
}

func (f *fakeDetailRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]models.OrderDetail, error) {
	return f.m.detailsFor(orderID), nil
}

func (f *fakeDetailRepo) DeleteByOrderID(_ context.Context, orderID uuid.UUID) error {
	kept := f.m.details[:0]
	for _, d := range f.m.details {
		if d.OrderID != orderID {
			kept = append(kept, d)
		}
	}
	f.m.details = kept
	return nil
}

func (f *fakeDetailRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	for i, d := range f.m.details {
		if d.ID == id {
			f.m.details = append(f.m.details[:i], f.m.details[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeProductRepo struct{ m *memStore }

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := f.m.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	product, ok := f.m.products[id]
	if !ok || product.Quantity < quantity {
		return repositories.ErrInsufficientStock
	}
	product.Quantity -= quantity
	return nil
}

type fakeCustomerRepo struct{ m *memStore }

func (f *fakeCustomerRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.m.customers[id]
	return ok, nil
}

func (f *fakeCustomerRepo) FindIDsByName(_ context.Context, name string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, c := range f.m.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.m.customers)), nil
}

func (f *fakeCustomerRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, c := range f.m.customers {
		if !c.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type fakeStoreRepo struct{ m *memStore }

func (f *fakeStoreRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.m.stores[id]
	return ok, nil
}
