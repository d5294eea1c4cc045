package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jewelry-backend/apperrors"
	"jewelry-backend/logger"
	"jewelry-backend/models"
	repositories "jewelry-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderLineInput is one requested product-quantity pair.
type OrderLineInput struct {
	ProductID uuid.UUID `json:"productID" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the payload for order creation. DeviceToken is only
// set by the mobile endpoint and triggers a best-effort push notification.
type CreateOrderRequest struct {
	CustomerID   uuid.UUID        `json:"customerID" binding:"required"`
	StoreID      uuid.UUID        `json:"storeID" binding:"required"`
	Description  string           `json:"description"`
	Payments     []uuid.UUID      `json:"payments"`
	OrderDetails []OrderLineInput `json:"orderDetails" binding:"dive"`
	DeviceToken  string           `json:"deviceToken"`
}

// UpdateOrderRequest carries a payment application and/or a status or
// description change for the guarded update path. Zero payment amounts mean
// "no payment supplied".
type UpdateOrderRequest struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	CashPaid    int64  `json:"cashPaid"`
	BankPaid    int64  `json:"bankPaid"`
}

// OrderService owns the order lifecycle: creation, line replacement, payment
// application, status overrides and deletion.
type OrderService struct {
	repo     *repositories.Repository
	events   EventPublisher
	notifier PushNotifier
	now      func() time.Time
}

func NewOrderService(repo *repositories.Repository, events EventPublisher, notifier PushNotifier) *OrderService {
	return &OrderService{
		repo:     repo,
		events:   events,
		notifier: notifier,
		now:      time.Now,
	}
}

// buildLines resolves each requested product and snapshots line totals at the
// current catalog price and profit. Stock is checked but not mutated.
func (s *OrderService) buildLines(ctx context.Context, tx *repositories.Repository, items []OrderLineInput) ([]models.OrderDetail, LineTotals, error) {
	details := make([]models.OrderDetail, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, LineTotals{}, apperrors.InvalidArgument("quantity must be at least 1")
		}

		product, err := tx.Products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, LineTotals{}, apperrors.Internal(err)
		}
		if product == nil {
			return nil, LineTotals{}, apperrors.NotFound(fmt.Sprintf("product %s not found", item.ProductID))
		}
		if item.Quantity > product.Quantity {
			return nil, LineTotals{}, apperrors.InsufficientStock(
				fmt.Sprintf("not enough stock for product %s: available %d, requested %d", product.Name, product.Quantity, item.Quantity))
		}

		details = append(details, models.OrderDetail{
			ProductID:   product.ID,
			Quantity:    item.Quantity,
			TotalPrice:  product.Price * int64(item.Quantity),
			TotalProfit: product.Profit * int64(item.Quantity),
		})
	}
	return details, AggregateLines(details), nil
}

// CreateOrder validates the referenced parties and products, snapshots line
// totals and persists the order in pending status. Stock is untouched until
// settlement.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	var order *models.Order

	err := s.repo.WithTx(ctx, func(tx *repositories.Repository) error {
		ok, err := tx.Customers.Exists(ctx, req.CustomerID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if !ok {
			return apperrors.NotFound("customer not found")
		}

		ok, err = tx.Stores.Exists(ctx, req.StoreID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if !ok {
			return apperrors.NotFound("store not found")
		}

		details, totals, err := s.buildLines(ctx, tx, req.OrderDetails)
		if err != nil {
			return err
		}

		payments := make([]models.PaymentMethod, 0, len(req.Payments))
		for _, id := range req.Payments {
			payments = append(payments, models.PaymentMethod{ID: id})
		}

		order = &models.Order{
			CustomerID:      req.CustomerID,
			StoreID:         req.StoreID,
			Description:     req.Description,
			Status:          models.OrderStatusPending,
			TotalPrice:      totals.TotalPrice,
			TotalProfit:     totals.TotalProfit,
			Quantity:        totals.Quantity,
			RemainingAmount: totals.TotalPrice,
			Payments:        payments,
			OrderDetails:    details,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, order, "order.created")

	if req.DeviceToken != "" && s.notifier != nil {
		if err := s.notifier.Notify(ctx, req.DeviceToken, "Order created",
			fmt.Sprintf("Order %s created, total %d", order.ID, order.TotalPrice)); err != nil {
			logger.Warn(ctx, "Push notification failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}

	return order, nil
}

// ReplaceOrderLines drops every existing line of a pending order and rebuilds
// the set from the request, recomputing the aggregate totals. Lines omitted
// from the new list are gone.
func (s *OrderService) ReplaceOrderLines(ctx context.Context, orderID uuid.UUID, items []OrderLineInput) (*models.Order, error) {
	var order *models.Order

	err := s.repo.WithTx(ctx, func(tx *repositories.Repository) error {
		existing, err := tx.Orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if existing == nil {
			return apperrors.NotFound("order not found")
		}
		if existing.Status != models.OrderStatusPending {
			return apperrors.InvalidState("order already processed")
		}

		details, totals, err := s.buildLines(ctx, tx, items)
		if err != nil {
			return err
		}

		if err := tx.Details.DeleteByOrderID(ctx, orderID); err != nil {
			return apperrors.Internal(err)
		}
		for i := range details {
			details[i].OrderID = orderID
		}
		if err := tx.Details.BulkCreate(ctx, details); err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Orders.UpdateTotals(ctx, orderID, totals.TotalPrice, totals.TotalProfit, totals.Quantity); err != nil {
			return apperrors.Internal(err)
		}

		order, err = tx.Orders.FindByID(ctx, orderID)
		if err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrder applies a payment and/or updates status and description on an
// order that is still pending or notEnough. A payment that covers the full
// total settles the order: status flips to paid and every line's product
// stock is decremented, all inside the same transaction. The precondition
// blocks re-entry, so settlement cannot decrement stock twice.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, req *UpdateOrderRequest) (*models.Order, error) {
	if req.CashPaid < 0 || req.BankPaid < 0 {
		return nil, apperrors.InvalidArgument("payment amounts must not be negative")
	}

	var (
		order   *models.Order
		settled bool
	)

	err := s.repo.WithTx(ctx, func(tx *repositories.Repository) error {
		var err error
		order, err = tx.Orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if order == nil {
			return apperrors.NotFound("order not found")
		}
		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusNotEnough {
			return apperrors.InvalidState("order already processed")
		}

		if req.CashPaid != 0 || req.BankPaid != 0 {
			if models.OrderStatus(req.Status) != models.OrderStatusPaid {
				return apperrors.InvalidArgument("invalid status for payment update")
			}

			order.CashPaid += req.CashPaid
			order.BankPaid += req.BankPaid
			totalPaid := order.CashPaid + order.BankPaid
			order.RemainingAmount = max(0, order.TotalPrice-totalPaid)
			order.ExcessAmount = max(0, totalPaid-order.TotalPrice)

			if order.RemainingAmount <= 0 {
				order.Status = models.OrderStatusPaid
				settled = true
				for _, detail := range order.OrderDetails {
					if err := tx.Products.DecrementStock(ctx, detail.ProductID, detail.Quantity); err != nil {
						if errors.Is(err, repositories.ErrInsufficientStock) {
							return apperrors.InsufficientStock(
								fmt.Sprintf("not enough stock to settle product %s", detail.ProductID))
						}
						return apperrors.Internal(err)
					}
				}
			} else {
				order.Status = models.OrderStatusNotEnough
			}
		} else if req.Status != "" {
			status := models.OrderStatus(req.Status)
			if !status.Valid() {
				return apperrors.InvalidArgument("unknown order status")
			}
			order.Status = status
		}

		if req.Description != "" {
			order.Description = req.Description
		}

		if err := tx.Orders.Save(ctx, order); err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if settled {
		s.publishEvent(ctx, order, "order.settled")
	}
	return order, nil
}

// OverrideStatus is the unconditional admin path: any recognized status can
// be set regardless of the current one, and stock is never touched. Manual
// correction tool, kept deliberately out of the settlement flow.
func (s *OrderService) OverrideStatus(ctx context.Context, orderID uuid.UUID, status, description string) (*models.Order, error) {
	newStatus := models.OrderStatus(status)
	if !newStatus.Valid() {
		return nil, apperrors.InvalidArgument("unknown order status")
	}

	var order *models.Order
	err := s.repo.WithTx(ctx, func(tx *repositories.Repository) error {
		var err error
		order, err = tx.Orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if order == nil {
			return apperrors.NotFound("order not found")
		}

		order.Status = newStatus
		if description != "" {
			order.Description = description
		}
		if err := tx.Orders.Save(ctx, order); err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order and all its line items.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.repo.WithTx(ctx, func(tx *repositories.Repository) error {
		existing, err := tx.Orders.FindByID(ctx, orderID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if existing == nil {
			return apperrors.NotFound("order not found")
		}

		if err := tx.Details.DeleteByOrderID(ctx, orderID); err != nil {
			return apperrors.Internal(err)
		}
		if _, err := tx.Orders.Delete(ctx, orderID); err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

// DeleteOrderLine removes a single line item and recomputes the parent
// order's aggregate totals from the remaining lines.
func (s *OrderService) DeleteOrderLine(ctx context.Context, detailID uuid.UUID) error {
	return s.repo.WithTx(ctx, func(tx *repositories.Repository) error {
		detail, err := tx.Details.FindByID(ctx, detailID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if detail == nil {
			return apperrors.NotFound("order detail not found")
		}

		order, err := tx.Orders.FindByIDForUpdate(ctx, detail.OrderID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if order == nil {
			return apperrors.NotFound("order not found")
		}

		if _, err := tx.Details.Delete(ctx, detailID); err != nil {
			return apperrors.Internal(err)
		}
		remaining, err := tx.Details.FindByOrderID(ctx, order.ID)
		if err != nil {
			return apperrors.Internal(err)
		}
		totals := AggregateLines(remaining)
		if err := tx.Orders.UpdateTotals(ctx, order.ID, totals.TotalPrice, totals.TotalProfit, totals.Quantity); err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

// GetOrder fetches one order with its lines and payment methods.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if order == nil {
		return nil, apperrors.NotFound("order not found")
	}
	return order, nil
}

// ListOrders returns orders newest-first, optionally filtered by status and
// by customer name (case-insensitive substring match).
func (s *OrderService) ListOrders(ctx context.Context, status, customerName string) ([]models.Order, error) {
	var filter repositories.OrderFilter

	if status != "" {
		st := models.OrderStatus(status)
		if !st.Valid() {
			return nil, apperrors.InvalidArgument("unknown order status")
		}
		filter.Status = &st
	}
	if customerName != "" {
		ids, err := s.repo.Customers.FindIDsByName(ctx, customerName)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if len(ids) == 0 {
			return []models.Order{}, nil
		}
		filter.CustomerIDs = ids
	}

	orders, err := s.repo.Orders.FindAll(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

func (s *OrderService) publishEvent(ctx context.Context, order *models.Order, kind string) {
	if s.events == nil {
		return
	}
	evt := OrderEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		StoreID:     order.StoreID,
		Status:      string(order.Status),
		TotalPrice:  order.TotalPrice,
		TotalProfit: order.TotalProfit,
		Quantity:    order.Quantity,
		OccurredAt:  s.now(),
	}

	var err error
	switch kind {
	case "order.settled":
		err = s.events.PublishOrderSettled(ctx, evt)
	default:
		err = s.events.PublishOrderCreated(ctx, evt)
	}
	if err != nil {
		logger.Warn(ctx, "Order event publish failed",
			zap.String("event", kind), zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}
