package services

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderEvent is the payload published to the event bus when an order is
// created or settles.
type OrderEvent struct {
	OrderID     uuid.UUID `json:"orderID"`
	CustomerID  uuid.UUID `json:"customerID"`
	StoreID     uuid.UUID `json:"storeID"`
	Status      string    `json:"status"`
	TotalPrice  int64     `json:"totalPrice"`
	TotalProfit int64     `json:"totalProfit"`
	Quantity    int       `json:"quantity"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// EventPublisher publishes order lifecycle events. Publishing is best-effort:
// the order engine logs failures and never fails the request over them.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderEvent) error
	PublishOrderSettled(ctx context.Context, evt OrderEvent) error
}
