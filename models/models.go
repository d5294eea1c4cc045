package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the order lifecycle state. Payment application moves orders
// pending -> notEnough/paid; paid and cancelled are terminal for the guarded
// paths but remain reachable through the admin override.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusNotEnough OrderStatus = "notEnough"
)

// Valid reports whether s is one of the recognized order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled, OrderStatusNotEnough:
		return true
	}
	return false
}

// Order aggregates line items, payment accumulators and derived amounts.
// All money fields are integer minor units. Invariant: at most one of
// RemainingAmount and ExcessAmount is nonzero.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"customerID"`
	StoreID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"storeID"`
	Description     string          `gorm:"type:text" json:"description"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalPrice      int64           `gorm:"not null;default:0" json:"totalPrice"`
	TotalProfit     int64           `gorm:"not null;default:0" json:"totalProfit"`
	Quantity        int             `gorm:"not null;default:0" json:"quantity"`
	CashPaid        int64           `gorm:"not null;default:0" json:"cashPaid"`
	BankPaid        int64           `gorm:"not null;default:0" json:"bankPaid"`
	RemainingAmount int64           `gorm:"not null;default:0" json:"remainingAmount"`
	ExcessAmount    int64           `gorm:"not null;default:0" json:"excessAmount"`
	Payments        []PaymentMethod `gorm:"many2many:order_payments" json:"payments"`
	OrderDetails    []OrderDetail   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderDetails"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index" json:"date"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// OrderDetail is one product line within an order. TotalPrice and TotalProfit
// are snapshots taken when the line is created; later product price changes
// do not touch them.
type OrderDetail struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"orderID"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"productID"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	TotalPrice  int64     `gorm:"not null" json:"totalPrice"`
	TotalProfit int64     `gorm:"not null" json:"totalProfit"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Product is the catalog entry consumed by the order engine. Quantity is the
// on-hand stock, decremented only when an order settles.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Price     int64     `gorm:"not null" json:"price"`
	Profit    int64     `gorm:"not null" json:"profit"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    string    `gorm:"default:'inactive'" json:"status"`
	Orders    []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `json:"address"`
	Orders    []Order   `gorm:"foreignKey:StoreID" json:"orders,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type PaymentMethod struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"not null" json:"name"`
}
