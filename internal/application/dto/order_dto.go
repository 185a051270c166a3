package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido entrante. El precio es el snapshot al
// momento de la compra, ya verificado por el colaborador de menú/carrito.
type OrderItemRequest struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PlaceOrderRequest body para POST /api/orders.
type PlaceOrderRequest struct {
	BranchID string             `json:"branch_id,omitempty"` // vacío = bodega central
	Items    []OrderItemRequest `json:"items"`
}

// TransitionRequest body para POST /api/orders/:id/status.
// Lo invoca el colaborador de ciclo de vida en cada cambio de estado.
type TransitionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"` // motivo de cancelación
}

// OrderResponse representación HTTP de un pedido.
type OrderResponse struct {
	ID                 string             `json:"id"`
	BranchID           *string            `json:"branch_id"`
	Items              []OrderItemRequest `json:"items"`
	Amount             decimal.Decimal    `json:"amount"`
	Status             string             `json:"status"`
	Payment            bool               `json:"payment"`
	ConsumptionApplied bool               `json:"consumption_applied"`
	CancellationReason string             `json:"cancellation_reason,omitempty"`
	Date               time.Time          `json:"date"`
}
