package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/order"
)

// OrderItem línea de pedido con snapshot de nombre y precio al momento de la compra.
type OrderItem struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"` // precio unitario congelado
	Quantity decimal.Decimal `json:"quantity"`
}

// Order pedido con su ciclo de vida. ConsumptionApplied indica si el pedido
// ya descontó ingredientes del ledger; es la marca de idempotencia que hace
// seguras las reversiones repetidas.
type Order struct {
	ID                 string
	BranchID           *string // nil = bodega central
	Items              []OrderItem
	Amount             decimal.Decimal
	Status             order.Status
	Payment            bool
	ConsumptionApplied bool
	CancellationReason string
	Date               time.Time
}
