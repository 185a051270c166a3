package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRowDTO fila del ledger para lecturas.
type StockRowDTO struct {
	IngredientID string          `json:"ingredient_id"`
	BranchID     *string         `json:"branch_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AdjustStockRequest body para POST /api/stock/adjust (delta manual: recepción, merma).
type AdjustStockRequest struct {
	IngredientID string          `json:"ingredient_id"`
	BranchID     string          `json:"branch_id,omitempty"` // vacío = bodega central
	Delta        decimal.Decimal `json:"delta"`
	Reason       string          `json:"reason,omitempty"`
}

// AuditAdjustment una línea del conteo físico: la cantidad real encontrada.
type AuditAdjustment struct {
	IngredientID string          `json:"ingredient_id"`
	ActualStock  decimal.Decimal `json:"actual_stock"`
}

// AuditStockRequest body para POST /api/stock/audit.
type AuditStockRequest struct {
	BranchID    string            `json:"branch_id,omitempty"`
	Adjustments []AuditAdjustment `json:"adjustments"`
	Reason      string            `json:"reason,omitempty"`
}

// AuditResultDTO resultado de una línea de auditoría.
type AuditResultDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Previous     decimal.Decimal `json:"previous"`
	Actual       decimal.Decimal `json:"actual"`
	Variance     decimal.Decimal `json:"variance"`
	Status       string          `json:"status"` // Updated | No Change | Not Found
}

// MovementDTO asiento del diario de stock para lecturas.
type MovementDTO struct {
	ID           string          `json:"id"`
	OrderID      *string         `json:"order_id"`
	IngredientID string          `json:"ingredient_id"`
	BranchID     *string         `json:"branch_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
