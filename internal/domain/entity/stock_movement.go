package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeCONSUMPTION = "CONSUMPTION" // descuento por pedido comprometido
	MovementTypeREVERSAL    = "REVERSAL"    // negación exacta de un consumo (cancelación)
	MovementTypeAUDIT       = "AUDIT"       // ajuste por conteo físico
	MovementTypeMANUAL      = "MANUAL"      // ajuste manual (recepción, merma)
)

// StockMovement asiento del diario de stock. Cada ajuste del ledger queda
// journalizado; los movimientos CONSUMPTION llevan el OrderID que los causó,
// lo que permite revertir un pedido con la negación exacta de lo descontado
// (y detectar si ya fue revertido).
type StockMovement struct {
	ID           string
	OrderID      *string // nil en AUDIT/MANUAL
	IngredientID string
	BranchID     *string
	Type         string
	Quantity     decimal.Decimal // con signo: negativo descuenta, positivo repone
	Reason       string
	CreatedAt    time.Time
}
