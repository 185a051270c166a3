package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock existencia actual de un ingrediente en una sucursal.
// BranchID nil denota la bodega central compartida. Hay exactamente una fila
// por par (ingrediente, sucursal); se upserta, nunca se duplica.
//
// Quantity es un valor con signo: el negativo es válido y significa que la
// bodega está sobrecomprometida (descuento "soft"). No se impone cota
// inferior ni superior.
type Stock struct {
	IngredientID string
	BranchID     *string
	Quantity     decimal.Decimal
	UpdatedAt    time.Time
}
