package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// StockRepository define el puerto para el ledger de existencias por
// (ingrediente, sucursal). branchID nil = bodega central.
//
// Solo el caso de uso de ledger escribe a través de este puerto; ningún otro
// componente toca las cantidades directamente.
type StockRepository interface {
	// Get devuelve la fila de stock; si no existe, una fila en cero (no nil).
	Get(ctx context.Context, ingredientID string, branchID *string) (*entity.Stock, error)

	// AdjustQuantity suma delta a la cantidad de forma atómica respecto a
	// ajustes concurrentes sobre la misma clave y devuelve la cantidad
	// resultante. Crea la fila en cero si no existe. No impone cotas: el
	// resultado negativo es válido (descuento "soft"). El caller debe evitar
	// llamar con delta cero (crearía la fila sin necesidad).
	AdjustQuantity(ctx context.Context, ingredientID string, branchID *string, delta decimal.Decimal) (decimal.Decimal, error)

	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una
	// transacción. Usado por el ajuste de auditoría, que fija cantidades
	// absolutas y necesita leer la cantidad previa sin carreras.
	GetForUpdate(ctx context.Context, ingredientID string, branchID *string) (*entity.Stock, error)

	// Upsert fija la cantidad absoluta de la fila (auditoría de conteo físico).
	Upsert(ctx context.Context, stock *entity.Stock) error

	// ListByBranch devuelve todas las filas de stock de la sucursal
	// (nil = bodega central). Lectura sin bloqueos: snapshot para el pronóstico.
	ListByBranch(ctx context.Context, branchID *string) ([]*entity.Stock, error)
}
