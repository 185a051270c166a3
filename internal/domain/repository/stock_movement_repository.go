package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el diario de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByOrder devuelve los movimientos de un pedido, filtrados por tipo
	// si movType no es vacío. Es la fuente de la reversión exacta.
	ListByOrder(ctx context.Context, orderID string, movType string) ([]*entity.StockMovement, error)
	ListByIngredient(ctx context.Context, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
