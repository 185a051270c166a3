package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/order"
)

// ItemSales resultado crudo de la agregación de ventas: unidades vendidas de
// un plato dentro de la ventana, sumadas sobre todas las sucursales.
type ItemSales struct {
	ItemID string
	Units  decimal.Decimal
}

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(ctx context.Context, ord *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)

	// GetForUpdate bloquea el pedido (SELECT FOR UPDATE) dentro de una
	// transacción. Serializa transiciones de estado concurrentes del mismo
	// pedido; pedidos distintos no se bloquean entre sí.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)

	// UpdateStatus persiste el estado y la marca de consumo en un solo write.
	UpdateStatus(ctx context.Context, id string, status order.Status, reason string, consumptionApplied bool) error

	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)

	// FulfilledSales agrega las ventas de pedidos cumplidos (Served) con
	// fecha en [from, to): unidades por plato y total de pedidos en la
	// ventana. Lectura sin bloqueos; una ligera obsolescencia es aceptable.
	FulfilledSales(ctx context.Context, from, to time.Time) ([]ItemSales, int, error)

	// ListFulfilledByDay devuelve los pedidos cumplidos de un día (YYYY-MM-DD)
	// y sucursal, para reconstruir el rollup diario.
	ListFulfilledByDay(ctx context.Context, date string, branchID *string) ([]*entity.Order, error)
}
