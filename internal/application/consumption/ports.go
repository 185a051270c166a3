package consumption

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El conjunto de ajustes de un mismo pedido
// (todas sus líneas, todos sus ingredientes, el diario y la marca de estado)
// se persiste todo-o-nada: nunca queda un consumo a medio aplicar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
