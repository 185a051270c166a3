package ledger

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que un ajuste y su asiento en el
// diario se persistan como unidad atómica.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
