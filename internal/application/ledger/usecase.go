package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// LedgerUseCase es el único dueño de escritura de las cantidades de stock.
// Todo ajuste pasa por aquí: el aplicador de consumo, los ajustes manuales y
// la auditoría de conteo físico. Ningún otro componente escribe stock directo.
//
// No impone cota inferior: el saldo negativo es el camino de señal diseñado
// hacia el clasificador de reposición, no un estado de error.
type LedgerUseCase struct {
	stockRepo      repository.StockRepository
	movRepo        repository.StockMovementRepository
	ingredientRepo repository.IngredientRepository
	txRunner       TxRunner
	log            *logger.Logger
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	ingredientRepo repository.IngredientRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		stockRepo:      stockRepo,
		movRepo:        movRepo,
		ingredientRepo: ingredientRepo,
		txRunner:       txRunner,
		log:            log,
	}
}

// Adjust suma delta a la existencia de (ingrediente, sucursal) de forma
// atómica frente a llamadas concurrentes sobre la misma clave, y devuelve la
// cantidad resultante. Delta cero es no-op: no crea fila si no existe.
// Cualquier delta distinto de cero crea la fila en cero antes de aplicar.
func (uc *LedgerUseCase) Adjust(ctx context.Context, ingredientID string, branchID *string, delta decimal.Decimal) (decimal.Decimal, error) {
	if ingredientID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if delta.IsZero() {
		return uc.Get(ctx, ingredientID, branchID)
	}
	return uc.stockRepo.AdjustQuantity(ctx, ingredientID, branchID, delta)
}

// Get devuelve la existencia actual; 0 si la fila no existe.
func (uc *LedgerUseCase) Get(ctx context.Context, ingredientID string, branchID *string) (decimal.Decimal, error) {
	stock, err := uc.stockRepo.Get(ctx, ingredientID, branchID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}

// Snapshot devuelve todas las filas de stock de la sucursal (nil = central).
// Lectura sin bloqueos, pensada para el pronóstico y el dashboard.
func (uc *LedgerUseCase) Snapshot(ctx context.Context, branchID *string) ([]*entity.Stock, error) {
	return uc.stockRepo.ListByBranch(ctx, branchID)
}

// ManualAdjust aplica un delta manual (recepción de proveedor, merma) y lo
// journaliza como movimiento MANUAL en la misma transacción.
func (uc *LedgerUseCase) ManualAdjust(ctx context.Context, in dto.AdjustStockRequest) (decimal.Decimal, error) {
	if in.IngredientID == "" || in.Delta.IsZero() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	ing, err := uc.ingredientRepo.GetByID(ctx, in.IngredientID)
	if err != nil {
		return decimal.Zero, err
	}
	if ing == nil {
		return decimal.Zero, domain.ErrNotFound
	}

	branchID := normalizeBranch(in.BranchID)
	var newQty decimal.Decimal
	err = uc.txRunner.RunLedger(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		q, err := stockRepo.AdjustQuantity(ctx, in.IngredientID, branchID, in.Delta)
		if err != nil {
			return err
		}
		newQty = q
		return movRepo.Create(ctx, &entity.StockMovement{
			IngredientID: in.IngredientID,
			BranchID:     branchID,
			Type:         entity.MovementTypeMANUAL,
			Quantity:     in.Delta,
			Reason:       in.Reason,
			CreatedAt:    time.Now(),
		})
	})
	if err != nil {
		return decimal.Zero, err
	}

	uc.log.Info().
		Str("ingredient_id", in.IngredientID).
		Str("delta", in.Delta.String()).
		Str("new_qty", newQty.String()).
		Msg("ajuste manual de stock")
	return newQty, nil
}

// Audit fija cantidades absolutas tras un conteo físico. Cada línea con
// varianza se journaliza como AUDIT; las líneas sin cambio no tocan el ledger.
// Todo el conteo se aplica en una sola transacción.
func (uc *LedgerUseCase) Audit(ctx context.Context, in dto.AuditStockRequest) ([]dto.AuditResultDTO, error) {
	if len(in.Adjustments) == 0 {
		return nil, domain.ErrInvalidInput
	}

	branchID := normalizeBranch(in.BranchID)
	reason := in.Reason
	if reason == "" {
		reason = "Conteo de cierre de día"
	}

	// Validar existencia de ingredientes fuera de la transacción
	ids := make([]string, 0, len(in.Adjustments))
	for _, adj := range in.Adjustments {
		ids = append(ids, adj.IngredientID)
	}
	known, err := uc.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]dto.AuditResultDTO, 0, len(in.Adjustments))
	err = uc.txRunner.RunLedger(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := time.Now()
		for _, adj := range in.Adjustments {
			if _, ok := known[adj.IngredientID]; !ok {
				results = append(results, dto.AuditResultDTO{
					IngredientID: adj.IngredientID,
					Status:       "Not Found",
				})
				continue
			}

			current, err := stockRepo.GetForUpdate(ctx, adj.IngredientID, branchID)
			if err != nil {
				return err
			}
			previous := current.Quantity
			variance := adj.ActualStock.Sub(previous)
			if variance.IsZero() {
				results = append(results, dto.AuditResultDTO{
					IngredientID: adj.IngredientID,
					Previous:     previous,
					Actual:       adj.ActualStock,
					Variance:     decimal.Zero,
					Status:       "No Change",
				})
				continue
			}

			current.Quantity = adj.ActualStock
			current.UpdatedAt = now
			if err := stockRepo.Upsert(ctx, current); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, &entity.StockMovement{
				IngredientID: adj.IngredientID,
				BranchID:     branchID,
				Type:         entity.MovementTypeAUDIT,
				Quantity:     variance,
				Reason:       reason,
				CreatedAt:    now,
			}); err != nil {
				return err
			}
			results = append(results, dto.AuditResultDTO{
				IngredientID: adj.IngredientID,
				Previous:     previous,
				Actual:       adj.ActualStock,
				Variance:     variance,
				Status:       "Updated",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Movements consulta el diario por pedido o por ingrediente.
func (uc *LedgerUseCase) Movements(ctx context.Context, orderID, ingredientID string, page dto.PageRequest) ([]dto.MovementDTO, error) {
	page.DefaultPage()

	var (
		movs []*entity.StockMovement
		err  error
	)
	switch {
	case orderID != "":
		movs, err = uc.movRepo.ListByOrder(ctx, orderID, "")
	case ingredientID != "":
		movs, err = uc.movRepo.ListByIngredient(ctx, ingredientID, nil, nil, page.Limit, page.Offset)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementDTO{
			ID:           m.ID,
			OrderID:      m.OrderID,
			IngredientID: m.IngredientID,
			BranchID:     m.BranchID,
			Type:         m.Type,
			Quantity:     m.Quantity,
			Reason:       m.Reason,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out, nil
}

// normalizeBranch convierte el branch_id del request ("" = central) al puntero
// que usa el ledger (nil = central).
func normalizeBranch(branchID string) *string {
	if branchID == "" {
		return nil
	}
	return &branchID
}
