package consumption

import (
	"context"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/order"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// Applier traduce transiciones de estado de un pedido en efectos sobre el
// ledger de stock: al comprometer descuenta ingredientes según recetas, al
// cancelar revierte con la negación exacta de lo journalizado.
//
// Política de negocio deliberada ("descuento soft"): en el modo por defecto
// un pedido jamás se bloquea por stock insuficiente; se compromete igual y el
// déficit aflora después a través del pronóstico, no como venta rechazada.
// Se prioriza el throughput de ventas sobre el control de inventario. El modo
// "hard" (INVENTORY_GATING=hard) invierte la política y rechaza el commit.
type Applier struct {
	txRunner   TxRunner
	recipeRepo repository.RecipeRepository
	gating     string
	log        *logger.Logger
}

// NewApplier construye el aplicador de consumo.
func NewApplier(txRunner TxRunner, recipeRepo repository.RecipeRepository, gating string, log *logger.Logger) *Applier {
	return &Applier{
		txRunner:   txRunner,
		recipeRepo: recipeRepo,
		gating:     gating,
		log:        log,
	}
}

// TransitionInput entrada del hook de transición: lo envía el colaborador de
// ciclo de vida en cada cambio de estado.
type TransitionInput struct {
	OrderID   string
	NewStatus order.Status
	Reason    string // motivo de cancelación, si aplica
}

// ApplyTransition aplica una transición con sus efectos de inventario en una
// sola transacción. El pedido se bloquea (SELECT FOR UPDATE) para serializar
// transiciones concurrentes del mismo pedido; la contención entre pedidos
// distintos solo ocurre por (ingrediente, sucursal) dentro del ledger.
//
// Idempotencia: repetir la misma transición es no-op; revertir un pedido que
// nunca comprometió consumo es no-op; la doble reversión la impide la marca
// ConsumptionApplied. Un error hace rollback completo y es reintentable.
func (a *Applier) ApplyTransition(ctx context.Context, in TransitionInput) error {
	if in.OrderID == "" || !in.NewStatus.Valid() {
		return domain.ErrInvalidInput
	}

	return a.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		ord, err := orderRepo.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}

		prev := ord.Status
		if !order.CanTransition(prev, in.NewStatus) {
			return domain.ErrInvalidStatus
		}
		if prev == in.NewStatus {
			// Reintento del colaborador: aceptar sin efectos.
			return nil
		}

		reason := ord.CancellationReason
		if in.NewStatus == order.StatusCancelled && in.Reason != "" {
			reason = in.Reason
		}

		applied := ord.ConsumptionApplied
		switch order.TransitionEffect(prev, in.NewStatus) {
		case order.EffectCommit:
			if !applied {
				if err := a.applyConsumption(ctx, stockRepo, movRepo, ord); err != nil {
					return err
				}
				applied = true
			}
		case order.EffectReverse:
			if applied {
				if err := a.applyReversal(ctx, stockRepo, movRepo, ord, reason); err != nil {
					return err
				}
				applied = false
			}
		}

		return orderRepo.UpdateStatus(ctx, ord.ID, in.NewStatus, reason, applied)
	})
}

// applyConsumption descuenta del ledger los ingredientes de cada línea según
// su receta. Las líneas sin receta consumen cero: se saltan con log
// informativo, no son un error.
func (a *Applier) applyConsumption(
	ctx context.Context,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	ord *entity.Order,
) error {
	itemIDs := make([]string, 0, len(ord.Items))
	for _, item := range ord.Items {
		itemIDs = append(itemIDs, item.ItemID)
	}
	recipes, err := a.recipeRepo.GetByItemIDs(ctx, itemIDs)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, item := range ord.Items {
		rec, ok := recipes[item.ItemID]
		if !ok {
			a.log.Info().
				Str("order_id", ord.ID).
				Str("item_id", item.ItemID).
				Msg("plato sin receta: consumo cero")
			continue
		}

		for _, ing := range rec.Ingredients {
			delta := ing.QuantityNeeded.Mul(item.Quantity).Neg()
			if delta.IsZero() {
				continue
			}

			newQty, err := stockRepo.AdjustQuantity(ctx, ing.IngredientID, ord.BranchID, delta)
			if err != nil {
				return err
			}
			if a.gating == config.GatingHard && newQty.IsNegative() {
				// Modo hard: el rollback de la transacción deshace los
				// descuentos ya aplicados de este mismo pedido.
				return domain.ErrInsufficientStock
			}
			if newQty.IsNegative() {
				a.log.Warn().
					Str("order_id", ord.ID).
					Str("ingredient_id", ing.IngredientID).
					Str("quantity", newQty.String()).
					Msg("stock negativo: bodega sobrecomprometida")
			}

			if err := movRepo.Create(ctx, &entity.StockMovement{
				OrderID:      &ord.ID,
				IngredientID: ing.IngredientID,
				BranchID:     ord.BranchID,
				Type:         entity.MovementTypeCONSUMPTION,
				Quantity:     delta,
				CreatedAt:    now,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyReversal repone exactamente lo que el commit descontó, leyendo el
// diario en vez de recalcular desde las recetas: si una receta cambió después
// del commit, la reversión sigue devolviendo el ledger a su trayectoria
// previa al compromiso.
func (a *Applier) applyReversal(
	ctx context.Context,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	ord *entity.Order,
	reason string,
) error {
	movs, err := movRepo.ListByOrder(ctx, ord.ID, entity.MovementTypeCONSUMPTION)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, mov := range movs {
		restore := mov.Quantity.Neg()
		if restore.IsZero() {
			continue
		}
		if _, err := stockRepo.AdjustQuantity(ctx, mov.IngredientID, mov.BranchID, restore); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, &entity.StockMovement{
			OrderID:      &ord.ID,
			IngredientID: mov.IngredientID,
			BranchID:     mov.BranchID,
			Type:         entity.MovementTypeREVERSAL,
			Quantity:     restore,
			Reason:       reason,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
	}

	a.log.Info().
		Str("order_id", ord.ID).
		Int("ingredients", len(movs)).
		Msg("consumo revertido por cancelación")
	return nil
}
