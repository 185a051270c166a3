package consumption_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/consumption"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/order"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria: implementa los puertos con semántica transaccional
// (snapshot antes de fn, restore si fn falla), suficiente para verificar los
// efectos de inventario del aplicador sin una base real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu      sync.Mutex
	orders  map[string]*entity.Order
	stock   map[string]decimal.Decimal
	movs    []*entity.StockMovement
	recipes map[string]*entity.Recipe
}

func newMemStore() *memStore {
	return &memStore{
		orders:  make(map[string]*entity.Order),
		stock:   make(map[string]decimal.Decimal),
		recipes: make(map[string]*entity.Recipe),
	}
}

func stockKey(ingredientID string, branchID *string) string {
	if branchID == nil {
		return ingredientID
	}
	return ingredientID + "|" + *branchID
}

// Run ejecuta fn con semántica todo-o-nada sobre el estado en memoria.
func (s *memStore) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ordersBackup := make(map[string]*entity.Order, len(s.orders))
	for id, ord := range s.orders {
		cp := *ord
		ordersBackup[id] = &cp
	}
	stockBackup := make(map[string]decimal.Decimal, len(s.stock))
	for k, v := range s.stock {
		stockBackup[k] = v
	}
	movsBackup := len(s.movs)

	if err := fn(&memOrderRepo{s: s}, &memStockRepo{s: s}, &memMovRepo{s: s}); err != nil {
		s.orders = ordersBackup
		s.stock = stockBackup
		s.movs = s.movs[:movsBackup]
		return err
	}
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(_ context.Context, ord *entity.Order) error {
	r.s.orders[ord.ID] = ord
	return nil
}
func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return r.s.orders[id], nil
}
func (r *memOrderRepo) GetForUpdate(_ context.Context, id string) (*entity.Order, error) {
	return r.s.orders[id], nil
}
func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, status order.Status, reason string, applied bool) error {
	ord, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	ord.Status = status
	ord.CancellationReason = reason
	ord.ConsumptionApplied = applied
	return nil
}
func (r *memOrderRepo) List(context.Context, int, int) ([]*entity.Order, error) { return nil, nil }
func (r *memOrderRepo) FulfilledSales(context.Context, time.Time, time.Time) ([]repository.ItemSales, int, error) {
	return nil, 0, nil
}
func (r *memOrderRepo) ListFulfilledByDay(context.Context, string, *string) ([]*entity.Order, error) {
	return nil, nil
}

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(_ context.Context, ingredientID string, branchID *string) (*entity.Stock, error) {
	return &entity.Stock{IngredientID: ingredientID, BranchID: branchID, Quantity: r.s.stock[stockKey(ingredientID, branchID)]}, nil
}
func (r *memStockRepo) AdjustQuantity(_ context.Context, ingredientID string, branchID *string, delta decimal.Decimal) (decimal.Decimal, error) {
	key := stockKey(ingredientID, branchID)
	r.s.stock[key] = r.s.stock[key].Add(delta)
	return r.s.stock[key], nil
}
func (r *memStockRepo) GetForUpdate(ctx context.Context, ingredientID string, branchID *string) (*entity.Stock, error) {
	return r.Get(ctx, ingredientID, branchID)
}
func (r *memStockRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	r.s.stock[stockKey(stock.IngredientID, stock.BranchID)] = stock.Quantity
	return nil
}
func (r *memStockRepo) ListByBranch(context.Context, *string) ([]*entity.Stock, error) {
	return nil, nil
}

type memMovRepo struct{ s *memStore }

func (r *memMovRepo) Create(_ context.Context, mov *entity.StockMovement) error {
	cp := *mov
	r.s.movs = append(r.s.movs, &cp)
	return nil
}
func (r *memMovRepo) ListByOrder(_ context.Context, orderID string, movType string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movs {
		if m.OrderID != nil && *m.OrderID == orderID && (movType == "" || m.Type == movType) {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *memMovRepo) ListByIngredient(context.Context, string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type memRecipeRepo struct{ s *memStore }

func (r *memRecipeRepo) Upsert(_ context.Context, rec *entity.Recipe) error {
	r.s.recipes[rec.ItemID] = rec
	return nil
}
func (r *memRecipeRepo) GetByItemID(_ context.Context, itemID string) (*entity.Recipe, error) {
	return r.s.recipes[itemID], nil
}
func (r *memRecipeRepo) GetByItemIDs(_ context.Context, itemIDs []string) (map[string]*entity.Recipe, error) {
	out := make(map[string]*entity.Recipe)
	for _, id := range itemIDs {
		if rec, ok := r.s.recipes[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}
func (r *memRecipeRepo) List(context.Context, int, int) ([]*entity.Recipe, error) { return nil, nil }
func (r *memRecipeRepo) Delete(context.Context, string) error                     { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// seedBurgerOrder prepara el escenario base: hamburguesa que consume 0.5 kg
// de carne por unidad, pedido de 2 unidades, stock central de 10 kg.
func seedBurgerOrder(store *memStore) *entity.Order {
	store.recipes["burger"] = &entity.Recipe{
		ItemID: "burger",
		Ingredients: []entity.RecipeIngredient{
			{IngredientID: "beef", QuantityNeeded: dec("0.5"), Unit: "kg"},
		},
	}
	store.stock[stockKey("beef", nil)] = dec("10")
	ord := &entity.Order{
		ID:     "order-1",
		Status: order.StatusPlaced,
		Items: []entity.OrderItem{
			{ItemID: "burger", Name: "Hamburguesa", Price: dec("12.50"), Quantity: dec("2")},
		},
		Amount: dec("25.00"),
		Date:   time.Now(),
	}
	store.orders[ord.ID] = ord
	return ord
}

func newApplier(store *memStore, gating string) *consumption.Applier {
	return consumption.NewApplier(store, &memRecipeRepo{s: store}, gating, logger.Nop())
}

func transition(t *testing.T, a *consumption.Applier, orderID string, to order.Status, reason string) error {
	t.Helper()
	return a.ApplyTransition(context.Background(), consumption.TransitionInput{
		OrderID:   orderID,
		NewStatus: to,
		Reason:    reason,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit: descuento según receta
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyTransition_CommitDescuentaSegunReceta(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	a := newApplier(store, config.GatingSoft)

	require.NoError(t, transition(t, a, ord.ID, order.StatusCommitted, ""))

	// 2 hamburguesas × 0.5 kg = 1 kg descontado
	assert.True(t, store.stock[stockKey("beef", nil)].Equal(dec("9")), "stock esperado 9, quedó %s", store.stock[stockKey("beef", nil)])
	assert.Equal(t, order.StatusCommitted, ord.Status)
	assert.True(t, ord.ConsumptionApplied)

	require.Len(t, store.movs, 1)
	mov := store.movs[0]
	assert.Equal(t, entity.MovementTypeCONSUMPTION, mov.Type)
	assert.True(t, mov.Quantity.Equal(dec("-1")))
	require.NotNil(t, mov.OrderID)
	assert.Equal(t, ord.ID, *mov.OrderID)
}

func TestApplyTransition_CommitPermiteStockNegativo(t *testing.T) {
	// Política soft: la venta nunca se bloquea; el faltante queda como saldo
	// negativo y aflora después en el pronóstico.
	store := newMemStore()
	ord := seedBurgerOrder(store)
	store.stock[stockKey("beef", nil)] = dec("0.3")
	a := newApplier(store, config.GatingSoft)

	require.NoError(t, transition(t, a, ord.ID, order.StatusCommitted, ""))

	assert.True(t, store.stock[stockKey("beef", nil)].Equal(dec("-0.7")),
		"el descuento soft debe dejar el saldo en -0.7, quedó %s", store.stock[stockKey("beef", nil)])
	assert.Equal(t, order.StatusCommitted, ord.Status)
}

func TestApplyTransition_GatingHardRechazaYNoDejaRastro(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	store.stock[stockKey("beef", nil)] = dec("0.3")
	a := newApplier(store, config.GatingHard)

	err := transition(t, a, ord.ID, order.StatusCommitted, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: ni stock, ni diario, ni estado del pedido.
	assert.True(t, store.stock[stockKey("beef", nil)].Equal(dec("0.3")))
	assert.Empty(t, store.movs)
	assert.Equal(t, order.StatusPlaced, ord.Status)
	assert.False(t, ord.ConsumptionApplied)
}

func TestApplyTransition_PlatoSinRecetaConsumeCero(t *testing.T) {
	store := newMemStore()
	ord := &entity.Order{
		ID:     "order-2",
		Status: order.StatusPlaced,
		Items: []entity.OrderItem{
			{ItemID: "gaseosa", Name: "Gaseosa", Price: dec("3"), Quantity: dec("4")},
		},
		Date: time.Now(),
	}
	store.orders[ord.ID] = ord
	a := newApplier(store, config.GatingSoft)

	require.NoError(t, transition(t, a, ord.ID, order.StatusCommitted, ""))

	assert.Empty(t, store.movs, "un plato sin receta no genera asientos")
	assert.Equal(t, order.StatusCommitted, ord.Status)
	assert.True(t, ord.ConsumptionApplied, "el commit marca el consumo aunque sea vacío")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación: reversión por negación exacta del diario
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyTransition_CancelacionReponeExacto(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	a := newApplier(store, config.GatingSoft)

	require.NoError(t, transition(t, a, ord.ID, order.StatusCommitted, ""))
	require.True(t, store.stock[stockKey("beef", nil)].Equal(dec("9")))

	// La receta cambia después del commit: la reversión debe salir del
	// diario, no de la receta vigente.
	store.recipes["burger"].Ingredients[0].QuantityNeeded = dec("0.8")

	require.NoError(t, transition(t, a, ord.ID, order.StatusCancelled, "cliente se retractó"))

	assert.True(t, store.stock[stockKey("beef", nil)].Equal(dec("10")),
		"la reversión debe devolver el ledger exactamente a 10, quedó %s", store.stock[stockKey("beef", nil)])
	assert.Equal(t, order.StatusCancelled, ord.Status)
	assert.Equal(t, "cliente se retractó", ord.CancellationReason)
	assert.False(t, ord.ConsumptionApplied)

	require.Len(t, store.movs, 2)
	rev := store.movs[1]
	assert.Equal(t, entity.MovementTypeREVERSAL, rev.Type)
	assert.True(t, rev.Quantity.Equal(dec("1")))
	assert.Equal(t, "cliente se retractó", rev.Reason)
}

func TestApplyTransition_CancelarSinCommitNoRevierte(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	a := newApplier(store, config.GatingSoft)

	require.NoError(t, transition(t, a, ord.ID, order.StatusCancelled, "sin stock de mesas"))

	assert.True(t, store.stock[stockKey("beef", nil)].Equal(dec("10")), "cancelar un Placed no toca el ledger")
	assert.Empty(t, store.movs)
	assert.Equal(t, order.StatusCancelled, ord.Status)
}

func TestApplyTransition_ReembolsoPostEntregaRevierte(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	a := newApplier(store, config.GatingSoft)

	require.NoError(t, transition(t, a, ord.ID, order.StatusCommitted, ""))
	require.NoError(t, transition(t, a, ord.ID, order.StatusServed, ""))
	require.NoError(t, transition(t, a, ord.ID, order.StatusCancelled, "reembolso"))

	assert.True(t, store.stock[stockKey("beef", nil)].Equal(dec("10")))
	assert.Equal(t, order.StatusCancelled, ord.Status)
}

func TestApplyTransition_ReintentoMismoEstadoEsNoOp(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	a := newApplier(store, config.GatingSoft)

	require.NoError(t, transition(t, a, ord.ID, order.StatusCommitted, ""))
	movsAfterCommit := len(store.movs)
	stockAfterCommit := store.stock[stockKey("beef", nil)]

	// El colaborador reintenta la misma transición: aceptada, sin efectos.
	require.NoError(t, transition(t, a, ord.ID, order.StatusCommitted, ""))

	assert.Equal(t, movsAfterCommit, len(store.movs), "el reintento no debe duplicar el descuento")
	assert.True(t, store.stock[stockKey("beef", nil)].Equal(stockAfterCommit))
}

func TestApplyTransition_DobleCancelacionNoDuplicaReversion(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	a := newApplier(store, config.GatingSoft)

	require.NoError(t, transition(t, a, ord.ID, order.StatusCommitted, ""))
	require.NoError(t, transition(t, a, ord.ID, order.StatusCancelled, "motivo"))
	require.NoError(t, transition(t, a, ord.ID, order.StatusCancelled, "motivo"))

	assert.True(t, store.stock[stockKey("beef", nil)].Equal(dec("10")),
		"la segunda cancelación no debe volver a reponer")
	assert.Len(t, store.movs, 2, "un CONSUMPTION y un REVERSAL, nada más")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyTransition_TransicionProhibida(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	a := newApplier(store, config.GatingSoft)

	err := transition(t, a, ord.ID, order.StatusServed, "")
	require.ErrorIs(t, err, domain.ErrInvalidStatus, "Placed → Served salta el commit")
	assert.Equal(t, order.StatusPlaced, ord.Status)
}

func TestApplyTransition_PedidoInexistente(t *testing.T) {
	store := newMemStore()
	a := newApplier(store, config.GatingSoft)

	err := transition(t, a, "no-existe", order.StatusCommitted, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyTransition_EstadoDesconocido(t *testing.T) {
	store := newMemStore()
	ord := seedBurgerOrder(store)
	a := newApplier(store, config.GatingSoft)

	err := transition(t, a, ord.ID, order.Status("Delivered"), "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
