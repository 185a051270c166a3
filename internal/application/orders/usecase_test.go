package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/orders"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/order"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

type memOrderRepo struct {
	byID    map[string]*entity.Order
	created []*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{byID: make(map[string]*entity.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.byID[o.ID] = o
	r.created = append(r.created, o)
	return nil
}
func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return r.byID[id], nil
}
func (r *memOrderRepo) GetForUpdate(_ context.Context, id string) (*entity.Order, error) {
	return r.byID[id], nil
}
func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, st order.Status, reason string, applied bool) error {
	if o, ok := r.byID[id]; ok {
		o.Status = st
		o.CancellationReason = reason
		o.ConsumptionApplied = applied
	}
	return nil
}
func (r *memOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for _, o := range r.created {
		out = append(out, o)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
func (r *memOrderRepo) FulfilledSales(context.Context, time.Time, time.Time) ([]repository.ItemSales, int, error) {
	return nil, 0, nil
}
func (r *memOrderRepo) ListFulfilledByDay(context.Context, string, *string) ([]*entity.Order, error) {
	return nil, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Place
// ──────────────────────────────────────────────────────────────────────────────

func TestPlace_RecalculaElMontoDelServidor(t *testing.T) {
	repo := newMemOrderRepo()
	uc := orders.NewOrderUseCase(repo, logger.Nop())

	ord, err := uc.Place(context.Background(), dto.PlaceOrderRequest{
		Items: []dto.OrderItemRequest{
			{ItemID: "burger", Name: "Hamburguesa", Price: dec("12.50"), Quantity: dec("2")},
			{ItemID: "soda", Name: "Gaseosa", Price: dec("3"), Quantity: dec("1")},
		},
	})
	require.NoError(t, err)

	// 12.50*2 + 3*1, sin importar lo que diga el cliente.
	assert.True(t, ord.Amount.Equal(dec("28")), "monto: %s", ord.Amount)
	assert.Equal(t, order.StatusPlaced, ord.Status)
	assert.NotEmpty(t, ord.ID)
	assert.Nil(t, ord.BranchID)
	assert.False(t, ord.ConsumptionApplied, "registrar un pedido no toca inventario")
	require.Len(t, repo.created, 1)
}

func TestPlace_SucursalOpcional(t *testing.T) {
	uc := orders.NewOrderUseCase(newMemOrderRepo(), logger.Nop())

	ord, err := uc.Place(context.Background(), dto.PlaceOrderRequest{
		BranchID: "sucursal-norte",
		Items: []dto.OrderItemRequest{
			{ItemID: "soda", Price: dec("3"), Quantity: dec("1")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, ord.BranchID)
	assert.Equal(t, "sucursal-norte", *ord.BranchID)
}

func TestPlace_EntradaInvalida(t *testing.T) {
	uc := orders.NewOrderUseCase(newMemOrderRepo(), logger.Nop())
	ctx := context.Background()

	casos := []dto.PlaceOrderRequest{
		{}, // sin ítems
		{Items: []dto.OrderItemRequest{{ItemID: "", Price: dec("3"), Quantity: dec("1")}}},
		{Items: []dto.OrderItemRequest{{ItemID: "soda", Price: dec("3"), Quantity: dec("0")}}},
		{Items: []dto.OrderItemRequest{{ItemID: "soda", Price: dec("-1"), Quantity: dec("1")}}},
	}
	for _, in := range casos {
		_, err := uc.Place(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / List
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_NoExisteEsErrNotFound(t *testing.T) {
	uc := orders.NewOrderUseCase(newMemOrderRepo(), logger.Nop())

	_, err := uc.Get(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_AplicaPaginadoPorDefecto(t *testing.T) {
	repo := newMemOrderRepo()
	uc := orders.NewOrderUseCase(repo, logger.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Place(ctx, dto.PlaceOrderRequest{
			Items: []dto.OrderItemRequest{{ItemID: "soda", Price: dec("3"), Quantity: dec("1")}},
		})
		require.NoError(t, err)
	}

	got, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
