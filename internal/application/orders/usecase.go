package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/order"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// OrderUseCase alta y lectura de pedidos. Un pedido nace en Placed, sin
// efectos de inventario: el consumo ocurre recién al comprometerlo, vía el
// aplicador de consumo.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	log       *logger.Logger
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(orderRepo repository.OrderRepository, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, log: log}
}

// Place registra un pedido nuevo. Los precios vienen como snapshot ya
// verificado por el colaborador de menú; el monto se recalcula aquí para no
// confiar en totales del cliente.
func (uc *OrderUseCase) Place(ctx context.Context, in dto.PlaceOrderRequest) (*entity.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	amount := decimal.Zero
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ItemID == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		amount = amount.Add(it.Price.Mul(it.Quantity))
		items = append(items, entity.OrderItem{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	var branchID *string
	if in.BranchID != "" {
		branchID = &in.BranchID
	}

	ord := &entity.Order{
		ID:       uuid.New().String(),
		BranchID: branchID,
		Items:    items,
		Amount:   amount,
		Status:   order.StatusPlaced,
		Date:     time.Now(),
	}
	if err := uc.orderRepo.Create(ctx, ord); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", ord.ID).
		Str("amount", ord.Amount.String()).
		Int("items", len(ord.Items)).
		Msg("pedido registrado")
	return ord, nil
}

// Get devuelve un pedido por ID.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*entity.Order, error) {
	ord, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	return ord, nil
}

// List devuelve pedidos paginados, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Order, error) {
	page.DefaultPage()
	return uc.orderRepo.List(ctx, page.Limit, page.Offset)
}
