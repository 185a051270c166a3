package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/consumption"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/orders"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/order"
)

// OrderHandler maneja las peticiones HTTP de pedidos y su ciclo de vida.
type OrderHandler struct {
	uc      *orders.OrderUseCase
	applier *consumption.Applier
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, applier *consumption.Applier) *OrderHandler {
	return &OrderHandler{uc: uc, applier: applier}
}

// Place godoc
// @Summary      Registrar pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "Líneas del pedido con snapshot de precio"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ord, err := h.uc.Place(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pedido inválido: se requieren líneas con cantidad positiva"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(ord))
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	ord, err := h.uc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOrderResponse(ord))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	list, err := h.uc.List(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, ord := range list {
		out = append(out, toOrderResponse(ord))
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Transicionar estado de pedido
// @Description  Hook del ciclo de vida: aplica la transición con sus efectos de
//
//	inventario (consumo al comprometer, reversión al cancelar) en una
//	transacción. Repetir la misma transición es aceptado sin efectos.
//
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.TransitionRequest  true  "Nuevo estado y motivo de cancelación opcional"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [post]
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	err := h.applier.ApplyTransition(c.Context(), consumption.TransitionInput{
		OrderID:   id,
		NewStatus: order.Status(in.Status),
		Reason:    in.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para comprometer el pedido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	ord, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOrderResponse(ord))
}

func toOrderResponse(ord *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemRequest, 0, len(ord.Items))
	for _, it := range ord.Items {
		items = append(items, dto.OrderItemRequest{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return dto.OrderResponse{
		ID:                 ord.ID,
		BranchID:           ord.BranchID,
		Items:              items,
		Amount:             ord.Amount,
		Status:             string(ord.Status),
		Payment:            ord.Payment,
		ConsumptionApplied: ord.ConsumptionApplied,
		CancellationReason: ord.CancellationReason,
		Date:               ord.Date,
	}
}
