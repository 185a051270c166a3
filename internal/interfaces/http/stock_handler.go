package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/ledger"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del ledger de stock.
type StockHandler struct {
	uc *ledger.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Snapshot del stock de una sucursal
// @Tags         stock
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal. Vacío = bodega central."
// @Success      200  {array}  dto.StockRowDTO
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var branchID *string
	if b := c.Query("branch_id"); b != "" {
		branchID = &b
	}
	rows, err := h.uc.Snapshot(c.Context(), branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockRowDTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.StockRowDTO{
			IngredientID: s.IngredientID,
			BranchID:     s.BranchID,
			Quantity:     s.Quantity,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Stock actual de un ingrediente
// @Description  Responde siempre, incluso sin fila persistida: la cantidad de un
//
//	ingrediente nunca movido es cero. El valor puede ser negativo
//	(bodega sobrecomprometida).
//
// @Tags         stock
// @Produce      json
// @Param        ingredient_id  path   string  true   "ID del ingrediente"
// @Param        branch_id      query  string  false  "Sucursal. Vacío = bodega central."
// @Success      200  {object}  dto.StockRowDTO
// @Router       /api/stock/{ingredient_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	ingredientID := c.Params("ingredient_id")
	if ingredientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "ingredient_id es requerido"})
	}
	var branchID *string
	if b := c.Query("branch_id"); b != "" {
		branchID = &b
	}
	qty, err := h.uc.Get(c.Context(), ingredientID, branchID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockRowDTO{IngredientID: ingredientID, BranchID: branchID, Quantity: qty})
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica un delta con signo (recepción positiva, merma negativa) y
//
//	journaliza el movimiento. Devuelve la cantidad resultante.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "ingredient_id, delta con signo, reason opcional"
// @Success      200   {object}  dto.StockRowDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	qty, err := h.uc.ManualAdjust(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ingredient_id es requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ingrediente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	var branchID *string
	if in.BranchID != "" {
		branchID = &in.BranchID
	}
	return c.JSON(dto.StockRowDTO{IngredientID: in.IngredientID, BranchID: branchID, Quantity: qty})
}

// Audit godoc
// @Summary      Auditoría de conteo físico
// @Description  Fija cantidades absolutas por ingrediente según el conteo real y
//
//	journaliza la varianza de cada línea. Las líneas con ingrediente
//	inexistente se reportan como "Not Found" sin abortar el lote.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuditStockRequest  true  "Líneas del conteo físico"
// @Success      200   {array}   dto.AuditResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/audit [post]
func (h *StockHandler) Audit(c *fiber.Ctx) error {
	var in dto.AuditStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	results, err := h.uc.Audit(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere al menos una línea de ajuste"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(results)
}

// Movements godoc
// @Summary      Consultar el diario de stock
// @Tags         stock
// @Produce      json
// @Param        order_id       query  string  false  "Movimientos de un pedido"
// @Param        ingredient_id  query  string  false  "Movimientos de un ingrediente"
// @Param        limit          query  int     false  "Límite"   default(20)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	ingredientID := c.Query("ingredient_id")
	if orderID == "" && ingredientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_id o ingredient_id es requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	list, err := h.uc.Movements(c.Context(), orderID, ingredientID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
