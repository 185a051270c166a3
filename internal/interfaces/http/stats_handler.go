package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/stats"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// StatsHandler maneja las peticiones HTTP del rollup diario.
type StatsHandler struct {
	uc *stats.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *stats.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// GetDaily godoc
// @Summary      Rollup diario de ventas
// @Description  Revenue total, pedidos por hora y top de platos del día. Si el
//
//	rollup aún no existe se reconstruye al vuelo desde los pedidos.
//
// @Tags         analytics
// @Produce      json
// @Param        date       path   string  true   "Fecha (YYYY-MM-DD)"
// @Param        branch_id  query  string  false  "Sucursal. Vacío = bodega central."
// @Success      200  {object}  dto.DailyStatDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/daily/{date} [get]
func (h *StatsHandler) GetDaily(c *fiber.Ctx) error {
	date := c.Params("date")
	var branchID *string
	if b := c.Query("branch_id"); b != "" {
		branchID = &b
	}
	stat, err := h.uc.GetDay(c.Context(), date, branchID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toDailyStatDTO(stat))
}

// RebuildDaily godoc
// @Summary      Reconstruir rollup diario
// @Description  Fuerza el recálculo del rollup desde los pedidos cumplidos del día.
// @Tags         analytics
// @Produce      json
// @Param        date       path   string  true   "Fecha (YYYY-MM-DD)"
// @Param        branch_id  query  string  false  "Sucursal. Vacío = bodega central."
// @Success      200  {object}  dto.DailyStatDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/daily/{date}/rebuild [post]
func (h *StatsHandler) RebuildDaily(c *fiber.Ctx) error {
	date := c.Params("date")
	var branchID *string
	if b := c.Query("branch_id"); b != "" {
		branchID = &b
	}
	stat, err := h.uc.RebuildDay(c.Context(), date, branchID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toDailyStatDTO(stat))
}

func toDailyStatDTO(stat *entity.DailyStat) dto.DailyStatDTO {
	return dto.DailyStatDTO{
		Date:         stat.Date,
		BranchID:     stat.BranchID,
		TotalRevenue: stat.TotalRevenue,
		TotalOrders:  stat.TotalOrders,
		TopItems:     stat.TopItems,
		Hourly:       stat.Hourly,
	}
}
