package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/forecast"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// ForecastHandler maneja las peticiones HTTP del pronóstico de demanda.
type ForecastHandler struct {
	uc *forecast.ForecastUseCase
}

// NewForecastHandler construye el handler.
func NewForecastHandler(uc *forecast.ForecastUseCase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// Advise godoc
// @Summary      Pronóstico de necesidades de ingredientes
// @Description  Proyecta la necesidad de cada ingrediente para el horizonte dado,
//
//	a partir de las ventas cumplidas de la ventana histórica, y clasifica
//	cada uno como CRITICAL, WARNING o SAFE según su stock actual.
//
// @Tags         forecast
// @Produce      json
// @Param        window   query  int  false  "Días de ventana histórica"      default(30)
// @Param        horizon  query  int  false  "Días del horizonte proyectado"  default(7)
// @Success      200  {object}  dto.ForecastResponse
// @Failure      503  {object}  dto.ForecastResponse
// @Router       /api/forecast [get]
func (h *ForecastHandler) Advise(c *fiber.Ctx) error {
	window := c.QueryInt("window", 0)
	horizon := c.QueryInt("horizon", 0)
	if window < 0 || horizon < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "window y horizon deben ser positivos"})
	}

	resp, err := h.uc.Advise(c.Context(), window, horizon)
	if err != nil {
		if errors.Is(err, domain.ErrForecastUnavailable) {
			// El contrato del dashboard distingue "no disponible" de "sin datos":
			// aquí success=false; un resultado vacío por pocas ventas es 200.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ForecastResponse{
				Success: false,
				Message: "pronóstico no disponible, intente más tarde",
				Data:    []dto.ForecastItemDTO{},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
