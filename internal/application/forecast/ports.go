package forecast

import (
	"context"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
)

// ResultCache caché opcional del pronóstico calculado. El pronóstico es
// advisory: servir un resultado de hace unos minutos es aceptable y evita
// rescanear pedidos en cada carga del dashboard.
//
// Las implementaciones no deben propagar fallas de la caché como errores del
// pronóstico; un miss (por ausencia o por falla) solo fuerza el recálculo.
type ResultCache interface {
	Get(ctx context.Context, key string) (*dto.ForecastResponse, bool)
	Set(ctx context.Context, key string, resp *dto.ForecastResponse, ttl time.Duration)
}
