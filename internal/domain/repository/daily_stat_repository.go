package repository

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// DailyStatRepository define el puerto de persistencia para el rollup diario.
// Una fila por (fecha, sucursal); Upsert reemplaza el rollup completo.
type DailyStatRepository interface {
	Upsert(ctx context.Context, stat *entity.DailyStat) error
	// Get devuelve nil si el día aún no tiene rollup; no es un error.
	Get(ctx context.Context, date string, branchID *string) (*entity.DailyStat, error)
}
