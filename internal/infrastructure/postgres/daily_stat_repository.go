package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.DailyStatRepository = (*DailyStatRepo)(nil)

// DailyStatRepo implementación del puerto DailyStatRepository sobre PostgreSQL (usable con pool o tx).
type DailyStatRepo struct {
	q Querier
}

// NewDailyStatRepository construye el adaptador de persistencia para rollups diarios. Pasar pool o tx (Querier).
func NewDailyStatRepository(q Querier) *DailyStatRepo {
	return &DailyStatRepo{q: q}
}

// Upsert reemplaza el rollup completo del día y sucursal.
func (r *DailyStatRepo) Upsert(ctx context.Context, stat *entity.DailyStat) error {
	topItems, err := json.Marshal(stat.TopItems)
	if err != nil {
		return fmt.Errorf("marshal top items: %w", err)
	}
	hourly, err := json.Marshal(stat.Hourly)
	if err != nil {
		return fmt.Errorf("marshal hourly counts: %w", err)
	}
	query := `
		INSERT INTO daily_stats (date, branch_id, total_revenue, total_orders, top_items, hourly)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date, branch_id) DO UPDATE
		SET total_revenue = EXCLUDED.total_revenue, total_orders = EXCLUDED.total_orders,
		    top_items = EXCLUDED.top_items, hourly = EXCLUDED.hourly`
	_, err = r.q.Exec(ctx, query, stat.Date, stat.BranchID, stat.TotalRevenue, stat.TotalOrders, topItems, hourly)
	if err != nil {
		return fmt.Errorf("upsert daily stat: %w", err)
	}
	return nil
}

// Get obtiene el rollup de un día y sucursal. Devuelve nil si aún no existe.
func (r *DailyStatRepo) Get(ctx context.Context, date string, branchID *string) (*entity.DailyStat, error) {
	query := `
		SELECT date, branch_id, total_revenue, total_orders, top_items, hourly
		FROM daily_stats WHERE date = $1 AND branch_id IS NOT DISTINCT FROM $2`
	var stat entity.DailyStat
	var topItems, hourly []byte
	err := r.q.QueryRow(ctx, query, date, branchID).Scan(
		&stat.Date, &stat.BranchID, &stat.TotalRevenue, &stat.TotalOrders, &topItems, &hourly,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily stat: %w", err)
	}
	if err := json.Unmarshal(topItems, &stat.TopItems); err != nil {
		return nil, fmt.Errorf("unmarshal top items: %w", err)
	}
	if err := json.Unmarshal(hourly, &stat.Hourly); err != nil {
		return nil, fmt.Errorf("unmarshal hourly counts: %w", err)
	}
	return &stat, nil
}
