package stats

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

const topItemsPerDay = 5

// StatsUseCase mantiene el rollup diario por sucursal. Es dato derivado y
// reconstruible: se calcula desde los pedidos cumplidos y solo existe para
// que el dashboard no rescanee pedidos crudos. El pronóstico no lo usa.
type StatsUseCase struct {
	orderRepo repository.OrderRepository
	statRepo  repository.DailyStatRepository
	log       *logger.Logger
}

// NewStatsUseCase construye el caso de uso del rollup.
func NewStatsUseCase(orderRepo repository.OrderRepository, statRepo repository.DailyStatRepository, log *logger.Logger) *StatsUseCase {
	return &StatsUseCase{orderRepo: orderRepo, statRepo: statRepo, log: log}
}

// RebuildDay reconstruye el rollup de un día (YYYY-MM-DD) y sucursal desde
// los pedidos cumplidos, y lo upserta (una fila por fecha y sucursal).
func (uc *StatsUseCase) RebuildDay(ctx context.Context, date string, branchID *string) (*entity.DailyStat, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ErrInvalidInput
	}

	orders, err := uc.orderRepo.ListFulfilledByDay(ctx, date, branchID)
	if err != nil {
		return nil, err
	}

	stat := &entity.DailyStat{
		Date:         date,
		BranchID:     branchID,
		TotalRevenue: decimal.Zero,
		TotalOrders:  len(orders),
	}

	type itemAgg struct {
		name     string
		quantity decimal.Decimal
		revenue  decimal.Decimal
	}
	byItem := make(map[string]*itemAgg)

	for _, ord := range orders {
		stat.TotalRevenue = stat.TotalRevenue.Add(ord.Amount)
		stat.Hourly[ord.Date.Hour()]++
		for _, it := range ord.Items {
			agg, ok := byItem[it.ItemID]
			if !ok {
				agg = &itemAgg{name: it.Name}
				byItem[it.ItemID] = agg
			}
			agg.quantity = agg.quantity.Add(it.Quantity)
			agg.revenue = agg.revenue.Add(it.Price.Mul(it.Quantity))
		}
	}

	top := make([]entity.TopItem, 0, len(byItem))
	for id, agg := range byItem {
		top = append(top, entity.TopItem{
			ItemID:   id,
			Name:     agg.name,
			Quantity: agg.quantity,
			Revenue:  agg.revenue,
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if !top[i].Quantity.Equal(top[j].Quantity) {
			return top[i].Quantity.GreaterThan(top[j].Quantity)
		}
		return top[i].Revenue.GreaterThan(top[j].Revenue)
	})
	if len(top) > topItemsPerDay {
		top = top[:topItemsPerDay]
	}
	stat.TopItems = top

	if err := uc.statRepo.Upsert(ctx, stat); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("date", date).
		Int("orders", stat.TotalOrders).
		Str("revenue", stat.TotalRevenue.String()).
		Msg("rollup diario reconstruido")
	return stat, nil
}

// GetDay devuelve el rollup del día; si aún no existe lo reconstruye al
// vuelo (es dato derivado, la reconstrucción siempre es segura).
func (uc *StatsUseCase) GetDay(ctx context.Context, date string, branchID *string) (*entity.DailyStat, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ErrInvalidInput
	}
	stat, err := uc.statRepo.Get(ctx, date, branchID)
	if err != nil {
		return nil, err
	}
	if stat != nil {
		return stat, nil
	}
	return uc.RebuildDay(ctx, date, branchID)
}
