package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// DailyStatDTO rollup diario para el dashboard.
type DailyStatDTO struct {
	Date         string           `json:"date"`
	BranchID     *string          `json:"branch_id"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	TotalOrders  int              `json:"total_orders"`
	TopItems     []entity.TopItem `json:"top_items"`
	Hourly       [24]int          `json:"hourly"`
}
