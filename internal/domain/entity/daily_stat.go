package entity

import "github.com/shopspring/decimal"

// TopItem plato destacado del día, por unidades vendidas.
type TopItem struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailyStat rollup diario por sucursal: derivado de los pedidos y reconstruible
// desde ellos en cualquier momento. No es autoritativo; existe para que los
// dashboards no rescaneen pedidos crudos. El pronóstico de demanda NO lo usa:
// lee pedidos directamente.
type DailyStat struct {
	Date         string // "YYYY-MM-DD"
	BranchID     *string
	TotalRevenue decimal.Decimal
	TotalOrders  int
	TopItems     []TopItem
	Hourly       [24]int // pedidos por hora del día
}
