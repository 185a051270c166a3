package dto

import "github.com/shopspring/decimal"

// ForecastItemDTO pronóstico de un ingrediente para el horizonte consultado.
// Los nombres JSON son contrato con el dashboard de reposición: no renombrar.
type ForecastItemDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	PredictedNeed decimal.Decimal `json:"predictedNeed"`
	Deficit       decimal.Decimal `json:"deficit"`
	Status        string          `json:"status"` // CRITICAL | WARNING | SAFE
}

// ForecastResponse respuesta del endpoint de pronóstico.
//
// Success=false se reserva para "el pronóstico no se pudo calcular"
// (almacén inalcanzable, timeout). Un resultado vacío por falta de ventas
// es Success=true con Data vacío: para el caller son situaciones distintas.
type ForecastResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    []ForecastItemDTO `json:"data"`
}
