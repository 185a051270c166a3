package forecast_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/forecast"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func stockRow(id, qty string) *entity.Stock {
	return &entity.Stock{IngredientID: id, Quantity: dec(qty)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas de clasificación: CRITICAL / WARNING / SAFE
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_StockNegativoEsCritico(t *testing.T) {
	// Bodega sobrecomprometida: crítico aunque no haya necesidad proyectada.
	out := forecast.Classify(
		map[string]decimal.Decimal{},
		[]*entity.Stock{stockRow("beef", "-2")},
		nil,
	)
	require.Len(t, out, 1)
	assert.Equal(t, forecast.StatusCritical, out[0].Status)
	assert.True(t, out[0].CurrentStock.Equal(dec("-2")))
	assert.True(t, out[0].Deficit.Equal(dec("2")), "déficit = necesidad - stock, acotado abajo en cero")
}

func TestClassify_DeficitQueIgualaElStockEsCritico(t *testing.T) {
	// stock 3, necesidad 6 → déficit 3 ≥ stock 3: la necesidad duplica la reserva.
	out := forecast.Classify(
		map[string]decimal.Decimal{"beef": dec("6")},
		[]*entity.Stock{stockRow("beef", "3")},
		nil,
	)
	require.Len(t, out, 1)
	assert.Equal(t, forecast.StatusCritical, out[0].Status)
}

func TestClassify_DeficitModeradoEsWarning(t *testing.T) {
	// stock 5, necesidad 5.83 → déficit 0.83 > 0 pero < stock.
	out := forecast.Classify(
		map[string]decimal.Decimal{"beef": dec("5.83")},
		[]*entity.Stock{stockRow("beef", "5")},
		nil,
	)
	require.Len(t, out, 1)
	assert.Equal(t, forecast.StatusWarning, out[0].Status)
	assert.True(t, out[0].Deficit.Equal(dec("0.83")))
}

func TestClassify_StockCubreNecesidadEsSafe(t *testing.T) {
	out := forecast.Classify(
		map[string]decimal.Decimal{"beef": dec("4")},
		[]*entity.Stock{stockRow("beef", "10")},
		nil,
	)
	require.Len(t, out, 1)
	assert.Equal(t, forecast.StatusSafe, out[0].Status)
	assert.True(t, out[0].Deficit.IsZero())
}

func TestClassify_CeroSobreCeroEsSafe(t *testing.T) {
	// Necesidad 0 con stock 0: sin demanda no hay riesgo, jamás CRITICAL.
	out := forecast.Classify(
		map[string]decimal.Decimal{"beef": decimal.Zero},
		nil,
		nil,
	)
	require.Len(t, out, 1)
	assert.Equal(t, forecast.StatusSafe, out[0].Status)
}

func TestClassify_FilaCeroSinDemandaNoAparece(t *testing.T) {
	// Universo = proyectados ∪ stock distinto de cero. Una fila en cero sin
	// ventas no aporta señal.
	out := forecast.Classify(
		map[string]decimal.Decimal{},
		[]*entity.Stock{stockRow("beef", "0")},
		nil,
	)
	assert.Empty(t, out)
}

func TestClassify_RedondeaADosDecimales(t *testing.T) {
	out := forecast.Classify(
		map[string]decimal.Decimal{"beef": dec("5.83333333")},
		[]*entity.Stock{stockRow("beef", "5")},
		nil,
	)
	require.Len(t, out, 1)
	assert.True(t, out[0].PredictedNeed.Equal(dec("5.83")))
	assert.True(t, out[0].Deficit.Equal(dec("0.83")))
}

func TestClassify_ResuelveNombreYUnidad(t *testing.T) {
	out := forecast.Classify(
		map[string]decimal.Decimal{"beef": dec("1")},
		nil,
		map[string]*entity.Ingredient{
			"beef": {ID: "beef", Name: "Carne de res", Unit: "kg"},
		},
	)
	require.Len(t, out, 1)
	assert.Equal(t, "Carne de res", out[0].Name)
	assert.Equal(t, "kg", out[0].Unit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de salida: CRITICAL → WARNING → SAFE, déficit descendente, ID estable
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_OrdenPorNivelYDeficit(t *testing.T) {
	out := forecast.Classify(
		map[string]decimal.Decimal{
			"safe-a":     dec("1"),
			"warn-minor": dec("11"),
			"warn-major": dec("14"),
			"crit-a":     dec("20"),
		},
		[]*entity.Stock{
			stockRow("safe-a", "50"),
			stockRow("warn-minor", "10"),
			stockRow("warn-major", "10"),
			stockRow("crit-a", "5"),
			stockRow("crit-negative", "-1"),
		},
		nil,
	)
	require.Len(t, out, 5)

	var ids []string
	for _, item := range out {
		ids = append(ids, item.ID)
	}
	// crit-a: déficit 15; crit-negative: déficit 1; warn-major: 4; warn-minor: 1.
	assert.Equal(t, []string{"crit-a", "crit-negative", "warn-major", "warn-minor", "safe-a"}, ids)
}

func TestClassify_EmpateDeDeficitDesempataPorID(t *testing.T) {
	out := forecast.Classify(
		map[string]decimal.Decimal{
			"bbb": dec("11"),
			"aaa": dec("11"),
		},
		[]*entity.Stock{stockRow("aaa", "10"), stockRow("bbb", "10")},
		nil,
	)
	require.Len(t, out, 2)
	assert.Equal(t, "aaa", out[0].ID)
	assert.Equal(t, "bbb", out[1].ID)
}
