package forecast

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// Niveles de riesgo de reposición, en orden de precedencia.
const (
	StatusCritical = "CRITICAL"
	StatusWarning  = "WARNING"
	StatusSafe     = "SAFE"
)

var statusRank = map[string]int{
	StatusCritical: 0,
	StatusWarning:  1,
	StatusSafe:     2,
}

// Classify compara la necesidad proyectada contra el snapshot del ledger y
// asigna a cada ingrediente su nivel de riesgo y déficit de reposición.
//
// El universo es la unión de los ingredientes con necesidad proyectada y los
// que tienen fila de stock con cantidad distinta de cero: así un ingrediente
// ya sobrevendido aflora aunque no haya tenido ventas recientes.
//
// Reglas, evaluadas en este orden de precedencia:
//   - CRITICAL: stock actual negativo, o déficit > 0 que iguala o supera el
//     stock actual (la necesidad al menos duplica la reserva efectiva).
//   - WARNING: déficit > 0 por debajo del umbral crítico.
//   - SAFE: el stock actual cubre la necesidad proyectada. En particular,
//     stock 0 con necesidad 0 es SAFE, no CRITICAL.
//
// El resultado sale ordenado CRITICAL → WARNING → SAFE, con déficit
// descendente dentro de cada nivel. El dashboard depende de este orden para
// su "top N más urgentes": nunca dejarlo al orden de iteración de un mapa.
func Classify(
	predicted map[string]decimal.Decimal,
	snapshot []*entity.Stock,
	ingredients map[string]*entity.Ingredient,
) []dto.ForecastItemDTO {
	stockByID := make(map[string]decimal.Decimal, len(snapshot))
	universe := make(map[string]struct{}, len(predicted)+len(snapshot))

	for id := range predicted {
		universe[id] = struct{}{}
	}
	for _, s := range snapshot {
		stockByID[s.IngredientID] = s.Quantity
		if !s.Quantity.IsZero() {
			universe[s.IngredientID] = struct{}{}
		}
	}

	results := make([]dto.ForecastItemDTO, 0, len(universe))
	for id := range universe {
		current := stockByID[id] // cero si no hay fila
		need := predicted[id].Round(2)

		deficit := need.Sub(current)
		if deficit.IsNegative() {
			deficit = decimal.Zero
		}
		deficit = deficit.Round(2)

		var status string
		switch {
		case current.IsNegative():
			status = StatusCritical
		case deficit.GreaterThan(decimal.Zero) && deficit.GreaterThanOrEqual(current):
			status = StatusCritical
		case deficit.GreaterThan(decimal.Zero):
			status = StatusWarning
		default:
			status = StatusSafe
		}

		item := dto.ForecastItemDTO{
			ID:            id,
			CurrentStock:  current,
			PredictedNeed: need,
			Deficit:       deficit,
			Status:        status,
		}
		if ing, ok := ingredients[id]; ok {
			item.Name = ing.Name
			item.Unit = ing.Unit
		}
		results = append(results, item)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if statusRank[a.Status] != statusRank[b.Status] {
			return statusRank[a.Status] < statusRank[b.Status]
		}
		if !a.Deficit.Equal(b.Deficit) {
			return a.Deficit.GreaterThan(b.Deficit)
		}
		// Desempate estable por ID para salida determinista
		return a.ID < b.ID
	})

	return results
}
