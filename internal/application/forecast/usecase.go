package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// ForecastUseCase calcula la demanda próxima de ingredientes a partir de la
// venta histórica y las recetas, y la clasifica contra el ledger de stock.
//
// Es un batch de solo lectura: toma un snapshot "suficientemente consistente"
// de pedidos y stock sin bloqueos de fila; un pedido que se compromete a
// mitad del cálculo produce una obsolescencia leve y aceptable. Nunca bloquea
// ni es bloqueado por la toma de pedidos.
type ForecastUseCase struct {
	orderRepo      repository.OrderRepository
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	stockRepo      repository.StockRepository
	cache          ResultCache // nil = sin caché
	cfg            config.InventoryConfig
	log            *logger.Logger
}

// NewForecastUseCase construye el caso de uso de pronóstico.
func NewForecastUseCase(
	orderRepo repository.OrderRepository,
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	stockRepo repository.StockRepository,
	cache ResultCache,
	cfg config.InventoryConfig,
	log *logger.Logger,
) *ForecastUseCase {
	return &ForecastUseCase{
		orderRepo:      orderRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		stockRepo:      stockRepo,
		cache:          cache,
		cfg:            cfg,
		log:            log,
	}
}

// Aggregate suma las unidades vendidas por plato en los pedidos cumplidos de
// la ventana [ahora - windowDays, ahora), sobre todas las sucursales.
// Devuelve además el total de pedidos considerados. Una ventana sin pedidos
// produce un mapa vacío: resultado válido, no error.
func (uc *ForecastUseCase) Aggregate(ctx context.Context, windowDays int) (map[string]decimal.Decimal, int, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -windowDays)

	sales, orderCount, err := uc.orderRepo.FulfilledSales(ctx, from, now)
	if err != nil {
		return nil, 0, fmt.Errorf("agregar ventas: %w", err)
	}

	units := make(map[string]decimal.Decimal, len(sales))
	for _, s := range sales {
		units[s.ItemID] = units[s.ItemID].Add(s.Units)
	}
	return units, orderCount, nil
}

// Forecast proyecta la necesidad de cada ingrediente para el horizonte:
//
//	necesidad[ing] += cantidadReceta × unidadesVendidas × (horizonte / ventana)
//
// Es una proyección de tasa móvil simple, no un modelo de series de tiempo:
// asume que la demanda es estacionaria dentro de la ventana observada. Los
// platos sin receta no aportan necesidad (consumo cero por política).
func (uc *ForecastUseCase) Forecast(ctx context.Context, windowDays, horizonDays int) (map[string]decimal.Decimal, int, error) {
	if windowDays <= 0 || horizonDays <= 0 {
		return nil, 0, domain.ErrInvalidInput
	}

	units, orderCount, err := uc.Aggregate(ctx, windowDays)
	if err != nil {
		return nil, 0, err
	}
	if len(units) == 0 {
		return map[string]decimal.Decimal{}, orderCount, nil
	}

	itemIDs := make([]string, 0, len(units))
	for id := range units {
		itemIDs = append(itemIDs, id)
	}
	recipes, err := uc.recipeRepo.GetByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("resolver recetas: %w", err)
	}

	// Factor de proyección: demanda observada por ventana → horizonte
	factor := decimal.NewFromInt(int64(horizonDays)).Div(decimal.NewFromInt(int64(windowDays)))

	needs := make(map[string]decimal.Decimal)
	for itemID, sold := range units {
		rec, ok := recipes[itemID]
		if !ok {
			continue
		}
		for _, ing := range rec.Ingredients {
			need := ing.QuantityNeeded.Mul(sold).Mul(factor)
			needs[ing.IngredientID] = needs[ing.IngredientID].Add(need)
		}
	}
	return needs, orderCount, nil
}

// Advise ejecuta el pipeline completo (agregar → proyectar → clasificar) y
// arma la respuesta del endpoint de pronóstico. windowDays/horizonDays en
// cero toman los valores configurados.
//
// Cualquier falla del almacén, incluido el timeout configurado, se reporta
// como domain.ErrForecastUnavailable: "no se pudo calcular" es distinto de
// "se calculó y está vacío", y el caller decide el reintento.
func (uc *ForecastUseCase) Advise(ctx context.Context, windowDays, horizonDays int) (*dto.ForecastResponse, error) {
	if windowDays <= 0 {
		windowDays = uc.cfg.WindowDays
	}
	if horizonDays <= 0 {
		horizonDays = uc.cfg.HorizonDays
	}

	cacheKey := fmt.Sprintf("forecast:w%d:h%d", windowDays, horizonDays)
	if uc.cache != nil {
		if resp, ok := uc.cache.Get(ctx, cacheKey); ok {
			uc.log.Debug().Str("key", cacheKey).Msg("pronóstico servido desde caché")
			return resp, nil
		}
	}

	if uc.cfg.ForecastTimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(uc.cfg.ForecastTimeoutSec)*time.Second)
		defer cancel()
	}

	needs, orderCount, err := uc.Forecast(ctx, windowDays, horizonDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrForecastUnavailable, err)
	}

	if orderCount < uc.cfg.MinOrders {
		// Historial insuficiente: resultado vacío válido, no un error.
		return &dto.ForecastResponse{
			Success: true,
			Message: fmt.Sprintf("Historial insuficiente para pronosticar: %d pedidos cumplidos en los últimos %d días (mínimo %d)",
				orderCount, windowDays, uc.cfg.MinOrders),
			Data: []dto.ForecastItemDTO{},
		}, nil
	}

	// Snapshot del ledger: bodega central. La demanda se agrega sobre todas
	// las sucursales; la cobertura se evalúa contra el stock central, que es
	// el que alimenta la reposición.
	snapshot, err := uc.stockRepo.ListByBranch(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot de stock: %v", domain.ErrForecastUnavailable, err)
	}

	ids := make([]string, 0, len(needs)+len(snapshot))
	for id := range needs {
		ids = append(ids, id)
	}
	for _, s := range snapshot {
		ids = append(ids, s.IngredientID)
	}
	ingredients, err := uc.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: resolver ingredientes: %v", domain.ErrForecastUnavailable, err)
	}

	resp := &dto.ForecastResponse{
		Success: true,
		Message: fmt.Sprintf("Pronóstico basado en %d pedidos de los últimos %d días, proyectado a %d días",
			orderCount, windowDays, horizonDays),
		Data: Classify(needs, snapshot, ingredients),
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKey, resp, time.Duration(uc.cfg.ForecastTTLSec)*time.Second)
	}

	uc.log.Info().
		Int("orders", orderCount).
		Int("ingredients", len(resp.Data)).
		Int("window_days", windowDays).
		Int("horizon_days", horizonDays).
		Msg("pronóstico de demanda calculado")
	return resp, nil
}
