package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/forecast"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/order"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar el pipeline de pronóstico detrás del endpoint
// ──────────────────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	sales      []repository.ItemSales
	orderCount int
	err        error
}

func (r *stubOrderRepo) Create(context.Context, *entity.Order) error { return nil }
func (r *stubOrderRepo) GetByID(context.Context, string) (*entity.Order, error) {
	return nil, nil
}
func (r *stubOrderRepo) GetForUpdate(context.Context, string) (*entity.Order, error) {
	return nil, nil
}
func (r *stubOrderRepo) UpdateStatus(context.Context, string, order.Status, string, bool) error {
	return nil
}
func (r *stubOrderRepo) List(context.Context, int, int) ([]*entity.Order, error) { return nil, nil }
func (r *stubOrderRepo) FulfilledSales(context.Context, time.Time, time.Time) ([]repository.ItemSales, int, error) {
	return r.sales, r.orderCount, r.err
}
func (r *stubOrderRepo) ListFulfilledByDay(context.Context, string, *string) ([]*entity.Order, error) {
	return nil, nil
}

type stubRecipeRepo struct{ recipes map[string]*entity.Recipe }

func (r *stubRecipeRepo) Upsert(context.Context, *entity.Recipe) error { return nil }
func (r *stubRecipeRepo) GetByItemID(_ context.Context, itemID string) (*entity.Recipe, error) {
	return r.recipes[itemID], nil
}
func (r *stubRecipeRepo) GetByItemIDs(_ context.Context, itemIDs []string) (map[string]*entity.Recipe, error) {
	out := make(map[string]*entity.Recipe)
	for _, id := range itemIDs {
		if rec, ok := r.recipes[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}
func (r *stubRecipeRepo) List(context.Context, int, int) ([]*entity.Recipe, error) { return nil, nil }
func (r *stubRecipeRepo) Delete(context.Context, string) error                     { return nil }

type stubIngredientRepo struct{ known map[string]*entity.Ingredient }

func (r *stubIngredientRepo) Create(context.Context, *entity.Ingredient) error { return nil }
func (r *stubIngredientRepo) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	return r.known[id], nil
}
func (r *stubIngredientRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Ingredient, error) {
	out := make(map[string]*entity.Ingredient)
	for _, id := range ids {
		if ing, ok := r.known[id]; ok {
			out[id] = ing
		}
	}
	return out, nil
}
func (r *stubIngredientRepo) List(context.Context, int, int) ([]*entity.Ingredient, error) {
	return nil, nil
}
func (r *stubIngredientRepo) Update(context.Context, *entity.Ingredient) error { return nil }
func (r *stubIngredientRepo) Delete(context.Context, string) error             { return nil }
func (r *stubIngredientRepo) Referenced(context.Context, string) (bool, error) {
	return false, nil
}

type stubStockRepo struct{ rows []*entity.Stock }

func (r *stubStockRepo) Get(context.Context, string, *string) (*entity.Stock, error) {
	return nil, nil
}
func (r *stubStockRepo) AdjustQuantity(context.Context, string, *string, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *stubStockRepo) GetForUpdate(context.Context, string, *string) (*entity.Stock, error) {
	return nil, nil
}
func (r *stubStockRepo) Upsert(context.Context, *entity.Stock) error { return nil }
func (r *stubStockRepo) ListByBranch(context.Context, *string) ([]*entity.Stock, error) {
	return r.rows, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// buildForecastApp monta una app Fiber con solo el handler de pronóstico.
func buildForecastApp(orderRepo *stubOrderRepo, recipes map[string]*entity.Recipe,
	ingredients map[string]*entity.Ingredient, stock []*entity.Stock) *fiber.App {
	uc := forecast.NewForecastUseCase(
		orderRepo,
		&stubRecipeRepo{recipes: recipes},
		&stubIngredientRepo{known: ingredients},
		&stubStockRepo{rows: stock},
		nil,
		config.InventoryConfig{WindowDays: 30, HorizonDays: 7, MinOrders: 3},
		logger.Nop(),
	)
	app := fiber.New()
	app.Get("/api/forecast", apphttp.NewForecastHandler(uc).Advise)
	return app
}

func doGet(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/forecast
// ──────────────────────────────────────────────────────────────────────────────

func TestForecastEndpoint_RespuestaCompleta(t *testing.T) {
	orderRepo := &stubOrderRepo{
		sales:      []repository.ItemSales{{ItemID: "burger", Units: dec("50")}},
		orderCount: 50,
	}
	recipes := map[string]*entity.Recipe{
		"burger": {ItemID: "burger", Ingredients: []entity.RecipeIngredient{
			{IngredientID: "beef", QuantityNeeded: dec("0.5"), Unit: "kg"},
		}},
	}
	ingredients := map[string]*entity.Ingredient{
		"beef": {ID: "beef", Name: "Carne de res", Unit: "kg"},
	}
	stock := []*entity.Stock{{IngredientID: "beef", Quantity: dec("5")}}

	app := buildForecastApp(orderRepo, recipes, ingredients, stock)
	resp, body := doGet(t, app, "/api/forecast?window=30&horizon=7")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool                         `json:"success"`
		Data    []map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success)
	require.Len(t, out.Data, 1)

	// Las claves son contrato del dashboard: camelCase exacto.
	item := out.Data[0]
	for _, k := range []string{"id", "name", "unit", "currentStock", "predictedNeed", "deficit", "status"} {
		assert.Contains(t, item, k)
	}
	assert.JSONEq(t, `"5.83"`, string(item["predictedNeed"]))
	assert.JSONEq(t, `"0.83"`, string(item["deficit"]))
	assert.JSONEq(t, `"WARNING"`, string(item["status"]))
}

func TestForecastEndpoint_HistorialInsuficienteEs200(t *testing.T) {
	orderRepo := &stubOrderRepo{orderCount: 1}
	app := buildForecastApp(orderRepo, nil, nil, nil)

	resp, body := doGet(t, app, "/api/forecast")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success, "sin datos no es lo mismo que no disponible")
	assert.Empty(t, out.Data)
	assert.NotEmpty(t, out.Message)
}

func TestForecastEndpoint_AlmacenCaidoEs503(t *testing.T) {
	orderRepo := &stubOrderRepo{err: errors.New("conexión rechazada")}
	app := buildForecastApp(orderRepo, nil, nil, nil)

	resp, body := doGet(t, app, "/api/forecast")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var out struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Success)
}

func TestForecastEndpoint_ParametrosNegativosEs400(t *testing.T) {
	app := buildForecastApp(&stubOrderRepo{}, nil, nil, nil)

	resp, _ := doGet(t, app, "/api/forecast?window=-5")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
