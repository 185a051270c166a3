package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/catalog"
	"github.com/jhoicas/Restaurante-api/internal/application/consumption"
	"github.com/jhoicas/Restaurante-api/internal/application/forecast"
	"github.com/jhoicas/Restaurante-api/internal/application/ledger"
	"github.com/jhoicas/Restaurante-api/internal/application/orders"
	"github.com/jhoicas/Restaurante-api/internal/application/stats"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC      *orders.OrderUseCase
	Applier      *consumption.Applier
	LedgerUC     *ledger.LedgerUseCase
	ForecastUC   *forecast.ForecastUseCase
	IngredientUC *catalog.IngredientUseCase
	RecipeUC     *catalog.RecipeUseCase
	StatsUC      *stats.StatsUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Pedidos y su ciclo de vida
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Applier)
	ordersGroup.Post("/", orderHandler.Place)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/status", orderHandler.Transition)

	// Ledger de stock
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Post("/adjust", stockHandler.Adjust)
	stockGroup.Post("/audit", stockHandler.Audit)
	stockGroup.Get("/movements", stockHandler.Movements)
	stockGroup.Get("/:ingredient_id", stockHandler.Get)

	// Pronóstico de demanda
	forecastHandler := NewForecastHandler(deps.ForecastUC)
	api.Get("/forecast", forecastHandler.Advise)

	// Catálogo: ingredientes y recetas
	catalogHandler := NewCatalogHandler(deps.IngredientUC, deps.RecipeUC)
	ingredients := api.Group("/ingredients")
	ingredients.Post("/", catalogHandler.CreateIngredient)
	ingredients.Get("/", catalogHandler.ListIngredients)
	ingredients.Get("/:id", catalogHandler.GetIngredient)
	ingredients.Put("/:id", catalogHandler.UpdateIngredient)
	ingredients.Delete("/:id", catalogHandler.DeleteIngredient)

	recipes := api.Group("/recipes")
	recipes.Put("/", catalogHandler.SaveRecipe)
	recipes.Get("/", catalogHandler.ListRecipes)
	recipes.Get("/:item_id", catalogHandler.GetRecipe)
	recipes.Delete("/:item_id", catalogHandler.DeleteRecipe)

	// Analytics: rollup diario
	statsHandler := NewStatsHandler(deps.StatsUC)
	analytics := api.Group("/analytics")
	analytics.Get("/daily/:date", statsHandler.GetDaily)
	analytics.Post("/daily/:date/rebuild", statsHandler.RebuildDaily)
}
