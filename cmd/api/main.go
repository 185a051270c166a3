package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Restaurante-api/internal/application/catalog"
	"github.com/jhoicas/Restaurante-api/internal/application/consumption"
	"github.com/jhoicas/Restaurante-api/internal/application/forecast"
	"github.com/jhoicas/Restaurante-api/internal/application/ledger"
	"github.com/jhoicas/Restaurante-api/internal/application/orders"
	"github.com/jhoicas/Restaurante-api/internal/application/stats"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/cache"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("gating", cfg.Inventory.Gating).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ingredientRepo := postgres.NewIngredientRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	statRepo := postgres.NewDailyStatRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de pronóstico opcional: sin REDIS_ADDR se calcula en cada petición.
	var forecastCache forecast.ResultCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.Connect(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		forecastCache = cache.NewForecastCache(redisClient, log.With().Str("component", "forecast_cache").Logger())
	}

	orderUC := orders.NewOrderUseCase(orderRepo, log)
	applier := consumption.NewApplier(txRunner, recipeRepo, cfg.Inventory.Gating, log)
	ledgerUC := ledger.NewLedgerUseCase(stockRepo, movementRepo, ingredientRepo, txRunner, log)
	forecastUC := forecast.NewForecastUseCase(orderRepo, recipeRepo, ingredientRepo, stockRepo, forecastCache, cfg.Inventory, log)
	ingredientUC := catalog.NewIngredientUseCase(ingredientRepo)
	recipeUC := catalog.NewRecipeUseCase(recipeRepo, ingredientRepo)
	statsUC := stats.NewStatsUseCase(orderRepo, statRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Restaurante API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:      orderUC,
		Applier:      applier,
		LedgerUC:     ledgerUC,
		ForecastUC:   forecastUC,
		IngredientUC: ingredientUC,
		RecipeUC:     recipeUC,
		StatsUC:      statsUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
