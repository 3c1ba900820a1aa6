package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	appcategory "github.com/zmitacart/catalog-api/internal/application/category"
	"github.com/zmitacart/catalog-api/internal/application/dto"
	"github.com/zmitacart/catalog-api/internal/domain/repository"
	"github.com/zmitacart/catalog-api/internal/infrastructure/cache"
	"github.com/zmitacart/catalog-api/internal/infrastructure/memory"
	"github.com/zmitacart/catalog-api/internal/infrastructure/observability"
	"github.com/zmitacart/catalog-api/internal/infrastructure/postgres"
	httpRouter "github.com/zmitacart/catalog-api/internal/interfaces/http"
	"github.com/zmitacart/catalog-api/pkg/config"
	"github.com/zmitacart/catalog-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repo     repository.CategoryRepository
		txRunner appcategory.TxRunner
	)
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		repo, txRunner = store.Repository(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repo, txRunner = postgres.NewCategoryRepository(pool), postgres.NewTxRunner(pool)
	}

	metrics := observability.NewCollector("zmitacart")

	var treeCache appcategory.TreeCache
	if cfg.Redis.Enabled() {
		client, err := cache.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			// sin caché se sigue sirviendo desde el almacenamiento
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché desactivada")
		} else {
			defer client.Close()
			treeCache = cache.NewRedisTreeCache(client, cfg.Redis.TTL, log.Zerolog())
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("caché de categorías activa")
		}
	}

	treeManager := appcategory.NewTreeManager(repo, txRunner, treeCache, metrics, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TreeManager: treeManager,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Zerolog(),
		Metrics:     metrics,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ZmitaCart Catalog API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name, Storage: cfg.Storage})
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
