package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/vin/docs"
	"github.com/jhoicas/vin/internal/application/inventory"
	"github.com/jhoicas/vin/internal/application/ports"
	"github.com/jhoicas/vin/internal/application/usecase"
	"github.com/jhoicas/vin/internal/domain/repository"
	"github.com/jhoicas/vin/internal/infrastructure/cache"
	"github.com/jhoicas/vin/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/vin/internal/infrastructure/pdf"
	"github.com/jhoicas/vin/internal/infrastructure/postgres"
	"github.com/jhoicas/vin/internal/infrastructure/sanitize"
	"github.com/jhoicas/vin/internal/infrastructure/winesapi"
	httpRouter "github.com/jhoicas/vin/internal/interfaces/http"
	"github.com/jhoicas/vin/pkg/config"
	"github.com/jhoicas/vin/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL o memoria (APP_STORAGE=memory, datos volátiles)
	var (
		txRunner ports.TxRunner
		wineRepo repository.WineRepository
		logRepo  repository.InventoryLogRepository
	)
	if cfg.App.Storage == "memory" {
		store := memory.NewStore()
		txRunner, wineRepo, logRepo = store, store.Wines(), store.Logs()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		txRunner = postgres.NewTxRunner(pool)
		wineRepo = postgres.NewWineRepository(pool)
		logRepo = postgres.NewInventoryLogRepository(pool)
	}

	// Sugerencias: API externa opcional + caché Redis opcional
	var suggester ports.DrinkingWindowSuggester
	if cfg.WineAPI.Configured() {
		suggester = winesapi.New(cfg.WineAPI)
	} else {
		log.Warn().Msg("EXTERNAL_WINE_API_BASE_URL/KEY sin configurar: sugerencias responderán 503")
	}
	var suggestionCache ports.SuggestionCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, sugerencias sin caché")
			_ = rdb.Close()
		} else {
			defer rdb.Close()
			suggestionCache = cache.NewSuggestionCache(rdb)
		}
	}

	wineUC := usecase.NewWineUseCase(txRunner, wineRepo)
	inventoryUC := inventory.NewUseCase(txRunner, wineRepo, logRepo, sanitize.NoteSanitizer{})
	suggestionUC := usecase.NewSuggestionUseCase(suggester, suggestionCache, cfg.Redis.TTL, log.Named("suggestions"))
	reportUC := usecase.NewReportUseCase(wineRepo, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.Origins(), ","),
		AllowMethods:     "GET,POST,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		WineUC:       wineUC,
		InventoryUC:  inventoryUC,
		SuggestionUC: suggestionUC,
		ReportUC:     reportUC,
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
