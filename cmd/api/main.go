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
	"github.com/tojem/stock-taker-api/internal/application/auth"
	appstocktake "github.com/tojem/stock-taker-api/internal/application/stocktake"
	infrapdf "github.com/tojem/stock-taker-api/internal/infrastructure/pdf"
	"github.com/tojem/stock-taker-api/internal/infrastructure/postgres"
	infrascanner "github.com/tojem/stock-taker-api/internal/infrastructure/scanner"
	httpRouter "github.com/tojem/stock-taker-api/internal/interfaces/http"
	"github.com/tojem/stock-taker-api/pkg/config"
	"github.com/tojem/stock-taker-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	operatorRepo := postgres.NewOperatorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	scannerMgr := infrascanner.NewManager(log.Zerolog())
	reportGen := infrapdf.NewMarotoSessionReport()

	sessionUC := appstocktake.NewSessionUseCase(txRunner, sessionRepo, log)
	checklistUC := appstocktake.NewChecklistUseCase(itemRepo, sessionUC)
	countingUC := appstocktake.NewCountingUseCase(itemRepo, scannerMgr, log)
	authUC := auth.NewAuthUseCase(operatorRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Stock Taker API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SessionUC:   sessionUC,
		ChecklistUC: checklistUC,
		CountingUC:  countingUC,
		ScannerMgr:  scannerMgr,
		ReportGen:   reportGen,
		JWTSecret:   cfg.JWT.Secret,
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

	// El flujo de conteo en memoria se descarta; lo persistido no se toca.
	countingUC.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
