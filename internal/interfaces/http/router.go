package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tojem/stock-taker-api/internal/application/auth"
	"github.com/tojem/stock-taker-api/internal/application/stocktake"
	"github.com/tojem/stock-taker-api/internal/infrastructure/scanner"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SessionUC   *stocktake.SessionUseCase
	ChecklistUC *stocktake.ChecklistUseCase
	CountingUC  *stocktake.CountingUseCase
	ScannerMgr  *scanner.Manager
	ReportGen   stocktake.SessionReportGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sesiones de conteo (protegido)
	sessions := protected.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.SessionUC, deps.ChecklistUC)
	checklistHandler := NewChecklistHandler(deps.ChecklistUC)
	reportHandler := NewReportHandler(deps.SessionUC, deps.ChecklistUC, deps.ReportGen)
	sessions.Post("/", sessionHandler.Start)
	sessions.Get("/active", sessionHandler.GetActive)
	sessions.Get("/:id", sessionHandler.GetByID)
	sessions.Post("/:id/finish", sessionHandler.Finish)
	sessions.Get("/:id/checklist", checklistHandler.Get)
	sessions.Get("/:id/report", reportHandler.SessionPDF)

	// Flujo de conteo del dispositivo (protegido)
	counting := protected.Group("/counting")
	countingHandler := NewCountingHandler(deps.CountingUC, deps.SessionUC)
	counting.Get("/", countingHandler.State)
	counting.Post("/select", countingHandler.Select)
	counting.Post("/verify-scan", countingHandler.RequestVerifyScan)
	counting.Post("/scan", countingHandler.RequestGeneralScan)
	counting.Post("/commit", countingHandler.Commit)
	counting.Post("/close", countingHandler.Close)

	// Feed del lector de códigos (protegido)
	scannerGroup := protected.Group("/scanner")
	scannerHandler := NewScannerHandler(deps.ScannerMgr)
	scannerGroup.Post("/decode", scannerHandler.Decode)
}
