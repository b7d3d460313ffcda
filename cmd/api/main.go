// @title                      Puantaj API
// @version                    1.0
// @description                Libro de horas, saldos y propinas del personal.
// @BasePath                   /
// @schemes                    http https
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Bearer <token>

//go:generate swag init -d ../../ -g cmd/api/main.go -o ../../docs --outputTypes json
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
	"github.com/jhoicas/puantaj-api/internal/application/auth"
	"github.com/jhoicas/puantaj-api/internal/application/reports"
	"github.com/jhoicas/puantaj-api/internal/application/tips"
	"github.com/jhoicas/puantaj-api/internal/application/usecase"
	"github.com/jhoicas/puantaj-api/internal/domain/guard"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
	"github.com/jhoicas/puantaj-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/puantaj-api/internal/infrastructure/pdf"
	"github.com/jhoicas/puantaj-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/puantaj-api/internal/interfaces/http"
	"github.com/jhoicas/puantaj-api/pkg/config"
	"github.com/jhoicas/puantaj-api/pkg/logger"
	"golang.org/x/text/language"
)

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
		Str("gateway", cfg.Ledger.Gateway).
		Msg("iniciando aplicación")

	ctx := context.Background()
	gw, closeGW := openGateway(ctx, cfg, log)
	defer closeGW()

	store := ledger.NewStore()
	syncUC := usecase.NewSyncUseCase(gw, store, usecase.AdminSeed{
		ID:     cfg.Ledger.AdminID,
		Name:   cfg.Ledger.AdminName,
		Avatar: cfg.Ledger.AdminAvatar,
	}, log.Component("sync"))
	if _, err := syncUC.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del libro")
	}

	guards := guard.NewRegistry()
	userUC := usecase.NewUserUseCase(gw, store, guards, cfg.Ledger.AdminID, cfg.Ledger.DeleteUserPhrase, log.Component("users"))
	entryUC := usecase.NewEntryUseCase(gw, store, log.Component("entries"))
	tipsUC := tips.NewUseCase(gw, store, guards, cfg.Ledger.TipResetPhrase, log.Component("tips"))

	// PDF: extracto mensual con separadores de miles en formato turco
	pdfGenerator := infrapdf.NewMarotoStatementGenerator(language.Turkish)
	reportsUC := reports.NewUseCase(store, pdfGenerator, cfg.Ledger.Currency)

	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Ledger.AdminPasswordHash)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Puantaj API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		EntryUC:   entryUC,
		SyncUC:    syncUC,
		TipsUC:    tipsUC,
		ReportsUC: reportsUC,
		JWTSecret: cfg.JWT.Secret,
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

// openGateway elige el almacenamiento según LEDGER_GATEWAY. memory no persiste nada.
func openGateway(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Gateway, func()) {
	if cfg.Ledger.Gateway == config.GatewayMemory {
		log.Warn().Msg("gateway en memoria: los datos se pierden al reiniciar")
		return memory.NewGateway(nil, nil), func() {}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return postgres.NewGateway(pool, log.Component("postgres")), pool.Close
}
