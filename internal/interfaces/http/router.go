package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jhoicas/puantaj-api/internal/application/auth"
	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/application/reports"
	"github.com/jhoicas/puantaj-api/internal/application/tips"
	"github.com/jhoicas/puantaj-api/internal/application/usecase"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	EntryUC   *usecase.EntryUseCase
	SyncUC    *usecase.SyncUseCase
	TipsUC    *tips.UseCase
	ReportsUC *reports.UseCase
	JWTSecret string
	// LoginMaxPerMinute intentos de login por IP y minuto; 0 = 10.
	LoginMaxPerMinute int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.ReportsUC)

	// Auth (público, con límite por IP)
	maxLogin := deps.LoginMaxPerMinute
	if maxLogin <= 0 {
		maxLogin = 10
	}
	authGroup := api.Group("/auth")
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        maxLogin,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_REQUESTS", Message: "demasiados intentos, espere un minuto"})
		},
	}), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	me := protected.Group("/me")
	me.Get("/", authHandler.Me)
	me.Get("/summary", authHandler.MySummary)
	me.Get("/calendar", authHandler.MyCalendar)

	// Solo administración
	admin := protected.Group("/", RequireRole(string(entity.RoleAdmin)))

	users := admin.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/delete-request", userHandler.CancelDelete)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/delete-request", userHandler.RequestDelete)
	users.Post("/:id/delete-request/accept", userHandler.AcceptDelete)
	users.Post("/:id/delete-request/confirm", userHandler.ConfirmDelete)

	entries := admin.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Get("/", entryHandler.List)
	entries.Post("/", entryHandler.Create)
	entries.Delete("/:id", entryHandler.Delete)

	tipGroup := admin.Group("/tips")
	tipHandler := NewTipHandler(deps.TipsUC)
	tipGroup.Delete("/reset-request", tipHandler.CancelReset)
	tipGroup.Get("/:date/preview", tipHandler.Preview)
	tipGroup.Post("/:date/distribute", tipHandler.Distribute)
	tipGroup.Post("/:date/reset-request", tipHandler.RequestReset)
	tipGroup.Post("/:date/reset-request/accept", tipHandler.AcceptReset)
	tipGroup.Post("/:date/reset-request/confirm", tipHandler.ConfirmReset)

	reportGroup := admin.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC, deps.SyncUC)
	reportGroup.Get("/ranking", reportHandler.Ranking)
	reportGroup.Get("/users/:id/summary", reportHandler.Summary)
	reportGroup.Get("/users/:id/calendar", reportHandler.Calendar)
	reportGroup.Get("/users/:id/statement.pdf", reportHandler.StatementPDF)

	admin.Post("/sync", reportHandler.Sync)
}
