package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/puantaj-api/internal/application/auth"
	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/application/reports"
	"github.com/jhoicas/puantaj-api/internal/application/usecase"
)

// AuthHandler maneja login y las rutas del usuario autenticado (/api/me).
type AuthHandler struct {
	uc      *auth.AuthUseCase
	users   *usecase.UserUseCase
	reports *reports.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase, reports *reports.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc, users: users, reports: reports}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  El personal entra con su user_id; el admin además con contraseña si está configurada.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "user_id, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.UserID == "" {
		return badRequest(c, "VALIDATION", "user_id es requerido")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.GetByID(GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MySummary godoc
// @Summary      Resumen propio (saldo y totales del mes)
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        year   query  int  false  "Año (por defecto el actual)"
// @Param        month  query  int  false  "Mes 1-12 (por defecto el actual)"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/me/summary [get]
func (h *AuthHandler) MySummary(c *fiber.Ctx) error {
	q, err := parseMonth(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "year y month deben ser numéricos")
	}
	out, err := h.reports.Summary(GetUserID(c), q.Year, q.Month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MyCalendar godoc
// @Summary      Calendario propio del mes
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Param        year   query  int  false  "Año"
// @Param        month  query  int  false  "Mes 1-12"
// @Success      200  {object}  dto.CalendarResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/me/calendar [get]
func (h *AuthHandler) MyCalendar(c *fiber.Ctx) error {
	q, err := parseMonth(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "year y month deben ser numéricos")
	}
	out, err := h.reports.Calendar(GetUserID(c), q.Year, q.Month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func parseMonth(c *fiber.Ctx) (dto.MonthQuery, error) {
	var q dto.MonthQuery
	err := c.QueryParser(&q)
	return q, err
}
