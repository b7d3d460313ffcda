package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/puantaj-api/internal/application/reports"
	"github.com/jhoicas/puantaj-api/internal/application/usecase"
)

// ReportHandler ranking, resúmenes por usuario y extracto PDF; también la resincronización.
type ReportHandler struct {
	uc   *reports.UseCase
	sync *usecase.SyncUseCase
}

func NewReportHandler(uc *reports.UseCase, sync *usecase.SyncUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, sync: sync}
}

// Ranking godoc
// @Summary      Ranking de saldos (sin propinas), de mayor a menor
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RankingResponse
// @Router       /api/reports/ranking [get]
func (h *ReportHandler) Ranking(c *fiber.Ctx) error {
	return c.JSON(h.uc.Ranking())
}

// Summary godoc
// @Summary      Resumen de un usuario
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "User ID"
// @Param        year   query  int     false  "Año"
// @Param        month  query  int     false  "Mes 1-12"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/users/{id}/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	q, err := parseMonth(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "year y month deben ser numéricos")
	}
	out, err := h.uc.Summary(paramCopy(c, "id"), q.Year, q.Month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Calendar godoc
// @Summary      Calendario mensual de un usuario
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   string  true   "User ID"
// @Param        year   query  int     false  "Año"
// @Param        month  query  int     false  "Mes 1-12"
// @Success      200  {object}  dto.CalendarResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/users/{id}/calendar [get]
func (h *ReportHandler) Calendar(c *fiber.Ctx) error {
	q, err := parseMonth(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "year y month deben ser numéricos")
	}
	out, err := h.uc.Calendar(paramCopy(c, "id"), q.Year, q.Month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StatementPDF godoc
// @Summary      Extracto mensual en PDF
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id     path   string  true   "User ID"
// @Param        year   query  int     false  "Año"
// @Param        month  query  int     false  "Mes 1-12"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/users/{id}/statement.pdf [get]
func (h *ReportHandler) StatementPDF(c *fiber.Ctx) error {
	q, err := parseMonth(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "year y month deben ser numéricos")
	}
	pdf, filename, err := h.uc.StatementPDF(paramCopy(c, "id"), q.Year, q.Month)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// Sync godoc
// @Summary      Recargar usuarios y registros desde la base de datos
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SyncResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sync [post]
func (h *ReportHandler) Sync(c *fiber.Ctx) error {
	out, err := h.sync.Reload(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
