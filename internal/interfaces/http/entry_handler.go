package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/application/usecase"
)

// EntryHandler registros del libro.
type EntryHandler struct {
	uc *usecase.EntryUseCase
}

func NewEntryHandler(uc *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Tipos: 8H, 5H, CUSTOM, EXPENSE, PAYMENT. El importe se guarda con su signo (negativo en EXPENSE y PAYMENT).
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEntryRequest  true  "user_id, type, amount, date, hours, note"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Param        date     query  string  false  "Día exacto YYYY-MM-DD"
// @Param        from     query  string  false  "Desde (inclusive)"
// @Param        to       query  string  false  "Hasta (inclusive)"
// @Success      200  {object}  dto.EntryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	var f dto.EntryFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Entry ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), paramCopy(c, "id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
