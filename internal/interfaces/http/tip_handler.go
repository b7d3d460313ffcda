package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/application/tips"
	"github.com/shopspring/decimal"
)

// TipHandler reparto semanal de propinas y su reinicio protegido.
type TipHandler struct {
	uc *tips.UseCase
}

func NewTipHandler(uc *tips.UseCase) *TipHandler {
	return &TipHandler{uc: uc}
}

// anchorParam: "current" (o vacío) = domingo por defecto.
func anchorParam(c *fiber.Ctx) string {
	d := paramCopy(c, "date")
	if d == "current" {
		return ""
	}
	return d
}

// paramCopy copia el parámetro de ruta; fasthttp reutiliza su buffer entre peticiones.
func paramCopy(c *fiber.Ctx, name string) string {
	return utils.CopyString(c.Params(name))
}

// Preview godoc
// @Summary      Vista previa del reparto de la semana que termina en date
// @Tags         tips
// @Produce      json
// @Security     BearerAuth
// @Param        date  path   string  true   "Domingo ancla YYYY-MM-DD o current"
// @Param        pool  query  string  false  "Bote en efectivo"
// @Success      200   {object}  dto.TipPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tips/{date}/preview [get]
func (h *TipHandler) Preview(c *fiber.Ctx) error {
	var pool *decimal.Decimal
	if raw := c.Query("pool"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return badRequest(c, "INVALID_POOL", "pool debe ser un número")
		}
		pool = &p
	}
	out, err := h.uc.Preview(anchorParam(c), pool)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Distribute godoc
// @Summary      Repartir el bote
// @Description  Escribe un registro TIP por usuario con horas. Si ya hay propinas para la fecha exige confirm_append.
// @Description  Un fallo a mitad devuelve los registros escritos junto con el error.
// @Tags         tips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string                     true  "Domingo ancla YYYY-MM-DD o current"
// @Param        body  body  dto.DistributeTipsRequest  true  "pool, confirm_append"
// @Success      201   {object}  dto.DistributeTipsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.DistributeTipsResponse
// @Router       /api/tips/{date}/distribute [post]
func (h *TipHandler) Distribute(c *fiber.Ctx) error {
	var in dto.DistributeTipsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Distribute(c.UserContext(), GetUserID(c), anchorParam(c), in)
	if err != nil {
		if out == nil {
			return writeError(c, err)
		}
		status, body := errorBody(err)
		out.Error = &body
		return c.Status(status).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RequestReset godoc
// @Summary      Solicitar reinicio de las propinas de date (paso 1)
// @Tags         tips
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string  true  "Domingo ancla YYYY-MM-DD o current"
// @Success      200   {object}  dto.GuardStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tips/{date}/reset-request [post]
func (h *TipHandler) RequestReset(c *fiber.Ctx) error {
	out, err := h.uc.RequestReset(GetUserID(c), anchorParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AcceptReset godoc
// @Summary      Aceptar reinicio (paso 2); devuelve la frase a escribir
// @Tags         tips
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string  true  "Domingo ancla YYYY-MM-DD o current"
// @Success      200   {object}  dto.GuardStateResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tips/{date}/reset-request/accept [post]
func (h *TipHandler) AcceptReset(c *fiber.Ctx) error {
	out, err := h.uc.AcceptReset(GetUserID(c), anchorParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ConfirmReset godoc
// @Summary      Confirmar reinicio con la frase exacta
// @Tags         tips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string              true  "Domingo ancla YYYY-MM-DD o current"
// @Param        body  body  dto.ConfirmRequest  true  "phrase"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/tips/{date}/reset-request/confirm [post]
func (h *TipHandler) ConfirmReset(c *fiber.Ctx) error {
	var in dto.ConfirmRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.ConfirmReset(c.UserContext(), GetUserID(c), anchorParam(c), in.Phrase); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "propinas reiniciadas"})
}

// CancelReset godoc
// @Summary      Cancelar el reinicio pendiente
// @Tags         tips
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.GuardStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tips/reset-request [delete]
func (h *TipHandler) CancelReset(c *fiber.Ctx) error {
	out, err := h.uc.CancelReset(GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
