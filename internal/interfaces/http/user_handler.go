package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/application/usecase"
)

// UserHandler CRUD de usuarios y flujo de borrado en dos pasos.
type UserHandler struct {
	uc *usecase.UserUseCase
}

func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(paramCopy(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "name, role, hourly_rate, avatar"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "User ID"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), paramCopy(c, "id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Borrado protegido ─────────────────────────────────────────────────────────

// RequestDelete godoc
// @Summary      Solicitar borrado de usuario (paso 1)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.GuardStateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/delete-request [post]
func (h *UserHandler) RequestDelete(c *fiber.Ctx) error {
	out, err := h.uc.RequestDelete(GetUserID(c), paramCopy(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AcceptDelete godoc
// @Summary      Aceptar borrado (paso 2); devuelve la frase a escribir
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      200  {object}  dto.GuardStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/delete-request/accept [post]
func (h *UserHandler) AcceptDelete(c *fiber.Ctx) error {
	out, err := h.uc.AcceptDelete(GetUserID(c), paramCopy(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ConfirmDelete godoc
// @Summary      Confirmar borrado con la frase exacta
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "User ID"
// @Param        body  body  dto.ConfirmRequest  true  "phrase"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/delete-request/confirm [post]
func (h *UserHandler) ConfirmDelete(c *fiber.Ctx) error {
	var in dto.ConfirmRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.ConfirmDelete(c.UserContext(), GetUserID(c), paramCopy(c, "id"), in.Phrase); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}

// CancelDelete godoc
// @Summary      Cancelar el borrado pendiente
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.GuardStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/delete-request [delete]
func (h *UserHandler) CancelDelete(c *fiber.Ctx) error {
	out, err := h.uc.CancelDelete(GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
