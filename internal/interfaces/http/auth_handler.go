package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/impilo-stock/internal/application/auth"
	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// AuthHandler login, registro y sesión contra el backend Impilo.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.SessionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  entity.UserRegistrationDto  true  "username, password, email"
// @Success      201   {object}  entity.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in entity.UserRegistrationDto
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ResetPassword godoc
// @Summary      Solicitar recuperación de contraseña
// @Tags         auth
// @Produce      json
// @Param        email  query  string  true  "email del usuario"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	msg, err := h.uc.ResetPassword(c.UserContext(), strings.TrimSpace(c.Query("email")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": msg})
}

// Session godoc
// @Summary      Sesión actual (claims del token)
// @Tags         auth
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.SessionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	s, err := h.uc.Session(GetToken(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

// Validate godoc
// @Summary      Validar el token contra el backend
// @Tags         auth
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  entity.TokenValidation
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	res, err := h.uc.Validate(c.UserContext(), GetToken(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Los tokens los emite el backend; el servidor solo confirma. El cliente descarta su token.
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
