package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
)

// EmployeeHandler maneja el recurso Employee y su vínculo de IP.
type EmployeeHandler struct {
	employees *usecase.EmployeeUseCase
	identity  *usecase.IdentityUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(employees *usecase.EmployeeUseCase, identity *usecase.IdentityUseCase) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, identity: identity}
}

// Detect godoc
// @Summary      Autodetectar empleado por IP
// @Tags         employees
// @Produce      json
// @Success      200  {object}  dto.DetectResponse
// @Router       /api/employees/detect [get]
func (h *EmployeeHandler) Detect(c *fiber.Ctx) error {
	out, err := h.identity.Detect(c.UserContext(), GetClientIP(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado con su empresa
// @Tags         employees
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.employees.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empleado y sus marcaciones
// @Tags         employees
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.employees.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// QRCode godoc
// @Summary      QR del carné del empleado
// @Tags         employees
// @Produce      png
// @Param        id    path   int  true   "ID del empleado"
// @Param        size  query  int  false  "Lado en píxeles (máx. 1024)"  default(128)
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/qr [get]
func (h *EmployeeHandler) QRCode(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	png, err := h.employees.QRCode(c.UserContext(), id, c.QueryInt("size", 0))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// BindIP godoc
// @Summary      Vincular IP móvil
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del empleado"
// @Param        body  body  dto.BindIPRequest  true  "IP a vincular"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/ip [post]
func (h *EmployeeHandler) BindIP(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.BindIPRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, CodeInvalidBody, "cuerpo inválido")
	}
	out, err := h.identity.Bind(c.UserContext(), id, in.IP)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UnbindIP godoc
// @Summary      Desvincular IP móvil
// @Tags         employees
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/ip [delete]
func (h *EmployeeHandler) UnbindIP(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.identity.Unbind(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
