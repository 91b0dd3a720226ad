package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc        *usecase.CompanyUseCase
	employees *usecase.EmployeeUseCase
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, employees *usecase.EmployeeUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, employees: employees}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, CodeInvalidBody, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSettings godoc
// @Summary      Configuración de la empresa
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/settings [get]
func (h *CompanyHandler) GetSettings(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetSettings(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings godoc
// @Summary      Actualizar geocerca y políticas
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  int                               true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanySettingsRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/settings [put]
func (h *CompanyHandler) UpdateSettings(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateCompanySettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, CodeInvalidBody, "cuerpo inválido")
	}
	out, err := h.uc.UpdateSettings(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListEmployees godoc
// @Summary      Empleados de la empresa
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {array}   dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/employees [get]
func (h *CompanyHandler) ListEmployees(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.ListEmployees(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEmployee godoc
// @Summary      Registrar empleado
// @Description  El código de empleado se genera en el servidor.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID de la empresa"
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/employees [post]
func (h *CompanyHandler) CreateEmployee(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, CodeInvalidBody, "cuerpo inválido")
	}
	out, err := h.employees.Create(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// NextCode godoc
// @Summary      Próximo código de empleado
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.NextCodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/next-code [get]
func (h *CompanyHandler) NextCode(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.employees.NextCode(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
