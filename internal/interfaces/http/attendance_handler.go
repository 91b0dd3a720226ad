package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
)

// AttendanceHandler maneja las marcaciones de entrada/salida.
type AttendanceHandler struct {
	uc *usecase.AttendanceUseCase
}

// NewAttendanceHandler construye el handler inyectando el caso de uso.
func NewAttendanceHandler(uc *usecase.AttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// Submit godoc
// @Summary      Registrar marcación
// @Description  Identifica al empleado por la IP de origen y alterna entrada/salida si está dentro de la geocerca.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitAttendanceBody  true  "Posición GPS"
// @Success      200   {object}  dto.SubmitAttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.RejectionResponse
// @Router       /api/attendance [post]
func (h *AttendanceHandler) Submit(c *fiber.Ctx) error {
	var body dto.SubmitAttendanceBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, CodeInvalidBody, "cuerpo inválido")
	}
	if body.Lat == nil || body.Lng == nil || body.Accuracy == nil {
		return badRequest(c, CodeValidation, "lat, lng y accuracy son requeridos")
	}
	if *body.Accuracy < 0 {
		return badRequest(c, CodeValidation, "accuracy no puede ser negativa")
	}
	out, err := h.uc.Submit(c.UserContext(), dto.SubmitAttendanceRequest{
		Address:  GetClientIP(c),
		Lat:      *body.Lat,
		Lng:      *body.Lng,
		Accuracy: *body.Accuracy,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListRecent godoc
// @Summary      Últimas marcaciones
// @Tags         attendance
// @Produce      json
// @Param        limit  query  int  false  "Límite (máx. 500)"  default(500)
// @Success      200    {object}  dto.AttendanceListResponse
// @Router       /api/attendance [get]
func (h *AttendanceHandler) ListRecent(c *fiber.Ctx) error {
	out, err := h.uc.ListRecent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListForEmployee godoc
// @Summary      Historial de marcaciones de un empleado
// @Tags         attendance
// @Produce      json
// @Param        id     path   int  true   "ID del empleado"
// @Param        limit  query  int  false  "Límite (máx. 500)"  default(50)
// @Success      200    {object}  dto.AttendanceListResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/attendance [get]
func (h *AttendanceHandler) ListForEmployee(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.ListForEmployee(c.UserContext(), id, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
