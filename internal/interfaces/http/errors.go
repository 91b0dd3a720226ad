package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
)

// Códigos de error estables en el cuerpo de respuesta.
const (
	CodeInvalidBody   = "INVALID_BODY"
	CodeValidation    = "VALIDATION"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeDuplicate     = "DUPLICATE"
	CodeInternal      = "INTERNAL"
	CodeUnknownDevice = "UNKNOWN_DEVICE"
	CodeLowAccuracy   = "LOW_ACCURACY"
	CodeOutOfRange    = "OUT_OF_RANGE"
)

// writeError traduce un error de dominio a status HTTP y cuerpo JSON.
func writeError(c *fiber.Ctx, err error) error {
	var (
		unknownErr *domain.UnknownDeviceError
		lowErr     *domain.LowAccuracyError
		rangeErr   *domain.OutOfRangeError
		valErr     *domain.ValidationError
	)
	switch {
	case errors.As(err, &unknownErr):
		return c.Status(fiber.StatusForbidden).JSON(dto.RejectionResponse{
			Code:     CodeUnknownDevice,
			Message:  err.Error(),
			ClientIP: unknownErr.Address,
		})
	case errors.As(err, &lowErr):
		return c.Status(fiber.StatusForbidden).JSON(dto.RejectionResponse{
			Code:        CodeLowAccuracy,
			Message:     err.Error(),
			Accuracy:    &lowErr.Accuracy,
			MaxAccuracy: &lowErr.MaxAccuracy,
		})
	case errors.As(err, &rangeErr):
		return c.Status(fiber.StatusForbidden).JSON(dto.RejectionResponse{
			Code:     CodeOutOfRange,
			Message:  err.Error(),
			Distance: &rangeErr.Distance,
			Required: &rangeErr.Radius,
		})
	case errors.As(err, &valErr):
		return badRequest(c, CodeValidation, valErr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return badRequest(c, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeConflict, Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeDuplicate, Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: err.Error()})
	}
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return badRequest(c, CodeValidation, "id inválido")
}
