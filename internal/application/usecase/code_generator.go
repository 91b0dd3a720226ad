package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

// CodeGenerator deriva el próximo código de empleado de una empresa.
// Recibe los repositorios del caller para poder ejecutarse dentro de su transacción.
type CodeGenerator interface {
	NextCode(ctx context.Context, companies repository.CompanyRepository, employees repository.EmployeeRepository, companyID int64) (string, error)
}

var trailingDigits = regexp.MustCompile(`\d+$`)

// SequentialCodeGenerator toma el código del empleado con el ID más alto de la empresa,
// extrae sus dígitos finales y suma uno: {prefijo}-EMP-{000001}.
//
// El "último" empleado es el de mayor ID, no el de mayor secuencia: si un código se edita
// por fuera o se borra el último empleado, un número puede repetirse. El índice único
// sobre employee_code convierte esa colisión en domain.ErrConflict.
type SequentialCodeGenerator struct{}

// NewSequentialCodeGenerator construye el generador compatible con los códigos existentes.
func NewSequentialCodeGenerator() *SequentialCodeGenerator {
	return &SequentialCodeGenerator{}
}

// NextCode devuelve domain.ErrNotFound si la empresa no existe.
func (g *SequentialCodeGenerator) NextCode(ctx context.Context, companies repository.CompanyRepository, employees repository.EmployeeRepository, companyID int64) (string, error) {
	company, err := companies.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", domain.ErrNotFound
	}

	last, err := employees.LastByCompany(ctx, companyID)
	if err != nil {
		return "", err
	}
	next := int64(1)
	if last != nil {
		next = sequenceOf(last.EmployeeCode) + 1
	}
	return FormatEmployeeCode(company.CodePrefix(), next), nil
}

// FormatEmployeeCode arma el código con la secuencia rellenada a 6 dígitos.
func FormatEmployeeCode(prefix string, seq int64) string {
	return fmt.Sprintf("%s-EMP-%06d", prefix, seq)
}

// sequenceOf devuelve los dígitos finales del código como número, o 0 si no hay.
func sequenceOf(code string) int64 {
	m := trailingDigits.FindString(code)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
