package repository

import (
	"context"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Las lecturas devuelven (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	GetByCode(ctx context.Context, code string) (*entity.Company, error)
	// GetForUpdate obtiene la empresa y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}
