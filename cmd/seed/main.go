// seed crea la empresa inicial y, opcionalmente, empleados con su IP móvil vinculada.
//
// Uso: go run ./cmd/seed --company "Acme" --code ACME --lat 4.60971 --lng -74.08175 --radius 100 \
//
//	--employee "Ana Pérez|Operaciones|10.0.0.5" --employee "Luis Gómez|Bodega"
//
// Los valores por defecto salen de SEED_COMPANY_* y la conexión de DATABASE_URL/DB_*.
// Es idempotente para la empresa; cada --employee registra un empleado nuevo.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/qrcode"
	"github.com/jhoicas/asistencia-api/pkg/config"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	name := flags.String("company", cfg.Seed.CompanyName, "nombre de la empresa")
	code := flags.String("code", cfg.Seed.CompanyCode, "prefijo de códigos de empleado")
	lat := flags.Float64("lat", cfg.Seed.Lat, "latitud del centro de la geocerca")
	lng := flags.Float64("lng", cfg.Seed.Lng, "longitud del centro de la geocerca")
	radius := flags.Float64("radius", cfg.Seed.RadiusMeters, "radio de la geocerca en metros")
	employees := flags.StringArray("employee", nil, `empleado "Nombre|Departamento[|IP]" (repetible)`)
	_ = flags.Parse(os.Args[1:])

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	if strings.TrimSpace(*name) == "" {
		log.Fatal().Msg("--company o SEED_COMPANY_NAME es requerido")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("applied", applied).Msg("migraciones aplicadas")

	companyRepo := postgres.NewCompanyRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	companyUC := usecase.NewCompanyUseCase(companyRepo, employeeRepo)
	employeeUC := usecase.NewEmployeeUseCase(postgres.NewTxRunner(pool), companyRepo, employeeRepo,
		usecase.NewSequentialCodeGenerator(), qrcode.NewEncoder())
	identityUC := usecase.NewIdentityUseCase(employeeRepo, companyRepo)

	company, created, err := companyUC.EnsureSeed(ctx, dto.CreateCompanyRequest{
		Name:         *name,
		Code:         *code,
		Lat:          *lat,
		Lng:          *lng,
		RadiusMeters: *radius,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear empresa")
	}
	log.Info().Int64("company_id", company.ID).Str("code", company.Code).Bool("created", created).Msg("empresa lista")

	for _, raw := range *employees {
		parts := strings.Split(raw, "|")
		if len(parts) < 2 {
			log.Fatal().Str("employee", raw).Msg(`formato esperado "Nombre|Departamento[|IP]"`)
		}
		e, err := employeeUC.Create(ctx, company.ID, dto.CreateEmployeeRequest{Name: parts[0], Department: parts[1]})
		if err != nil {
			log.Fatal().Err(err).Str("employee", raw).Msg("crear empleado")
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			if _, err := identityUC.Bind(ctx, e.ID, parts[2]); err != nil {
				log.Fatal().Err(err).Str("employee", raw).Msg("vincular IP")
			}
		}
		log.Info().Int64("employee_id", e.ID).Str("employee_code", e.EmployeeCode).Msg("empleado creado")
	}
}
