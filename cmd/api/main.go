package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/memory"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/asistencia-api/internal/infrastructure/qrcode"
	httpRouter "github.com/jhoicas/asistencia-api/internal/interfaces/http"
	"github.com/jhoicas/asistencia-api/pkg/config"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// stores repositorios y runner de transacciones del driver elegido.
type stores struct {
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	events    repository.AttendanceRepository
	txRunner  usecase.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st := openStores(ctx, cfg, log)
	defer st.close()

	companyUC := usecase.NewCompanyUseCase(st.companies, st.employees)
	identityUC := usecase.NewIdentityUseCase(st.employees, st.companies)
	employeeUC := usecase.NewEmployeeUseCase(st.txRunner, st.companies, st.employees,
		usecase.NewSequentialCodeGenerator(), qrcode.NewEncoder())
	attendanceUC := usecase.NewAttendanceUseCase(st.txRunner, identityUC, st.companies, st.employees, st.events,
		usecase.AttendanceConfig{MaxAccuracyMeters: cfg.Attendance.MaxAccuracyMeters}, log.Zerolog())

	if cfg.Seed.Enabled() {
		company, created, err := companyUC.EnsureSeed(ctx, dto.CreateCompanyRequest{
			Name:         cfg.Seed.CompanyName,
			Code:         cfg.Seed.CompanyCode,
			Lat:          cfg.Seed.Lat,
			Lng:          cfg.Seed.Lng,
			RadiusMeters: cfg.Seed.RadiusMeters,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("empresa semilla")
		}
		log.Info().Int64("company_id", company.ID).Bool("created", created).Msg("empresa semilla lista")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSAllowOrigins}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Asistencia API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:      cfg.App.Name,
		CompanyUC:    companyUC,
		EmployeeUC:   employeeUC,
		IdentityUC:   identityUC,
		AttendanceUC: attendanceUC,
		Logger:       log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (con migraciones si DB_AUTO_MIGRATE) o el almacén en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return stores{
			companies: mem.Companies(),
			employees: mem.Employees(),
			events:    mem.Attendance(),
			txRunner:  mem,
			close:     func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	return stores{
		companies: postgres.NewCompanyRepository(pool),
		employees: postgres.NewEmployeeRepository(pool),
		events:    postgres.NewAttendanceRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		close:     pool.Close,
	}
}
