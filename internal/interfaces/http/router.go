package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/asistencia-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName      string
	CompanyUC    *usecase.CompanyUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	IdentityUC   *usecase.IdentityUseCase
	AttendanceUC *usecase.AttendanceUseCase
	Logger       zerolog.Logger
}

// Router registra los middlewares por petición y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID(), ClientIPMiddleware(), RequestLogger(deps.Logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC)
	attendance := api.Group("/attendance")
	attendance.Post("/", attendanceHandler.Submit)
	attendance.Get("/", attendanceHandler.ListRecent)

	// detect va antes de /:id
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.IdentityUC)
	employees := api.Group("/employees")
	employees.Get("/detect", employeeHandler.Detect)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Delete("/:id", employeeHandler.Delete)
	employees.Get("/:id/attendance", attendanceHandler.ListForEmployee)
	employees.Get("/:id/qr", employeeHandler.QRCode)
	employees.Post("/:id/ip", employeeHandler.BindIP)
	employees.Delete("/:id/ip", employeeHandler.UnbindIP)

	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.EmployeeUC)
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id/settings", companyHandler.GetSettings)
	companies.Put("/:id/settings", companyHandler.UpdateSettings)
	companies.Get("/:id/employees", companyHandler.ListEmployees)
	companies.Post("/:id/employees", companyHandler.CreateEmployee)
	companies.Get("/:id/next-code", companyHandler.NextCode)
}
