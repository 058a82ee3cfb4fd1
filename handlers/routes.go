package handlers

import (
	"employee_directory/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the employee endpoints on router.
func RegisterRoutes(router fiber.Router) {
	employee := router.Group("/employee")

	employee.Post("/", CreateEmployee)
	employee.Post("/compensation", CreateCompensation)
	employee.Get("/:id", GetEmployee)
	employee.Put("/:id", UpdateEmployee)
	employee.Get("/:id/reportingStructure", GetReportingStructure)
	employee.Get("/:id/compensation", GetCompensation)
}

// NewApp builds the fiber application with middleware installed and the
// routes mounted once under each prefix.
func NewApp(prefixes []string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "employee-directory",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	middleware.Setup(app)
	for _, prefix := range prefixes {
		RegisterRoutes(app.Group(prefix))
	}
	return app
}
