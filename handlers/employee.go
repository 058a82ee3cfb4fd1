package handlers

import (
	"employee_directory/models"
	"employee_directory/types"
	"employee_directory/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func CreateEmployee(c *fiber.Ctx) error {
	var employee models.Employee
	ok, err := parseBody(c, &employee)
	if err != nil {
		utils.Logger.Debug("Failed to parse employee", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, types.ErrInvalidInput)
	}
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Employee information must be provided.")
	}

	created, err := Directory.Create(c.UserContext(), &employee)
	if err != nil {
		return respondError(c, err, types.ErrEmployeeNotFound)
	}

	c.Location(routeBase(c, "") + "/" + created.EmployeeID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func GetEmployee(c *fiber.Ctx) error {
	employee, err := Directory.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, types.ErrEmployeeNotFound)
	}
	return c.JSON(employee)
}

// UpdateEmployee replaces the employee at :id with the request body. A null
// body removes the employee and answers with null.
func UpdateEmployee(c *fiber.Ctx) error {
	ctx := c.UserContext()

	original, err := Directory.GetByID(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err, types.ErrEmployeeNotFound)
	}

	var replacement *models.Employee
	var body models.Employee
	ok, err := parseBody(c, &body)
	if err != nil {
		utils.Logger.Debug("Failed to parse employee", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, types.ErrInvalidInput)
	}
	if ok {
		replacement = &body
	}

	updated, err := Directory.Replace(ctx, original, replacement)
	if err != nil {
		return respondError(c, err, types.ErrEmployeeNotFound)
	}
	if updated == nil {
		return c.JSON(nil)
	}
	return c.JSON(updated)
}

func GetReportingStructure(c *fiber.Ctx) error {
	structure, err := Directory.GetReportingStructure(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, types.ErrEmployeeNotFound)
	}
	return c.JSON(structure)
}
