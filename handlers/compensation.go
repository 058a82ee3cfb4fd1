package handlers

import (
	"employee_directory/models"
	"employee_directory/types"
	"employee_directory/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func CreateCompensation(c *fiber.Ctx) error {
	var compensation models.Compensation
	ok, err := parseBody(c, &compensation)
	if err != nil {
		utils.Logger.Debug("Failed to parse compensation", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, types.ErrInvalidInput)
	}
	if !ok || compensation.Employee == nil {
		return fail(c, fiber.StatusBadRequest, types.ErrCompensationRequired)
	}

	created, err := Directory.CreateCompensation(c.UserContext(), &compensation)
	if err != nil {
		return respondError(c, err, types.ErrEmployeeNotFound)
	}

	c.Location(routeBase(c, "/compensation") + "/" + created.Employee.EmployeeID + "/compensation")
	return c.Status(fiber.StatusCreated).JSON(created)
}

func GetCompensation(c *fiber.Ctx) error {
	compensation, err := Directory.GetCompensationByEmployeeID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, types.ErrCompensationNotFound)
	}
	return c.JSON(compensation)
}
