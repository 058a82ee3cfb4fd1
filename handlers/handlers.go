package handlers

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"employee_directory/models"
	"employee_directory/types"
	"employee_directory/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EmployeeService is the directory surface the HTTP layer depends on.
type EmployeeService interface {
	Create(ctx context.Context, e *models.Employee) (*models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	Replace(ctx context.Context, original, replacement *models.Employee) (*models.Employee, error)
	GetReportingStructure(ctx context.Context, id string) (*models.ReportingStructure, error)
	CreateCompensation(ctx context.Context, c *models.Compensation) (*models.Compensation, error)
	GetCompensationByEmployeeID(ctx context.Context, employeeID string) (*models.Compensation, error)
}

var Directory EmployeeService

func InitHandlers(directory EmployeeService) {
	Directory = directory
}

// parseBody decodes a JSON request body into v. It reports false without
// error when the body is empty or the JSON literal null.
func parseBody(c *fiber.Ctx, v interface{}) (bool, error) {
	raw := bytes.TrimSpace(c.Body())
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}
	if err := c.App().Config().JSONDecoder(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// routeBase returns the matched route path, including the prefix it was
// mounted under, without a trailing slash or the given suffix.
func routeBase(c *fiber.Ctx, suffix string) string {
	return strings.TrimSuffix(strings.TrimSuffix(c.Route().Path, "/"), suffix)
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(types.APIResponse{
		Success: false,
		Error:   msg,
	})
}

// respondError maps a directory error onto the HTTP status for its kind.
// notFoundMsg is the message used for a not_found error.
func respondError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case types.IsKind(err, types.KindNotFound):
		utils.Logger.Debug(notFoundMsg, zap.String("path", c.Path()), zap.Error(err))
		return fail(c, fiber.StatusNotFound, notFoundMsg)

	case types.IsKind(err, types.KindValidation):
		utils.Logger.Debug("Rejected request", zap.String("path", c.Path()), zap.Error(err))
		return fail(c, fiber.StatusBadRequest, validationMessage(err))

	case types.IsKind(err, types.KindCycleDetected):
		utils.Logger.Warn("Reporting structure unavailable", zap.String("path", c.Path()), zap.Error(err))
		return fail(c, fiber.StatusConflict, types.ErrReportingCycle)

	case types.IsKind(err, types.KindPersistence):
		utils.Logger.Error("Store operation failed", zap.String("path", c.Path()), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, types.ErrDatabaseError)
	}

	utils.Logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return fail(c, fiber.StatusInternalServerError, types.ErrInternalError)
}

func validationMessage(err error) string {
	var e *types.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return types.ErrInvalidInput
}

// ErrorHandler renders errors that escape a handler, including fiber's own
// routing errors and recovered panics, in the same envelope as handler
// errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, fe.Message)
	}
	return respondError(c, err, types.ErrEmployeeNotFound)
}
