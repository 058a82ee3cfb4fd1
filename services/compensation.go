package services

import (
	"context"
	"strings"

	"employee_directory/models"
	"employee_directory/types"
	"employee_directory/utils"

	"go.uber.org/zap"
)

// CreateCompensation persists c against the canonical stored employee that
// shares c.Employee's id. The caller's embedded employee data is never
// written; an unknown employee id is rejected.
func (d *EmployeeDirectory) CreateCompensation(ctx context.Context, c *models.Compensation) (*models.Compensation, error) {
	if c == nil || c.Employee == nil {
		return nil, types.Validation("compensation.create", types.ErrCompensationRequired)
	}
	if strings.TrimSpace(c.Employee.EmployeeID) == "" {
		return nil, types.Validation("compensation.create", "employee id must be provided")
	}

	if err := d.compensations.Insert(ctx, c); err != nil {
		if types.IsKind(err, types.KindNotFound) {
			return nil, types.Validation("compensation.create", "unknown employee "+c.Employee.EmployeeID)
		}
		return nil, err
	}

	utils.Logger.Debug("Compensation created",
		zap.String("compensation_id", c.CompensationID),
		zap.String("employee_id", c.EmployeeID))
	return c, nil
}

// GetCompensationByEmployeeID returns not_found when the employee has no
// compensation on record.
func (d *EmployeeDirectory) GetCompensationByEmployeeID(ctx context.Context, employeeID string) (*models.Compensation, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, types.NotFound("compensation.get", employeeID)
	}
	return d.compensations.GetByEmployeeID(ctx, employeeID)
}
