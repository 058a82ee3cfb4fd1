package services

import (
	"context"
	"strings"

	"employee_directory/models"
	"employee_directory/types"
	"employee_directory/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeDirectory orchestrates employee and compensation operations over
// the stores and computes reporting structures on demand.
type EmployeeDirectory struct {
	employees     EmployeeStore
	compensations CompensationStore
	calculator    *ReportingStructureCalculator
}

func NewEmployeeDirectory(employees EmployeeStore, compensations CompensationStore, calculator *ReportingStructureCalculator) *EmployeeDirectory {
	return &EmployeeDirectory{
		employees:     employees,
		compensations: compensations,
		calculator:    calculator,
	}
}

// Create stores e under a newly generated id. Any id supplied by the caller
// is discarded.
func (d *EmployeeDirectory) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if e == nil {
		return nil, types.Validation("employee.create", "employee must be provided")
	}

	e.EmployeeID = uuid.New().String()
	if err := d.employees.Insert(ctx, e); err != nil {
		return nil, err
	}

	utils.Logger.Debug("Employee created",
		zap.String("employee_id", e.EmployeeID),
		zap.Int("direct_reports", len(e.ReportIDs())))
	return d.employees.Get(ctx, e.EmployeeID)
}

// GetByID returns a not_found error for a blank or unknown id.
func (d *EmployeeDirectory) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, types.NotFound("employee.get", id)
	}
	return d.employees.Get(ctx, id)
}

// Replace swaps the stored record of original for replacement, keeping
// original's id. A nil replacement removes the employee and returns nil.
func (d *EmployeeDirectory) Replace(ctx context.Context, original, replacement *models.Employee) (*models.Employee, error) {
	if original == nil {
		return nil, types.Validation("employee.replace", "original employee must be provided")
	}

	if err := d.employees.Replace(ctx, original.EmployeeID, replacement); err != nil {
		return nil, err
	}
	if replacement == nil {
		utils.Logger.Info("Employee removed by replace", zap.String("employee_id", original.EmployeeID))
		return nil, nil
	}
	return d.employees.Get(ctx, original.EmployeeID)
}

func (d *EmployeeDirectory) GetReportingStructure(ctx context.Context, id string) (*models.ReportingStructure, error) {
	employee, err := d.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := d.calculator.ComputeReportCount(ctx, employee)
	if err != nil {
		return nil, err
	}

	return &models.ReportingStructure{
		Employee:          employee,
		NumberOfReports:   count.Total,
		UnresolvedReports: count.Unresolved,
	}, nil
}
