package services

import (
	"context"

	"employee_directory/models"
)

// EmployeeStore is the persistence contract the directory and calculator
// rely on. Get returns the employee with its direct reports populated.
type EmployeeStore interface {
	Insert(ctx context.Context, e *models.Employee) error
	Get(ctx context.Context, id string) (*models.Employee, error)
	Replace(ctx context.Context, id string, replacement *models.Employee) error
}

// CompensationStore resolves the embedded employee to the canonical stored
// record on Insert.
type CompensationStore interface {
	Insert(ctx context.Context, c *models.Compensation) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Compensation, error)
}
