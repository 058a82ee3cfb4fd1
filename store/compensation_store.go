package store

import (
	"context"

	"employee_directory/models"
	"employee_directory/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompensationStore persists compensation records. Employees referenced by a
// compensation are always read through the EmployeeStore.
type CompensationStore struct {
	db        *gorm.DB
	employees *EmployeeStore
}

func NewCompensationStore(db *gorm.DB, employees *EmployeeStore) *CompensationStore {
	return &CompensationStore{db: db, employees: employees}
}

// Insert re-points c.Employee at the canonical stored employee, assigns a new
// compensation id and persists the record. The employees table is never
// written. Returns not_found if the referenced employee does not exist.
func (s *CompensationStore) Insert(ctx context.Context, c *models.Compensation) error {
	if c == nil || c.Employee == nil {
		return types.Validation("compensation.insert", types.ErrCompensationRequired)
	}

	canonical, err := s.employees.Get(ctx, c.Employee.EmployeeID)
	if err != nil {
		return err
	}

	c.Employee = canonical
	c.EmployeeID = canonical.EmployeeID
	id, err := uuid.NewV7()
	if err != nil {
		return types.Persistence("compensation.insert", canonical.EmployeeID, err)
	}
	c.CompensationID = id.String()

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return wrapErr("compensation.insert", canonical.EmployeeID, err)
	}
	return nil
}

// GetByEmployeeID returns the most recently stored compensation for the
// employee. Equal timestamps fall back to the later compensation id.
func (s *CompensationStore) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Compensation, error) {
	var c models.Compensation
	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Order("compensation_id DESC").
		First(&c).Error
	if err != nil {
		return nil, wrapErr("compensation.get", employeeID, err)
	}

	employee, err := s.employees.Get(ctx, employeeID)
	switch {
	case err == nil:
		c.Employee = employee
	case types.IsKind(err, types.KindNotFound):
		// The employee was removed after the compensation was recorded.
		c.Employee = &models.Employee{EmployeeID: employeeID}
	default:
		return nil, err
	}
	return &c, nil
}
