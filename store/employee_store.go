package store

import (
	"context"
	"errors"
	"strings"

	"employee_directory/models"
	"employee_directory/types"

	"gorm.io/gorm"
)

// EmployeeStore persists employees and their reporting lines.
type EmployeeStore struct {
	db *gorm.DB
}

func NewEmployeeStore(db *gorm.DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// reportRow is one reporting line joined with the report's own row. The
// report columns are nil when the referenced employee no longer exists.
type reportRow struct {
	ReportID   string
	ResolvedID *string
	FirstName  *string
	LastName   *string
	Position   *string
	Department *string
}

// Insert stores e and one reporting line per direct report. Reports are
// referenced by id only; their rows are never created or updated here.
func (s *EmployeeStore) Insert(ctx context.Context, e *models.Employee) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertEmployee(tx, e)
	})
}

// Get returns the employee with its direct reports in their stored order.
func (s *EmployeeStore) Get(ctx context.Context, id string) (*models.Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, types.NotFound("employee.get", id)
	}

	db := s.db.WithContext(ctx)

	var e models.Employee
	if err := db.First(&e, "employee_id = ?", id).Error; err != nil {
		return nil, wrapErr("employee.get", id, err)
	}

	var rows []reportRow
	err := db.Table("reporting_lines AS rl").
		Select("rl.report_id, e.employee_id AS resolved_id, e.first_name, e.last_name, e.position, e.department").
		Joins("LEFT JOIN employees AS e ON e.employee_id = rl.report_id").
		Where("rl.manager_id = ?", id).
		Order("rl.ordinal ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapErr("employee.get_reports", id, err)
	}

	e.DirectReports = make([]*models.Employee, 0, len(rows))
	for _, r := range rows {
		report := &models.Employee{EmployeeID: r.ReportID}
		if r.ResolvedID != nil {
			report.FirstName = deref(r.FirstName)
			report.LastName = deref(r.LastName)
			report.Position = deref(r.Position)
			report.Department = deref(r.Department)
		}
		e.DirectReports = append(e.DirectReports, report)
	}
	return &e, nil
}

func (s *EmployeeStore) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Employee{}).Where("employee_id = ?", id).Count(&count).Error
	if err != nil {
		return false, wrapErr("employee.exists", id, err)
	}
	return count > 0, nil
}

// Delete removes the employee and the lines to its own reports. Lines from
// its managers are kept and stop resolving.
func (s *EmployeeStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteEmployee(tx, id)
	})
}

// Replace deletes the employee stored under id and, when replacement is not
// nil, inserts replacement under the same id. Both steps share one
// transaction.
func (s *EmployeeStore) Replace(ctx context.Context, id string, replacement *models.Employee) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteEmployee(tx, id); err != nil {
			return err
		}
		if replacement == nil {
			return nil
		}
		replacement.EmployeeID = id
		return insertEmployee(tx, replacement)
	})
}

func insertEmployee(tx *gorm.DB, e *models.Employee) error {
	if err := tx.Create(e).Error; err != nil {
		return wrapErr("employee.insert", e.EmployeeID, err)
	}

	var lines []models.ReportingLine
	for _, reportID := range e.ReportIDs() {
		if strings.TrimSpace(reportID) == "" {
			continue
		}
		lines = append(lines, models.ReportingLine{
			ManagerID: e.EmployeeID,
			Ordinal:   len(lines),
			ReportID:  reportID,
		})
	}
	if len(lines) == 0 {
		return nil
	}
	if err := tx.Create(&lines).Error; err != nil {
		return wrapErr("employee.insert_reports", e.EmployeeID, err)
	}
	return nil
}

func deleteEmployee(tx *gorm.DB, id string) error {
	res := tx.Where("employee_id = ?", id).Delete(&models.Employee{})
	if res.Error != nil {
		return wrapErr("employee.delete", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return types.NotFound("employee.delete", id)
	}
	if err := tx.Where("manager_id = ?", id).Delete(&models.ReportingLine{}).Error; err != nil {
		return wrapErr("employee.delete_reports", id, err)
	}
	return nil
}

func wrapErr(op, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NotFound(op, id)
	}
	var typed *types.Error
	if errors.As(err, &typed) {
		return err
	}
	return types.Persistence(op, id, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
