package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Salaries go over the wire as exact numeric literals, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Employee is a node in the reporting hierarchy. DirectReports is
// materialised from reporting_lines by the store; entries may carry only an
// EmployeeID when the referenced employee no longer exists.
type Employee struct {
	EmployeeID    string      `gorm:"column:employee_id;primaryKey" json:"employeeId"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Position      string      `json:"position"`
	Department    string      `json:"department"`
	DirectReports []*Employee `gorm:"-" json:"directReports"`
}

// ReportIDs returns the direct report identifiers in order.
func (e *Employee) ReportIDs() []string {
	if e == nil || len(e.DirectReports) == 0 {
		return nil
	}
	ids := make([]string, 0, len(e.DirectReports))
	for _, r := range e.DirectReports {
		if r == nil {
			continue
		}
		ids = append(ids, r.EmployeeID)
	}
	return ids
}

// ReportingLine links a manager to one direct report. Ordinal keeps the
// order in which reports were supplied.
type ReportingLine struct {
	ManagerID string `gorm:"primaryKey;column:manager_id"`
	Ordinal   int    `gorm:"primaryKey;autoIncrement:false"`
	ReportID  string `gorm:"column:report_id;not null;index"`
}

// Compensation ids are UUIDv7, so they sort in insertion order. Salary is a
// text column: sqlite would store a numeric column as REAL and round it.
type Compensation struct {
	CompensationID string          `gorm:"column:compensation_id;primaryKey" json:"compensationId"`
	EmployeeID     string          `gorm:"column:employee_id;not null;index" json:"-"`
	Employee       *Employee       `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee"`
	Salary         decimal.Decimal `gorm:"type:text;not null" json:"salary"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	CreatedAt      time.Time       `json:"-"`
}

// ReportingStructure is computed per request and never stored.
type ReportingStructure struct {
	Employee          *Employee `json:"employee"`
	NumberOfReports   int       `json:"numberOfReports"`
	UnresolvedReports []string  `json:"unresolvedReports,omitempty"`
}

// UnmarshalJSON accepts direct reports either as employee objects or as bare
// identifier strings.
func (e *Employee) UnmarshalJSON(data []byte) error {
	type plain Employee
	var raw struct {
		plain
		DirectReports []json.RawMessage `json:"directReports"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Employee(raw.plain)
	if raw.DirectReports == nil {
		e.DirectReports = nil
		return nil
	}

	e.DirectReports = make([]*Employee, 0, len(raw.DirectReports))
	for _, item := range raw.DirectReports {
		if string(item) == "null" {
			continue
		}
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			e.DirectReports = append(e.DirectReports, &Employee{EmployeeID: id})
			continue
		}
		var report Employee
		if err := json.Unmarshal(item, &report); err != nil {
			return err
		}
		e.DirectReports = append(e.DirectReports, &report)
	}
	return nil
}
