package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"employee_directory/models"

	"gopkg.in/yaml.v3"
)

// SeedFile is the on-disk fixture format: a forest of employees with their
// reports nested underneath.
type SeedFile struct {
	Employees []SeedEmployee `yaml:"employees"`
}

type SeedEmployee struct {
	EmployeeID    string         `yaml:"employeeId"`
	FirstName     string         `yaml:"firstName"`
	LastName      string         `yaml:"lastName"`
	Position      string         `yaml:"position"`
	Department    string         `yaml:"department"`
	DirectReports []SeedEmployee `yaml:"directReports"`
}

type SeedResult struct {
	Inserted int
	Skipped  int
}

// Seeder loads fixtures through the EmployeeStore, keeping the ids from the
// file. Employees that already exist are left untouched.
type Seeder struct {
	employees *EmployeeStore
}

func NewSeeder(employees *EmployeeStore) *Seeder {
	return &Seeder{employees: employees}
}

func LoadSeedFile(path string) (*SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return DecodeSeed(f)
}

func DecodeSeed(r io.Reader) (*SeedFile, error) {
	var sf SeedFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &sf, nil
}

// Seed inserts every employee in the file, reports before their managers.
func (s *Seeder) Seed(ctx context.Context, sf *SeedFile) (SeedResult, error) {
	var res SeedResult
	for i := range sf.Employees {
		if err := s.seedOne(ctx, &sf.Employees[i], &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Seeder) seedOne(ctx context.Context, se *SeedEmployee, res *SeedResult) error {
	if se.EmployeeID == "" {
		return fmt.Errorf("seed employee %s %s has no employeeId", se.FirstName, se.LastName)
	}

	e := &models.Employee{
		EmployeeID: se.EmployeeID,
		FirstName:  se.FirstName,
		LastName:   se.LastName,
		Position:   se.Position,
		Department: se.Department,
	}
	for i := range se.DirectReports {
		child := &se.DirectReports[i]
		if err := s.seedOne(ctx, child, res); err != nil {
			return err
		}
		e.DirectReports = append(e.DirectReports, &models.Employee{EmployeeID: child.EmployeeID})
	}

	exists, err := s.employees.Exists(ctx, e.EmployeeID)
	if err != nil {
		return err
	}
	if exists {
		res.Skipped++
		return nil
	}
	if err := s.employees.Insert(ctx, e); err != nil {
		return fmt.Errorf("failed to seed employee %s: %w", e.EmployeeID, err)
	}
	res.Inserted++
	return nil
}
