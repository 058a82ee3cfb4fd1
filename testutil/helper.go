// Package testutil holds the database and fixture helpers shared by the
// package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"employee_directory/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Beatles hierarchy ids, matching resources/employee_seed.yaml.
const (
	LennonID    = "16a596ae-edd3-4847-99fe-c4518e82c86f"
	McCartneyID = "b7839309-3348-463b-a7e3-5de1c168beb3"
	StarrID     = "03aa1462-ffa9-4978-901b-7c001562cf6f"
	BestID      = "62c1084e-6e34-4630-93fd-9153afb65309"
	HarrisonID  = "c0c2293d-16bd-4603-8e08-638a9d18b22c"
)

const beatlesSeed = `
employees:
  - employeeId: ` + LennonID + `
    firstName: John
    lastName: Lennon
    position: Development Manager
    department: Engineering
    directReports:
      - employeeId: ` + McCartneyID + `
        firstName: Paul
        lastName: McCartney
        position: Developer I
        department: Engineering
      - employeeId: ` + StarrID + `
        firstName: Ringo
        lastName: Starr
        position: Developer V
        department: Engineering
        directReports:
          - employeeId: ` + BestID + `
            firstName: Pete
            lastName: Best
            position: Developer II
            department: Engineering
          - employeeId: ` + HarrisonID + `
            firstName: George
            lastName: Harrison
            position: Developer III
            department: Engineering
`

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and avoids sqlite
	// table locks between concurrent readers and writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, store.Migrate(db))
	return db
}

// SeedBeatles loads the Lennon hierarchy used throughout the tests.
func SeedBeatles(t *testing.T, db *gorm.DB) {
	t.Helper()

	sf, err := store.DecodeSeed(strings.NewReader(beatlesSeed))
	require.NoError(t, err)

	res, err := store.NewSeeder(store.NewEmployeeStore(db)).Seed(context.Background(), sf)
	require.NoError(t, err)
	require.Equal(t, 5, res.Inserted)
}
