package store_test

import (
	"context"
	"errors"
	"testing"

	"employee_directory/models"
	"employee_directory/store"
	"employee_directory/testutil"
	"employee_directory/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeStoreGetResolvesReportsInOrder(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedBeatles(t, db)
	employees := store.NewEmployeeStore(db)

	lennon, err := employees.Get(context.Background(), testutil.LennonID)
	require.NoError(t, err)

	assert.Equal(t, "John", lennon.FirstName)
	assert.Equal(t, "Lennon", lennon.LastName)
	require.Len(t, lennon.DirectReports, 2)
	assert.Equal(t, testutil.McCartneyID, lennon.DirectReports[0].EmployeeID)
	assert.Equal(t, "McCartney", lennon.DirectReports[0].LastName)
	assert.Equal(t, testutil.StarrID, lennon.DirectReports[1].EmployeeID)
	assert.Equal(t, "Developer V", lennon.DirectReports[1].Position)

	paul, err := employees.Get(context.Background(), testutil.McCartneyID)
	require.NoError(t, err)
	assert.Empty(t, paul.DirectReports)
}

func TestEmployeeStoreGetMissing(t *testing.T) {
	employees := store.NewEmployeeStore(testutil.NewDB(t))

	for _, id := range []string{"", "   ", "does-not-exist"} {
		_, err := employees.Get(context.Background(), id)
		assert.True(t, errors.Is(err, types.ErrNotFound), "id %q", id)
	}
}

func TestEmployeeStoreDeleteLeavesDanglingLine(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedBeatles(t, db)
	employees := store.NewEmployeeStore(db)
	ctx := context.Background()

	require.NoError(t, employees.Delete(ctx, testutil.StarrID))

	_, err := employees.Get(ctx, testutil.StarrID)
	assert.True(t, types.IsKind(err, types.KindNotFound))

	lennon, err := employees.Get(ctx, testutil.LennonID)
	require.NoError(t, err)
	require.Len(t, lennon.DirectReports, 2)
	dangling := lennon.DirectReports[1]
	assert.Equal(t, testutil.StarrID, dangling.EmployeeID)
	assert.Empty(t, dangling.FirstName)

	var lines int64
	require.NoError(t, db.Model(&models.ReportingLine{}).Where("manager_id = ?", testutil.StarrID).Count(&lines).Error)
	assert.Zero(t, lines)

	err = employees.Delete(ctx, testutil.StarrID)
	assert.True(t, types.IsKind(err, types.KindNotFound))
}

func TestEmployeeStoreReplaceKeepsID(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedBeatles(t, db)
	employees := store.NewEmployeeStore(db)
	ctx := context.Background()

	replacement := &models.Employee{
		EmployeeID: "caller-chosen",
		FirstName:  "Richard",
		LastName:   "Starkey",
		Position:   "Drummer",
		Department: "Music",
		DirectReports: []*models.Employee{
			{EmployeeID: testutil.HarrisonID},
		},
	}
	require.NoError(t, employees.Replace(ctx, testutil.StarrID, replacement))
	assert.Equal(t, testutil.StarrID, replacement.EmployeeID)

	got, err := employees.Get(ctx, testutil.StarrID)
	require.NoError(t, err)
	assert.Equal(t, "Starkey", got.LastName)
	assert.Equal(t, []string{testutil.HarrisonID}, got.ReportIDs())

	exists, err := employees.Exists(ctx, "caller-chosen")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEmployeeStoreReplaceWithNilDeletes(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedBeatles(t, db)
	employees := store.NewEmployeeStore(db)
	ctx := context.Background()

	require.NoError(t, employees.Replace(ctx, testutil.BestID, nil))

	exists, err := employees.Exists(ctx, testutil.BestID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEmployeeStoreReplaceRollsBackOnMissing(t *testing.T) {
	employees := store.NewEmployeeStore(testutil.NewDB(t))
	ctx := context.Background()

	err := employees.Replace(ctx, "ghost", &models.Employee{FirstName: "Nobody"})
	assert.True(t, types.IsKind(err, types.KindNotFound))

	exists, err := employees.Exists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEmployeeStoreInsertSkipsBlankReportIDs(t *testing.T) {
	employees := store.NewEmployeeStore(testutil.NewDB(t))
	ctx := context.Background()

	e := &models.Employee{
		EmployeeID: "m1",
		FirstName:  "Brian",
		DirectReports: []*models.Employee{
			{EmployeeID: ""},
			nil,
			{EmployeeID: "r1"},
		},
	}
	require.NoError(t, employees.Insert(ctx, e))

	got, err := employees.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, got.ReportIDs())
}

func TestEmployeeStoreInsertDuplicateIsPersistenceFault(t *testing.T) {
	employees := store.NewEmployeeStore(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, employees.Insert(ctx, &models.Employee{EmployeeID: "dup"}))
	err := employees.Insert(ctx, &models.Employee{EmployeeID: "dup"})
	assert.True(t, types.IsKind(err, types.KindPersistence))
}
