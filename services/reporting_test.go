package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"employee_directory/models"
	"employee_directory/store"
	"employee_directory/testutil"
	"employee_directory/types"
	"employee_directory/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// mapResolver serves employees from memory. Reports listed in the map values
// are ids; missing keys resolve to not_found.
type mapResolver struct {
	reports map[string][]string
	fail    map[string]error
	calls   atomic.Int64
}

func (m *mapResolver) Get(_ context.Context, id string) (*models.Employee, error) {
	m.calls.Add(1)
	if err, ok := m.fail[id]; ok {
		return nil, err
	}
	ids, ok := m.reports[id]
	if !ok {
		return nil, types.NotFound("employee.get", id)
	}
	return employeeWithReports(id, ids...), nil
}

func employeeWithReports(id string, reports ...string) *models.Employee {
	e := &models.Employee{EmployeeID: id}
	for _, r := range reports {
		e.DirectReports = append(e.DirectReports, &models.Employee{EmployeeID: r})
	}
	return e
}

func workerCounts() []int { return []int{1, 4} }

func TestComputeReportCountLeaf(t *testing.T) {
	for _, workers := range workerCounts() {
		calc := NewReportingStructureCalculator(&mapResolver{}, workers)

		got, err := calc.ComputeReportCount(context.Background(), &models.Employee{EmployeeID: "solo"})
		require.NoError(t, err)
		assert.Equal(t, 0, got.Total)

		got, err = calc.ComputeReportCount(context.Background(), employeeWithReports("empty"))
		require.NoError(t, err)
		assert.Equal(t, 0, got.Total)
	}
}

func TestComputeReportCountNilRoot(t *testing.T) {
	got, err := NewReportingStructureCalculator(&mapResolver{}, 1).ComputeReportCount(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, got.Total)
}

func TestComputeReportCountFlat(t *testing.T) {
	resolver := &mapResolver{reports: map[string][]string{}}
	var ids []string
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("r%d", i)
		ids = append(ids, id)
		resolver.reports[id] = nil
	}

	for _, workers := range workerCounts() {
		calc := NewReportingStructureCalculator(resolver, workers)
		got, err := calc.ComputeReportCount(context.Background(), employeeWithReports("boss", ids...))
		require.NoError(t, err)
		assert.Equal(t, 7, got.Total, "workers=%d", workers)
		assert.Empty(t, got.Unresolved)
	}
}

func TestComputeReportCountBeatles(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedBeatles(t, db)
	employees := store.NewEmployeeStore(db)

	cases := map[string]int{
		testutil.LennonID:    4,
		testutil.McCartneyID: 0,
		testutil.StarrID:     2,
		testutil.BestID:      0,
		testutil.HarrisonID:  0,
	}
	for _, workers := range workerCounts() {
		calc := NewReportingStructureCalculator(employees, workers)
		for id, want := range cases {
			root, err := employees.Get(context.Background(), id)
			require.NoError(t, err)

			got, err := calc.ComputeReportCount(context.Background(), root)
			require.NoError(t, err)
			assert.Equal(t, want, got.Total, "id=%s workers=%d", id, workers)
		}
	}
}

func TestComputeReportCountWideDeepTree(t *testing.T) {
	// Three levels of fan-out five: 5 + 25 + 125 reports.
	resolver := &mapResolver{reports: map[string][]string{}}
	var build func(id string, depth int)
	build = func(id string, depth int) {
		if depth == 0 {
			resolver.reports[id] = nil
			return
		}
		var children []string
		for i := 0; i < 5; i++ {
			child := fmt.Sprintf("%s.%d", id, i)
			children = append(children, child)
			build(child, depth-1)
		}
		resolver.reports[id] = children
	}
	build("root", 3)

	for _, workers := range []int{1, 2, 8} {
		resolver.calls.Store(0)
		root, err := resolver.Get(context.Background(), "root")
		require.NoError(t, err)

		got, err := NewReportingStructureCalculator(resolver, workers).ComputeReportCount(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, 155, got.Total, "workers=%d", workers)
		assert.EqualValues(t, 156, resolver.calls.Load(), "one lookup per report plus the root")
	}
}

func TestComputeReportCountUnresolvedIsSoftFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer utils.SetLogger(zap.New(core))()

	resolver := &mapResolver{reports: map[string][]string{
		"a": {"gone-2"},
	}}
	root := employeeWithReports("root", "a", "gone-1")

	for _, workers := range workerCounts() {
		got, err := NewReportingStructureCalculator(resolver, workers).ComputeReportCount(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Total, "dangling ids still count for their own slot")
		assert.Equal(t, []string{"gone-1", "gone-2"}, got.Unresolved)
	}

	warnings := logs.FilterMessage("Direct report does not resolve to an employee").All()
	require.Len(t, warnings, 4)
	assert.Equal(t, "root", warnings[0].ContextMap()["root_id"])
}

func TestComputeReportCountDetectsCycles(t *testing.T) {
	tests := []struct {
		name    string
		reports map[string][]string
		root    *models.Employee
	}{
		{
			name: "self report",
			root: employeeWithReports("x", "x"),
		},
		{
			name:    "two node loop",
			reports: map[string][]string{"b": {"a"}},
			root:    employeeWithReports("a", "b"),
		},
		{
			name: "deep loop below root",
			reports: map[string][]string{
				"b": {"c"},
				"c": {"d"},
				"d": {"b"},
			},
			root: employeeWithReports("a", "b"),
		},
	}

	for _, tc := range tests {
		for _, workers := range workerCounts() {
			t.Run(fmt.Sprintf("%s/workers=%d", tc.name, workers), func(t *testing.T) {
				calc := NewReportingStructureCalculator(&mapResolver{reports: tc.reports}, workers)
				_, err := calc.ComputeReportCount(context.Background(), tc.root)
				assert.True(t, errors.Is(err, types.ErrCycleDetected), "got %v", err)
			})
		}
	}
}

func TestComputeReportCountSharedReportIsNotACycle(t *testing.T) {
	// d reports to both b and c; it is counted once under each.
	resolver := &mapResolver{reports: map[string][]string{
		"b": {"d"},
		"c": {"d"},
		"d": nil,
	}}
	for _, workers := range workerCounts() {
		got, err := NewReportingStructureCalculator(resolver, workers).
			ComputeReportCount(context.Background(), employeeWithReports("a", "b", "c"))
		require.NoError(t, err)
		assert.Equal(t, 4, got.Total)
	}
}

func TestComputeReportCountStoreFailureAborts(t *testing.T) {
	boom := types.Persistence("employee.get", "b", errors.New("connection reset"))
	resolver := &mapResolver{
		reports: map[string][]string{"a": nil},
		fail:    map[string]error{"b": boom},
	}

	for _, workers := range workerCounts() {
		_, err := NewReportingStructureCalculator(resolver, workers).
			ComputeReportCount(context.Background(), employeeWithReports("root", "a", "b"))
		assert.True(t, types.IsKind(err, types.KindPersistence), "workers=%d got %v", workers, err)
	}
}

func TestComputeReportCountHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := &mapResolver{reports: map[string][]string{"a": nil}}
	_, err := NewReportingStructureCalculator(resolver, 1).ComputeReportCount(ctx, employeeWithReports("root", "a"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, resolver.calls.Load())
}
