package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"employee_directory/models"
	"employee_directory/types"
	"employee_directory/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EmployeeResolver looks up a single employee with its direct reports.
type EmployeeResolver interface {
	Get(ctx context.Context, id string) (*models.Employee, error)
}

// ReportCount is the result of one traversal. Unresolved lists direct report
// ids that no longer resolve to an employee; each still counts for its own
// slot but contributes nothing beneath it.
type ReportCount struct {
	Total      int
	Unresolved []string
}

// ReportingStructureCalculator counts every employee beneath a root. Each
// report below the root costs one store lookup. With more than one worker,
// sibling subtrees are resolved concurrently.
type ReportingStructureCalculator struct {
	employees EmployeeResolver
	workers   int
}

func NewReportingStructureCalculator(employees EmployeeResolver, workers int) *ReportingStructureCalculator {
	if workers < 1 {
		workers = 1
	}
	return &ReportingStructureCalculator{employees: employees, workers: workers}
}

// ComputeReportCount returns the transitive number of reports of root, not
// counting root itself. It fails with a cycle_detected error if an employee
// appears among its own reports at any depth.
func (c *ReportingStructureCalculator) ComputeReportCount(ctx context.Context, root *models.Employee) (ReportCount, error) {
	if root == nil {
		return ReportCount{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t := &traversal{
		ctx:       ctx,
		employees: c.employees,
		rootID:    root.EmployeeID,
	}
	if c.workers > 1 {
		t.group, t.ctx = errgroup.WithContext(ctx)
		// The calling goroutine is the remaining worker.
		t.group.SetLimit(c.workers - 1)
	}

	err := t.visit(root, (*ancestry)(nil).push(root.EmployeeID))
	if t.group != nil {
		if err != nil {
			cancel()
		}
		// A worker's failure cancels the inline walk, so prefer the worker's
		// error over the resulting context.Canceled.
		if werr := t.group.Wait(); err == nil || (werr != nil && errors.Is(err, context.Canceled)) {
			err = werr
		}
	}
	if err != nil {
		return ReportCount{}, err
	}

	sort.Strings(t.unresolved)
	return ReportCount{Total: int(t.total.Load()), Unresolved: t.unresolved}, nil
}

// ancestry is the chain of ids from the root down to the node being
// visited. Branches share their common prefix.
type ancestry struct {
	id     string
	parent *ancestry
}

func (a *ancestry) push(id string) *ancestry {
	return &ancestry{id: id, parent: a}
}

func (a *ancestry) contains(id string) bool {
	for n := a; n != nil; n = n.parent {
		if n.id == id {
			return true
		}
	}
	return false
}

type traversal struct {
	ctx       context.Context
	employees EmployeeResolver
	rootID    string
	group     *errgroup.Group // nil when sequential

	total      atomic.Int64
	mu         sync.Mutex
	unresolved []string
}

func (t *traversal) visit(e *models.Employee, path *ancestry) error {
	ids := e.ReportIDs()
	t.total.Add(int64(len(ids)))

	for _, id := range ids {
		if path.contains(id) {
			utils.Logger.Error("Reporting cycle detected",
				zap.String("root_id", t.rootID),
				zap.String("employee_id", e.EmployeeID),
				zap.String("report_id", id))
			return types.CycleDetected("reporting.count", id)
		}

		id, next := id, path.push(id)
		if t.group != nil && t.group.TryGo(func() error { return t.descend(id, next) }) {
			continue
		}
		if err := t.descend(id, next); err != nil {
			return err
		}
	}
	return nil
}

func (t *traversal) descend(id string, path *ancestry) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}

	report, err := t.employees.Get(t.ctx, id)
	if err != nil {
		if types.IsKind(err, types.KindNotFound) {
			t.markUnresolved(id)
			return nil
		}
		return err
	}
	return t.visit(report, path)
}

func (t *traversal) markUnresolved(id string) {
	utils.Logger.Warn("Direct report does not resolve to an employee",
		zap.String("root_id", t.rootID),
		zap.String("report_id", id))

	t.mu.Lock()
	t.unresolved = append(t.unresolved, id)
	t.mu.Unlock()
}
