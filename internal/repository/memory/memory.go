// internal/repository/memory/memory.go
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
)

// Store is an in-memory implementation of every repository interface. It
// backs the engine tests with fixtures and gives aggregation passes a
// point-in-time snapshot: every read copies under the read lock, so a
// concurrent write never becomes visible mid-aggregation.
type Store struct {
	mu sync.RWMutex

	nextID        int64
	staff         []domain.Staff
	branches      []domain.Branch
	metrics       []domain.ProductMetric
	targets       []domain.Target
	branchTargets []domain.BranchTarget
	rows          []domain.AchievementRow
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func copyStaff(in domain.Staff) domain.Staff {
	out := in
	out.ManagedZones = append([]string(nil), in.ManagedZones...)
	out.ManagedBranches = append([]string(nil), in.ManagedBranches...)
	return out
}

func copyRow(in domain.AchievementRow) domain.AchievementRow {
	out := in
	out.Values = make(map[string]float64, len(in.Values))
	for k, v := range in.Values {
		out.Values[k] = v
	}
	return out
}

func (s *Store) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Staff, 0, len(s.staff))
	for _, st := range s.staff {
		out = append(out, copyStaff(st))
	}
	return out, nil
}

func (s *Store) GetStaffByCode(ctx context.Context, code string) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.staff {
		if st.EmployeeCode == code {
			c := copyStaff(st)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) CreateStaff(ctx context.Context, st *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.ID = s.allocID()
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now
	s.staff = append(s.staff, copyStaff(*st))
	return nil
}

func (s *Store) UpdateStaff(ctx context.Context, st *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.staff {
		if s.staff[i].EmployeeCode == st.EmployeeCode {
			st.ID = s.staff[i].ID
			st.CreatedAt = s.staff[i].CreatedAt
			st.UpdatedAt = time.Now()
			s.staff[i] = copyStaff(*st)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) DeleteStaff(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.staff {
		if s.staff[i].EmployeeCode == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return repository.ErrNotFound
	}
	s.staff = append(s.staff[:idx], s.staff[idx+1:]...)
	for i := range s.staff {
		if s.staff[i].ReportsTo == code {
			s.staff[i].ReportsTo = ""
		}
	}
	return nil
}

func (s *Store) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Branch(nil), s.branches...), nil
}

func (s *Store) UpsertBranch(ctx context.Context, b *domain.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.branches {
		if s.branches[i].Name == b.Name {
			b.ID = s.branches[i].ID
			b.UpdatedAt = time.Now()
			s.branches[i] = *b
			return nil
		}
	}
	b.ID = s.allocID()
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.branches = append(s.branches, *b)
	return nil
}

func (s *Store) DeleteBranch(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.branches {
		if s.branches[i].Name == name {
			s.branches = append(s.branches[:i], s.branches[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) ListMetrics(ctx context.Context) ([]domain.ProductMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ProductMetric(nil), s.metrics...), nil
}

func (s *Store) UpsertMetric(ctx context.Context, m *domain.ProductMetric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.metrics {
		if strings.EqualFold(s.metrics[i].Name, m.Name) {
			m.ID = s.metrics[i].ID
			s.metrics[i] = *m
			return nil
		}
	}
	m.ID = s.allocID()
	s.metrics = append(s.metrics, *m)
	return nil
}

func (s *Store) DeleteMetric(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.metrics {
		if strings.EqualFold(s.metrics[i].Name, name) {
			s.metrics = append(s.metrics[:i], s.metrics[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) ListStaffTargets(ctx context.Context, period string, periodType domain.PeriodType) ([]domain.Target, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Target, 0)
	for _, t := range s.targets {
		if t.Period == period && t.PeriodType == periodType {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) CreateTarget(ctx context.Context, t *domain.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.targets {
		if existing.EmployeeCode == t.EmployeeCode &&
			strings.EqualFold(existing.Metric, t.Metric) &&
			existing.Period == t.Period &&
			existing.PeriodType == t.PeriodType {
			return repository.ErrDuplicateTarget
		}
	}
	t.ID = s.allocID()
	s.targets = append(s.targets, *t)
	return nil
}

func (s *Store) UpdateTarget(ctx context.Context, t *domain.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.targets {
		if s.targets[i].ID == t.ID {
			s.targets[i] = *t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) DeleteTarget(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.targets {
		if s.targets[i].ID == id {
			s.targets = append(s.targets[:i], s.targets[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) ListBranchTargets(ctx context.Context, period string) ([]domain.BranchTarget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BranchTarget, 0)
	for _, t := range s.branchTargets {
		if t.Period == period {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) UpsertBranchTarget(ctx context.Context, t *domain.BranchTarget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.branchTargets {
		existing := s.branchTargets[i]
		if existing.BranchName == t.BranchName &&
			strings.EqualFold(existing.Metric, t.Metric) &&
			existing.Period == t.Period {
			t.ID = existing.ID
			s.branchTargets[i] = *t
			return nil
		}
	}
	t.ID = s.allocID()
	s.branchTargets = append(s.branchTargets, *t)
	return nil
}

func (s *Store) DeleteBranchTarget(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.branchTargets {
		if s.branchTargets[i].ID == id {
			s.branchTargets = append(s.branchTargets[:i], s.branchTargets[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) ListRows(ctx context.Context, month string) ([]domain.AchievementRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AchievementRow, 0)
	for _, row := range s.rows {
		if rowMonth(row.Date) == month {
			out = append(out, copyRow(row))
		}
	}
	return out, nil
}

func (s *Store) UpsertRow(ctx context.Context, row *domain.AchievementRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].Date == row.Date && strings.EqualFold(s.rows[i].StaffName, row.StaffName) {
			s.rows[i] = copyRow(*row)
			return nil
		}
	}
	s.rows = append(s.rows, copyRow(*row))
	return nil
}

// rowMonth converts a DD/MM/YYYY display date to YYYY-MM; malformed dates
// map to an empty month and simply never match.
func rowMonth(display string) string {
	d, err := time.Parse("02/01/2006", strings.TrimSpace(display))
	if err != nil {
		return ""
	}
	return d.Format("2006-01")
}

var (
	_ repository.StaffRepository       = (*Store)(nil)
	_ repository.TargetRepository      = (*Store)(nil)
	_ repository.MetricRepository      = (*Store)(nil)
	_ repository.AchievementRepository = (*Store)(nil)
)
