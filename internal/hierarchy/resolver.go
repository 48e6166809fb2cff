// internal/hierarchy/resolver.go
package hierarchy

import "github.com/bankperf/salesdash/internal/domain"

// ResolveScope computes the set of employee codes and branch names the
// subject is responsible for. It is a pure function of its inputs.
//
// The scope always contains the subject's own code, plus:
//   - every staff member whose reportsTo chain terminates at the subject
//     (cycle-safe: a code already visited is never revisited),
//   - for zone-level roles, every branch whose zone is managed by the
//     subject and every staff member in those branches,
//   - for district and team-lead roles, every branch named in the subject's
//     managedBranches grant and every staff member in those branches.
//
// Admin scope is returned as AllAccess without materializing the roster.
func ResolveScope(subject domain.Staff, allStaff []domain.Staff, allBranches []domain.Branch) domain.Scope {
	scope := domain.NewScope()
	scope.AddEmployee(subject.EmployeeCode)

	if subject.Designation.IsAdmin() {
		scope.AllAccess = true
		return scope
	}

	if subject.Designation.HasBranchResponsibility() {
		scope.AddBranch(subject.Branch)
	}

	collectReportingChain(&scope, subject.EmployeeCode, allStaff)

	managedBranches := make(map[string]struct{})
	if subject.Designation.IsZoneLevel() {
		zones := make(map[string]struct{}, len(subject.ManagedZones))
		for _, z := range subject.ManagedZones {
			zones[z] = struct{}{}
		}
		for _, b := range allBranches {
			if _, ok := zones[b.Zone]; ok {
				managedBranches[b.Name] = struct{}{}
			}
		}
	}
	if subject.Designation.IsDistrictLevel() {
		for _, name := range subject.ManagedBranches {
			managedBranches[name] = struct{}{}
		}
	}

	for name := range managedBranches {
		scope.AddBranch(name)
	}
	if len(managedBranches) > 0 {
		for _, s := range allStaff {
			if _, ok := managedBranches[s.Branch]; ok {
				scope.AddEmployee(s.EmployeeCode)
			}
		}
	}

	return scope
}

// collectReportingChain walks the reporting forest breadth-first from the
// subject, adding every transitive report. The visited set breaks cycles:
// self-reporting is rejected at write time but not relied upon here.
func collectReportingChain(scope *domain.Scope, root string, allStaff []domain.Staff) {
	reports := make(map[string][]string, len(allStaff))
	for _, s := range allStaff {
		if s.ReportsTo == "" {
			continue
		}
		reports[s.ReportsTo] = append(reports[s.ReportsTo], s.EmployeeCode)
	}

	visited := map[string]struct{}{root: {}}
	queue := []string{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, code := range reports[current] {
			if _, seen := visited[code]; seen {
				continue
			}
			visited[code] = struct{}{}
			scope.AddEmployee(code)
			queue = append(queue, code)
		}
	}
}
