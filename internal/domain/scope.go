// internal/domain/scope.go
package domain

// Scope is the set of employee codes and branch names an aggregation runs
// over. AllAccess marks an admin scope: callers treat it as "everything"
// without materializing the full roster.
type Scope struct {
	AllAccess     bool                `json:"all_access"`
	EmployeeCodes map[string]struct{} `json:"-"`
	BranchNames   map[string]struct{} `json:"-"`
}

// NewScope returns an empty scope.
func NewScope() Scope {
	return Scope{
		EmployeeCodes: make(map[string]struct{}),
		BranchNames:   make(map[string]struct{}),
	}
}

// AddEmployee adds an employee code to the scope. Empty codes are ignored.
func (s *Scope) AddEmployee(code string) {
	if code == "" {
		return
	}
	s.EmployeeCodes[code] = struct{}{}
}

// AddBranch adds a branch name to the scope. Empty names are ignored.
func (s *Scope) AddBranch(name string) {
	if name == "" {
		return
	}
	s.BranchNames[name] = struct{}{}
}

// HasEmployee reports whether the employee code is in scope.
func (s Scope) HasEmployee(code string) bool {
	if s.AllAccess {
		return true
	}
	_, ok := s.EmployeeCodes[code]
	return ok
}

// HasBranch reports whether the branch name is in scope.
func (s Scope) HasBranch(name string) bool {
	if s.AllAccess {
		return true
	}
	_, ok := s.BranchNames[name]
	return ok
}

// Employees returns the employee codes in scope in no particular order.
func (s Scope) Employees() []string {
	codes := make([]string, 0, len(s.EmployeeCodes))
	for code := range s.EmployeeCodes {
		codes = append(codes, code)
	}
	return codes
}

// Branches returns the branch names in scope in no particular order.
func (s Scope) Branches() []string {
	names := make([]string, 0, len(s.BranchNames))
	for name := range s.BranchNames {
		names = append(names, name)
	}
	return names
}
