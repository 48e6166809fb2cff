package hierarchy

import (
	"testing"

	"github.com/bankperf/salesdash/internal/domain"
)

func sampleBranches() []domain.Branch {
	return []domain.Branch{
		{Name: "NER", Zone: "EAST", District: "NER DISTRICT"},
		{Name: "ALD", Zone: "EAST", District: "ALD DISTRICT"},
		{Name: "KPG", Zone: "WEST", District: "KPG DISTRICT"},
	}
}

func sameScope(a, b domain.Scope) bool {
	if a.AllAccess != b.AllAccess {
		return false
	}
	if len(a.EmployeeCodes) != len(b.EmployeeCodes) || len(a.BranchNames) != len(b.BranchNames) {
		return false
	}
	for code := range a.EmployeeCodes {
		if _, ok := b.EmployeeCodes[code]; !ok {
			return false
		}
	}
	for name := range a.BranchNames {
		if _, ok := b.BranchNames[name]; !ok {
			return false
		}
	}
	return true
}

func TestResolveScope_IndividualContributor(t *testing.T) {
	t.Parallel()

	subject := domain.Staff{EmployeeCode: "3937", Designation: domain.DesignationSalesOfficer, Branch: "NER"}
	roster := []domain.Staff{subject}

	scope := ResolveScope(subject, roster, sampleBranches())
	if !scope.HasEmployee("3937") {
		t.Fatal("scope must include the subject")
	}
	if len(scope.BranchNames) != 0 {
		t.Fatalf("an individual contributor has no branch responsibility, got %v", scope.Branches())
	}
}

func TestResolveScope_TransitiveReports(t *testing.T) {
	t.Parallel()

	subject := domain.Staff{EmployeeCode: "2001", Designation: domain.DesignationBranchManager, Branch: "NER"}
	roster := []domain.Staff{
		subject,
		{EmployeeCode: "3937", Designation: domain.DesignationSalesOfficer, Branch: "NER", ReportsTo: "2001"},
		{EmployeeCode: "4122", Designation: domain.DesignationSalesExecutive, Branch: "NER", ReportsTo: "3937"},
		{EmployeeCode: "5210", Designation: domain.DesignationSalesOfficer, Branch: "ALD", ReportsTo: "2999"},
	}

	scope := ResolveScope(subject, roster, sampleBranches())
	for _, code := range []string{"2001", "3937", "4122"} {
		if !scope.HasEmployee(code) {
			t.Fatalf("missing %s from scope", code)
		}
	}
	if scope.HasEmployee("5210") {
		t.Fatal("5210 reports elsewhere and must not be in scope")
	}
	if !scope.HasBranch("NER") {
		t.Fatal("a branch manager's own branch belongs to the scope")
	}
}

func TestResolveScope_BreaksReportingCycles(t *testing.T) {
	t.Parallel()

	subject := domain.Staff{EmployeeCode: "A", Designation: domain.DesignationTeamLead}
	roster := []domain.Staff{
		subject,
		{EmployeeCode: "B", ReportsTo: "A"},
		{EmployeeCode: "C", ReportsTo: "B"},
		// cycle back to the subject
		{EmployeeCode: "A", ReportsTo: "C"},
	}

	scope := ResolveScope(subject, roster, nil)
	for _, code := range []string{"A", "B", "C"} {
		if !scope.HasEmployee(code) {
			t.Fatalf("missing %s from scope", code)
		}
	}
}

func TestResolveScope_ZonalManagerUnionsManagedZones(t *testing.T) {
	t.Parallel()

	subject := domain.Staff{
		EmployeeCode: "1001",
		Designation:  domain.DesignationZonalManager,
		Branch:       "NER",
		ManagedZones: []string{"EAST"},
	}
	roster := []domain.Staff{
		subject,
		{EmployeeCode: "2001", Designation: domain.DesignationBranchManager, Branch: "NER"},
		{EmployeeCode: "3937", Designation: domain.DesignationSalesOfficer, Branch: "ALD"},
		{EmployeeCode: "7001", Designation: domain.DesignationBranchManager, Branch: "KPG"},
	}

	scope := ResolveScope(subject, roster, sampleBranches())
	for _, branch := range []string{"NER", "ALD"} {
		if !scope.HasBranch(branch) {
			t.Fatalf("missing EAST branch %s", branch)
		}
	}
	if scope.HasBranch("KPG") {
		t.Fatal("KPG is in the WEST zone and must not be in scope")
	}
	for _, code := range []string{"1001", "2001", "3937"} {
		if !scope.HasEmployee(code) {
			t.Fatalf("missing %s from scope", code)
		}
	}
	if scope.HasEmployee("7001") {
		t.Fatal("7001 works a WEST branch and must not be in scope")
	}
}

func TestResolveScope_DistrictHeadUsesManagedBranches(t *testing.T) {
	t.Parallel()

	subject := domain.Staff{
		EmployeeCode:    "1002",
		Designation:     domain.DesignationDistrictHead,
		Branch:          "NER",
		ManagedBranches: []string{"NER", "KPG"},
	}
	roster := []domain.Staff{
		subject,
		{EmployeeCode: "3937", Branch: "NER"},
		{EmployeeCode: "7001", Branch: "KPG"},
		{EmployeeCode: "5210", Branch: "ALD"},
	}

	scope := ResolveScope(subject, roster, sampleBranches())
	if !scope.HasBranch("NER") || !scope.HasBranch("KPG") {
		t.Fatalf("managed branches missing: %v", scope.Branches())
	}
	if scope.HasBranch("ALD") {
		t.Fatal("ALD is not managed and must not be in scope")
	}
	if !scope.HasEmployee("7001") {
		t.Fatal("staff of managed branches belong to the scope")
	}
	if scope.HasEmployee("5210") {
		t.Fatal("5210 works an unmanaged branch")
	}
}

func TestResolveScope_AdminAllAccess(t *testing.T) {
	t.Parallel()

	subject := domain.Staff{EmployeeCode: "1", Designation: domain.DesignationAdmin}
	scope := ResolveScope(subject, []domain.Staff{subject}, sampleBranches())

	if !scope.AllAccess {
		t.Fatal("admin scope must be all-access")
	}
	if !scope.HasEmployee("anything") || !scope.HasBranch("anywhere") {
		t.Fatal("all-access scope must contain everything")
	}
}

func TestResolveScope_Deterministic(t *testing.T) {
	t.Parallel()

	subject := domain.Staff{
		EmployeeCode: "1001",
		Designation:  domain.DesignationZonalManager,
		ManagedZones: []string{"EAST", "WEST"},
	}
	roster := []domain.Staff{
		subject,
		{EmployeeCode: "2001", Branch: "NER", ReportsTo: "1001"},
		{EmployeeCode: "3937", Branch: "ALD", ReportsTo: "2001"},
		{EmployeeCode: "7001", Branch: "KPG"},
	}

	first := ResolveScope(subject, roster, sampleBranches())
	second := ResolveScope(subject, roster, sampleBranches())
	if !sameScope(first, second) {
		t.Fatalf("scope not deterministic: %v vs %v", first, second)
	}
}

func TestResolveScope_DanglingReportsToIgnored(t *testing.T) {
	t.Parallel()

	subject := domain.Staff{EmployeeCode: "2001", Designation: domain.DesignationBranchManager, Branch: "NER"}
	roster := []domain.Staff{
		subject,
		{EmployeeCode: "3937", Branch: "NER", ReportsTo: "no-such-code"},
	}

	scope := ResolveScope(subject, roster, sampleBranches())
	if scope.HasEmployee("3937") {
		t.Fatal("a dangling reportsTo means no manager, not membership")
	}
}
