// internal/domain/models.go
package domain

import "time"

// MetricKind classifies how a product metric is aggregated.
type MetricKind string

const (
	KindAmount  MetricKind = "AMOUNT"
	KindAccount MetricKind = "ACCOUNT"
	KindOther   MetricKind = "OTHER"
)

// PeriodType identifies the horizon a target applies to.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodMTD     PeriodType = "mtd"
	PeriodYTD     PeriodType = "ytd"
)

// Metric names with fixed aggregation semantics. Everything else in the
// catalog is configuration data and is looked up dynamically by kind.
const (
	MetricGrandTotalAmount  = "GRAND TOTAL AMT"
	MetricGrandTotalAccount = "GRAND TOTAL AC"
	MetricNewSSAgent        = "NEW-SS/AGNT"
	MetricTotalAccounts     = "TOTAL ACCOUNTS"
	MetricTotalAmounts      = "TOTAL AMOUNTS"
)

// Designation is a staff member's role in the sales hierarchy.
type Designation string

const (
	DesignationAdmin             Designation = "ADMIN"
	DesignationZonalManager      Designation = "ZONAL MANAGER"
	DesignationDistrictHead      Designation = "DISTRICT HEAD"
	DesignationTeamLead          Designation = "TEAM LEAD"
	DesignationSeniorTeamLead    Designation = "SENIOR TEAM LEAD"
	DesignationBranchManager     Designation = "BRANCH MANAGER"
	DesignationAsstBranchManager Designation = "ASST BRANCH MANAGER"
	DesignationSalesOfficer      Designation = "SALES OFFICER"
	DesignationSalesExecutive    Designation = "SALES EXECUTIVE"
)

// IsAdmin reports whether the designation grants global scope.
func (d Designation) IsAdmin() bool {
	return d == DesignationAdmin
}

// IsZoneLevel reports whether the designation manages whole zones.
func (d Designation) IsZoneLevel() bool {
	return d == DesignationZonalManager
}

// IsDistrictLevel reports whether the designation manages a named set of
// branches rather than a zone.
func (d Designation) IsDistrictLevel() bool {
	switch d {
	case DesignationDistrictHead, DesignationTeamLead, DesignationSeniorTeamLead:
		return true
	}
	return false
}

// IsMultiUnit reports whether the designation is responsible for more than
// one branch.
func (d Designation) IsMultiUnit() bool {
	return d.IsZoneLevel() || d.IsDistrictLevel()
}

// HasBranchResponsibility reports whether the designation owns its primary
// branch's numbers (individual contributors do not).
func (d Designation) HasBranchResponsibility() bool {
	switch d {
	case DesignationBranchManager, DesignationAsstBranchManager:
		return true
	}
	return d.IsMultiUnit()
}

// Staff represents one member of the sales organization. EmployeeCode is the
// business key; ReportsTo is a back-reference into the same roster and may be
// empty or dangling.
type Staff struct {
	ID              int64       `json:"id" db:"id"`
	EmployeeCode    string      `json:"employee_code" db:"employee_code"`
	Name            string      `json:"name" db:"name"`
	Designation     Designation `json:"designation" db:"designation"`
	Branch          string      `json:"branch" db:"branch"`
	District        string      `json:"district" db:"district"`
	Region          string      `json:"region" db:"region"`
	Zone            string      `json:"zone" db:"zone"`
	ReportsTo       string      `json:"reports_to" db:"reports_to"`
	ManagedZones    []string    `json:"managed_zones" db:"-"`
	ManagedBranches []string    `json:"managed_branches" db:"-"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// Branch represents a branch office. ManagerCode is derived from the roster,
// not authoritative.
type Branch struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Zone        string    `json:"zone" db:"zone"`
	Region      string    `json:"region" db:"region"`
	District    string    `json:"district" db:"district"`
	ManagerCode string    `json:"manager_code" db:"manager_code"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductMetric is one entry of the admin-configurable metric catalog.
type ProductMetric struct {
	ID                   int64      `json:"id" db:"id"`
	Name                 string     `json:"name" db:"name"`
	Category             string     `json:"category" db:"category"`
	Kind                 MetricKind `json:"kind" db:"kind"`
	Unit                 string     `json:"unit" db:"unit"`
	ContributesToOverall bool       `json:"contributes_to_overall" db:"contributes_to_overall"`
}

// Target is a per-staff KRA: one metric, one period.
type Target struct {
	ID           int64      `json:"id" db:"id"`
	EmployeeCode string     `json:"employee_code" db:"employee_code"`
	Metric       string     `json:"metric" db:"metric"`
	Value        float64    `json:"value" db:"value"`
	PeriodType   PeriodType `json:"period_type" db:"period_type"`
	Period       string     `json:"period" db:"period"`
	DueDate      *time.Time `json:"due_date,omitempty" db:"due_date"`
}

// BranchTarget mirrors Target but is keyed by branch name and scoped to a
// month string.
type BranchTarget struct {
	ID         int64   `json:"id" db:"id"`
	BranchName string  `json:"branch_name" db:"branch_name"`
	Metric     string  `json:"metric" db:"metric"`
	Value      float64 `json:"value" db:"value"`
	Period     string  `json:"period" db:"period"`
}

// AchievementRow is one day's figures for one staff member. Date is in
// DD/MM/YYYY display format at this boundary; Values is keyed by catalog
// metric name and includes the server-computed total fields.
type AchievementRow struct {
	Date       string             `json:"date"`
	StaffName  string             `json:"staff_name"`
	BranchName string             `json:"branch_name"`
	Values     map[string]float64 `json:"values"`
}

// UploadedFile represents an uploaded achievement file queued for import.
type UploadedFile struct {
	Filename string
	Path     string
	Size     int64
}

// ImportResult summarizes one imported achievement file.
type ImportResult struct {
	Filename    string    `json:"filename"`
	TotalRows   int       `json:"total_rows"`
	SkippedRows int       `json:"skipped_rows"`
	ProcessedAt time.Time `json:"processed_at"`
}
