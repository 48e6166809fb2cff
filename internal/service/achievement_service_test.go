package service

import (
	"context"
	"strings"
	"testing"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository/memory"
)

func metricsFixture(t *testing.T, store *memory.Store) {
	t.Helper()
	metrics := []domain.ProductMetric{
		{Name: "DDS AMT", Kind: domain.KindAmount, ContributesToOverall: true},
		{Name: "DDS AC", Kind: domain.KindAccount, ContributesToOverall: true},
		{Name: "FD AMT", Kind: domain.KindAmount, ContributesToOverall: true},
		{Name: "FD AC", Kind: domain.KindAccount, ContributesToOverall: true},
		{Name: domain.MetricNewSSAgent, Kind: domain.KindOther, ContributesToOverall: true},
	}
	for i := range metrics {
		if err := store.UpsertMetric(context.Background(), &metrics[i]); err != nil {
			t.Fatalf("seed metric: %v", err)
		}
	}
}

func TestAchievementSubmit_RecomputesTotals(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	metricsFixture(t, store)
	svc := NewAchievementService(store, store, nil)

	row := domain.AchievementRow{
		Date:      "20/07/2024",
		StaffName: "RAJESH KUMAR",
		Values: map[string]float64{
			"DDS AMT":               500000,
			"DDS AC":                10,
			"FD AMT":                170000,
			"FD AC":                 2,
			domain.MetricNewSSAgent: 1,
			// client-supplied totals must be discarded
			domain.MetricGrandTotalAmount: 1,
			// unknown field must be dropped
			"MYSTERY METRIC": 999,
		},
	}
	if err := svc.Submit(ctx, &row); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	stored, err := store.ListRows(ctx, "2024-07")
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("want 1 row, got %d", len(stored))
	}
	got := stored[0].Values
	if got[domain.MetricGrandTotalAmount] != 670000 {
		t.Fatalf("grand total amt: want 670000, got %v", got[domain.MetricGrandTotalAmount])
	}
	if got[domain.MetricGrandTotalAccount] != 13 {
		t.Fatalf("grand total ac: want 13 (incl NEW-SS/AGNT), got %v", got[domain.MetricGrandTotalAccount])
	}
	if _, ok := got["MYSTERY METRIC"]; ok {
		t.Fatal("unknown metric must not be stored")
	}
}

func TestAchievementSubmit_ValidatesDate(t *testing.T) {
	store := memory.NewStore()
	metricsFixture(t, store)
	svc := NewAchievementService(store, store, nil)

	err := svc.Submit(context.Background(), &domain.AchievementRow{
		Date:      "2024-07-20",
		StaffName: "RAJESH KUMAR",
		Values:    map[string]float64{"DDS AMT": 100},
	})
	if err == nil {
		t.Fatal("ISO date at the display boundary must be rejected")
	}
}

func TestAchievementSubmit_UpsertsByDateAndStaff(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	metricsFixture(t, store)
	svc := NewAchievementService(store, store, nil)

	first := domain.AchievementRow{Date: "20/07/2024", StaffName: "RAJESH KUMAR",
		Values: map[string]float64{"DDS AMT": 100000}}
	second := domain.AchievementRow{Date: "20/07/2024", StaffName: "RAJESH KUMAR",
		Values: map[string]float64{"DDS AMT": 250000}}
	if err := svc.Submit(ctx, &first); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := svc.Submit(ctx, &second); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	rows, err := store.ListRows(ctx, "2024-07")
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("resubmission must replace, want 1 row, got %d", len(rows))
	}
	if rows[0].Values[domain.MetricGrandTotalAmount] != 250000 {
		t.Fatalf("want the later submission, got %v", rows[0].Values[domain.MetricGrandTotalAmount])
	}
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	metricsFixture(t, store)
	svc := NewAchievementService(store, store, nil)

	data := strings.Join([]string{
		"DATE,STAFF NAME,BRANCH NAME,DDS AMT,DDS AC,FD AMT",
		`20/07/2024,RAJESH KUMAR,NER,"500,000",10,170000`,
		"21/07/2024,PRIYA NAIR,NER,410000,7,",
		"bad-date,ANIL JOSHI,ALD,100,1,",
	}, "\n")

	result, err := svc.ImportCSV(ctx, strings.NewReader(data), "ner_daily.csv")
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if result.TotalRows != 3 {
		t.Fatalf("total rows: want 3, got %d", result.TotalRows)
	}
	if result.SkippedRows != 1 {
		t.Fatalf("skipped rows: want 1 (bad date), got %d", result.SkippedRows)
	}

	rows, err := store.ListRows(ctx, "2024-07")
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 stored rows, got %d", len(rows))
	}
	var total float64
	for _, row := range rows {
		total += row.Values[domain.MetricGrandTotalAmount]
	}
	if total != 1080000 {
		t.Fatalf("grand totals: want 1080000, got %v", total)
	}
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	store := memory.NewStore()
	metricsFixture(t, store)
	svc := NewAchievementService(store, store, nil)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("DATE,BRANCH NAME\n20/07/2024,NER\n"), "broken.csv")
	if err == nil {
		t.Fatal("missing STAFF NAME column must fail the file")
	}
}
