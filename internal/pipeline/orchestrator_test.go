package pipeline

import (
	"testing"
	"time"
)

func TestSnapshotDateFromFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		file string
		want time.Time
	}{
		{
			name: "display date",
			file: "data/uploads/ACHIEVEMENT_05-08-2025.csv",
			want: time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso date",
			file: "achievements_2025-08-05.csv",
			want: time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso preferred over ambiguous trailing digits",
			file: "2025-08-05_branch_12.csv",
			want: time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "no date falls back to today",
			file: "daily.csv",
			want: now.Truncate(24 * time.Hour),
		},
		{
			name: "impossible display date falls back",
			file: "sheet_45-13-2025.csv",
			want: now.Truncate(24 * time.Hour),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SnapshotDateFromFilename(tt.file, now)
			if !got.Equal(tt.want) {
				t.Fatalf("SnapshotDateFromFilename(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}
