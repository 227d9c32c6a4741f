package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/focuslog/internal/store"
)

func sampleSessions() []store.Session {
	now := time.Now()
	return []store.Session{
		{
			ID:        "s1",
			TaskName:  "Write report",
			Tag:       "Deep Work",
			StartTime: now.Add(-25 * time.Minute),
			EndTime:   now,
			Duration:  1500,
			Note:      "first draft",
		},
		{
			ID:       "s2",
			TaskName: "Ship feature",
			Tag:      "Admin",
			EndTime:  now,
			Duration: 0, // completion log
		},
	}
}

// ============================================================
// CSV export
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleSessions(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Task" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Write report" || rows[1][5] != "1500" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[1][6] != "00:25:00" {
		t.Fatalf("expected formatted duration, got %q", rows[1][6])
	}
	if rows[2][6] != "completed" {
		t.Fatalf("completion log should render as completed, got %q", rows[2][6])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "ID,Task,Tag") {
		t.Fatalf("empty export should still carry the header: %q", string(data))
	}
}

// ============================================================
// JSON export
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleSessions(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Sessions   []struct {
			Task          string `json:"task"`
			DurationSec   int64  `json:"duration_seconds"`
			CompletionLog bool   `json:"completion_log"`
		} `json:"sessions"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}

	if out.Count != 2 || len(out.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got count=%d len=%d", out.Count, len(out.Sessions))
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
	if out.Sessions[0].Task != "Write report" || out.Sessions[0].DurationSec != 1500 {
		t.Fatalf("unexpected first session: %+v", out.Sessions[0])
	}
	if !out.Sessions[1].CompletionLog {
		t.Fatal("zero-duration session should be flagged as completion log")
	}
}
