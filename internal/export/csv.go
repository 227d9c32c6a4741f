package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focuslog/internal/store"
)

func ToCSV(sessions []store.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Task", "Tag", "Start", "End", "Duration (s)", "Duration", "Goal (s)", "Note"}); err != nil {
		return err
	}

	for _, s := range sessions {
		startStr := ""
		if !s.StartTime.IsZero() {
			startStr = s.StartTime.Local().Format(time.RFC3339)
		}
		endStr := ""
		if end := s.When(); !end.IsZero() {
			endStr = end.Local().Format(time.RFC3339)
		}
		dur := formatDuration(s.Duration)
		if s.IsCompletionLog() {
			dur = "completed"
		}

		row := []string{
			s.ID,
			s.TaskName,
			s.Tag,
			startStr,
			endStr,
			fmt.Sprintf("%d", s.Duration),
			dur,
			fmt.Sprintf("%d", s.GoalDuration),
			s.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
