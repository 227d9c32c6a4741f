package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focuslog/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID            string `json:"id"`
	Task          string `json:"task"`
	Tag           string `json:"tag,omitempty"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	DurationSec   int64  `json:"duration_seconds"`
	Duration      string `json:"duration"`
	GoalSec       int64  `json:"goal_seconds,omitempty"`
	Note          string `json:"note,omitempty"`
	CompletionLog bool   `json:"completion_log,omitempty"`
}

func ToJSON(sessions []store.Session, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
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

		export.Sessions = append(export.Sessions, jsonSession{
			ID:            s.ID,
			Task:          s.TaskName,
			Tag:           s.Tag,
			StartTime:     startStr,
			EndTime:       endStr,
			DurationSec:   s.Duration,
			Duration:      formatDuration(s.Duration),
			GoalSec:       s.GoalDuration,
			Note:          s.Note,
			CompletionLog: s.IsCompletionLog(),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
