package store

import "time"

// Session is one completed work interval. A session with zero duration
// and no note is a task-completion log, not timed work.
type Session struct {
	ID        string    `json:"id"`
	TaskName  string    `json:"taskName"`
	Tag       string    `json:"tag"`
	StartTime time.Time `json:"startTime,omitzero"`
	EndTime   time.Time `json:"endTime,omitzero"`
	// Timestamp is the legacy end-time field. It is kept on migrated
	// records so re-running the migration is a no-op.
	Timestamp    time.Time `json:"timestamp,omitzero"`
	Duration     int64     `json:"duration"` // seconds
	GoalDuration int64     `json:"goalDuration"`
	Note         string    `json:"note,omitempty"`
}

// When returns the instant a session counts toward: its end time, falling
// back to the legacy timestamp for records that predate migration.
func (s Session) When() time.Time {
	if !s.EndTime.IsZero() {
		return s.EndTime
	}
	return s.Timestamp
}

// IsCompletionLog reports whether the session records a task being checked
// off rather than timed work.
func (s Session) IsCompletionLog() bool {
	return s.Duration == 0 && s.Note == ""
}

type Task struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Title         string    `json:"title"`
	Note          string    `json:"note,omitempty"`
	Priority      int       `json:"priority"`           // 1..5
	Deadline      string    `json:"deadline,omitempty"` // ISO date, optional
	Tag           string    `json:"tag"`
	ProjectID     string    `json:"projectId,omitempty"`
	Completed     bool      `json:"completed"`
	DeferredUntil time.Time `json:"deferredUntil,omitzero"`
}

type Project struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Note  string `json:"note,omitempty"`
}

// Prefs is a single record merged field-by-field on every write; it is
// never replaced wholesale.
type Prefs struct {
	ActiveTag          string            `json:"activeTag,omitempty"`
	DefaultGoalMinutes int               `json:"defaultGoalMinutes,omitempty"`
	AlarmSound         string            `json:"alarmSound,omitempty"`
	TagColors          map[string]string `json:"tagColors,omitempty"`
}

// PrefsPatch carries the fields of a merge-write; nil fields are left
// untouched in the stored record.
type PrefsPatch struct {
	ActiveTag          *string
	DefaultGoalMinutes *int
	AlarmSound         *string
	TagColors          map[string]string
}

// ActionItem is a task joined with its project title for display.
type ActionItem struct {
	Task
	ProjectName string
}
