package store

import (
	"time"

	"github.com/google/uuid"
)

// History returns all sessions, newest first. Legacy records are migrated
// in place on every read: a record carrying the old end-time `timestamp`
// but no startTime gets endTime = timestamp and startTime = endTime -
// duration. The collection is persisted back only when something changed.
func (s *Store) History() []Session {
	sessions, _ := readList[Session](s, colSessions)

	migrated := 0
	for i, sess := range sessions {
		if !sess.Timestamp.IsZero() && sess.StartTime.IsZero() {
			sess.EndTime = sess.Timestamp
			sess.StartTime = sess.Timestamp.Add(-time.Duration(sess.Duration) * time.Second)
			sessions[i] = sess
			migrated++
		}
	}
	if migrated > 0 {
		s.logger.Info("migrated legacy sessions to start/end format", "count", migrated)
		if err := writeList(s, colSessions, sessions); err != nil {
			s.logger.Warn("persist migrated sessions", "err", err)
		}
	}
	return sessions
}

// SaveSession upserts a session and returns the updated history. A record
// without an id is created: it gets a fresh id, defaults startTime to
// now - duration and endTime to now when absent, and is prepended so the
// list stays newest-first. A record with an id replaces the stored record
// wholesale.
func (s *Store) SaveSession(sess Session) ([]Session, error) {
	history := s.History()

	if sess.ID != "" {
		for i := range history {
			if history[i].ID == sess.ID {
				history[i] = sess
				break
			}
		}
		return history, writeList(s, colSessions, history)
	}

	now := time.Now()
	sess.ID = uuid.NewString()
	if sess.StartTime.IsZero() {
		end := sess.EndTime
		if end.IsZero() {
			end = now
		}
		sess.StartTime = end.Add(-time.Duration(sess.Duration) * time.Second)
	}
	if sess.EndTime.IsZero() {
		sess.EndTime = now
	}

	history = append([]Session{sess}, history...)
	return history, writeList(s, colSessions, history)
}

// DeleteSession removes a session by id and returns the updated history.
func (s *Store) DeleteSession(id string) ([]Session, error) {
	history := s.History()
	kept := history[:0]
	for _, sess := range history {
		if sess.ID != id {
			kept = append(kept, sess)
		}
	}
	return kept, writeList(s, colSessions, kept)
}
