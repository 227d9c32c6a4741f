package store

import "encoding/json"

// Prefs returns the preferences record. Absent or malformed data yields
// the zero record.
func (s *Store) Prefs() Prefs {
	data, found := s.readRaw(colPrefs)
	if !found {
		return Prefs{}
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("malformed prefs, using defaults", "err", err)
		return Prefs{}
	}
	return p
}

// SavePrefs merges a patch into the stored preferences field-by-field and
// returns the merged record. Fields left nil in the patch are preserved;
// a non-nil TagColors replaces the whole mapping.
func (s *Store) SavePrefs(patch PrefsPatch) (Prefs, error) {
	p := s.Prefs()

	if patch.ActiveTag != nil {
		p.ActiveTag = *patch.ActiveTag
	}
	if patch.DefaultGoalMinutes != nil {
		p.DefaultGoalMinutes = *patch.DefaultGoalMinutes
	}
	if patch.AlarmSound != nil {
		p.AlarmSound = *patch.AlarmSound
	}
	if patch.TagColors != nil {
		p.TagColors = patch.TagColors
	}

	data, err := json.Marshal(p)
	if err != nil {
		return p, err
	}
	return p, s.writeRaw(colPrefs, data)
}
