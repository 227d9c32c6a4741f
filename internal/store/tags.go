package store

// DefaultTags seeds a fresh install. An explicitly saved empty list stays
// empty; the defaults only apply while the tags collection has never been
// written.
var DefaultTags = []string{"Deep Work", "Meeting", "Reading", "Thinking", "Admin"}

// Tags returns the ordered tag list.
func (s *Store) Tags() []string {
	tags, found := readList[string](s, colTags)
	if !found {
		return append([]string(nil), DefaultTags...)
	}
	return tags
}

// SaveTags replaces the tag list.
func (s *Store) SaveTags(tags []string) error {
	return writeList(s, colTags, tags)
}

// AddTag appends a tag, keeping the list unique, and returns the updated
// list. Adding an existing name is a no-op.
func (s *Store) AddTag(name string) ([]string, error) {
	tags := s.Tags()
	for _, t := range tags {
		if t == name {
			return tags, nil
		}
	}
	tags = append(tags, name)
	return tags, s.SaveTags(tags)
}

// DeleteTag removes a tag by name and returns the updated list. Sessions
// and tasks referencing the tag keep their reference; rendering falls back
// to a default color. Reassigning the active tag is the caller's job,
// triggered by the same action.
func (s *Store) DeleteTag(name string) ([]string, error) {
	tags := s.Tags()
	kept := tags[:0]
	for _, t := range tags {
		if t != name {
			kept = append(kept, t)
		}
	}
	return kept, s.SaveTags(kept)
}
