package store

import "github.com/google/uuid"

// Projects returns all projects, newest first.
func (s *Store) Projects() []Project {
	projects, _ := readList[Project](s, colProjects)
	return projects
}

// SaveProject upserts a project and returns the updated list.
func (s *Store) SaveProject(p Project) ([]Project, error) {
	projects := s.Projects()

	if p.ID != "" {
		for i := range projects {
			if projects[i].ID == p.ID {
				projects[i] = p
				break
			}
		}
		return projects, writeList(s, colProjects, projects)
	}

	p.ID = uuid.NewString()
	projects = append([]Project{p}, projects...)
	return projects, writeList(s, colProjects, projects)
}

// DeleteProject removes a project and orphans every task referencing it:
// their projectId is cleared, none are deleted.
func (s *Store) DeleteProject(id string) ([]Project, error) {
	tasks := s.Tasks()
	changed := false
	for i := range tasks {
		if tasks[i].ProjectID == id {
			tasks[i].ProjectID = ""
			changed = true
		}
	}
	if changed {
		if err := writeList(s, colTasks, tasks); err != nil {
			return nil, err
		}
	}

	projects := s.Projects()
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return kept, writeList(s, colProjects, kept)
}
