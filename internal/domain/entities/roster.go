package entities

import "strings"

// Roster is the canonical team member list for a run. It is immutable once
// built; a nil *Roster means no roster was configured.
type Roster struct {
	members []string
	lookup  map[string]string
}

// ParseRoster builds a Roster from a comma separated list of names.
// Returns nil when the input holds no names.
func ParseRoster(csv string) *Roster {
	if strings.TrimSpace(csv) == "" {
		return nil
	}

	var members []string
	for _, part := range strings.Split(csv, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		members = append(members, name)
	}
	if len(members) == 0 {
		return nil
	}

	lookup := make(map[string]string, len(members))
	for _, name := range members {
		// later entries win for names that differ only in case
		lookup[strings.ToLower(name)] = name
	}

	return &Roster{members: members, lookup: lookup}
}

// Members returns a copy of the roster in input order
func (r *Roster) Members() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.members))
	copy(out, r.members)
	return out
}

// Canonical resolves a name case-insensitively to its roster spelling
func (r *Roster) Canonical(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	canonical, ok := r.lookup[strings.ToLower(name)]
	return canonical, ok
}

// Len returns the number of roster entries
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.members)
}
