package compare

import "github.com/rotisserie/eris"

// SelectionState is the lifecycle phase of a comparison selection.
type SelectionState string

const (
	SelectionEmpty     SelectionState = "empty"
	SelectionSelecting SelectionState = "selecting"
	SelectionReady     SelectionState = "ready"
	SelectionCompared  SelectionState = "compared"
)

// Selection tracks picked product ids with set semantics: duplicates
// collapse, order of first pick is preserved. The owning caller drives it
// through Empty -> Selecting -> Ready -> Compared -> Empty.
type Selection struct {
	ids      []string
	compared bool
}

// Add picks a product. Re-picking an already-selected id is a no-op that
// still reports success; a fourth distinct pick is rejected. Any change
// invalidates a previous comparison.
func (s *Selection) Add(id string) bool {
	if id == "" {
		return false
	}
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	if len(s.ids) >= MaxSelection {
		return false
	}
	s.ids = append(s.ids, id)
	s.compared = false
	return true
}

// Remove drops a pick if present.
func (s *Selection) Remove(id string) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			s.compared = false
			return
		}
	}
}

// Clear resets the selection to Empty.
func (s *Selection) Clear() {
	s.ids = nil
	s.compared = false
}

// IDs returns the distinct picked ids in pick order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// State reports the current lifecycle phase.
func (s *Selection) State() SelectionState {
	switch {
	case len(s.ids) == 0:
		return SelectionEmpty
	case len(s.ids) < MinSelection:
		return SelectionSelecting
	case s.compared:
		return SelectionCompared
	default:
		return SelectionReady
	}
}

// MarkCompared records that a matrix was built for the current picks.
// Legal only from Ready or Compared.
func (s *Selection) MarkCompared() error {
	state := s.State()
	if state != SelectionReady && state != SelectionCompared {
		return eris.Errorf("compare: cannot compare from state %s", state)
	}
	s.compared = true
	return nil
}
