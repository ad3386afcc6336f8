package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/huddle/internal/groupme"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Me                  groupme.CurrentUser
	HasMe               bool
	Groups              []groupme.Group
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when GroupMe has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Group returns the group with the given id from the snapshot.
func (s Snapshot) Group(id string) (groupme.Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return groupme.Group{}, false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(me *groupme.CurrentUser, groups []groupme.Group, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Groups = cloneGroups(groups)
	if me != nil {
		s.snapshot.Me = *me
		s.snapshot.HasMe = true
	} else {
		s.snapshot.HasMe = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Groups = cloneGroups(s.snapshot.Groups)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneGroups(groups []groupme.Group) []groupme.Group {
	if len(groups) == 0 {
		return nil
	}
	dup := make([]groupme.Group, len(groups))
	copy(dup, groups)
	return dup
}
