// Package engagement holds a session's follow and bookmark toggles: track
// a brand, clip a deal. The shell's share/clipboard actions attach to these
// booleans; there is no algorithmic weight here.
package engagement

import (
	"sort"
	"sync"
)

type State struct {
	mu      sync.Mutex
	tracked map[string]bool
	clipped map[string]bool
}

func NewState() *State {
	return &State{
		tracked: make(map[string]bool),
		clipped: make(map[string]bool),
	}
}

// ToggleTrack flips the follow state for a brand and returns the new value.
func (s *State) ToggleTrack(brand string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracked[brand] = !s.tracked[brand]
	return s.tracked[brand]
}

// ToggleClip flips the bookmark state for a deal and returns the new value.
func (s *State) ToggleClip(dealID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipped[dealID] = !s.clipped[dealID]
	return s.clipped[dealID]
}

func (s *State) Tracked(brand string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracked[brand]
}

func (s *State) Clipped(dealID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clipped[dealID]
}

type Snapshot struct {
	Tracked []string `json:"tracked"`
	Clipped []string `json:"clipped"`
}

// Snapshot lists the currently-on toggles in stable order.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Tracked: []string{}, Clipped: []string{}}
	for brand, on := range s.tracked {
		if on {
			snap.Tracked = append(snap.Tracked, brand)
		}
	}
	for id, on := range s.clipped {
		if on {
			snap.Clipped = append(snap.Clipped, id)
		}
	}
	sort.Strings(snap.Tracked)
	sort.Strings(snap.Clipped)
	return snap
}
