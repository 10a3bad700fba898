package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/clipcart/clipcart/internal/catalog"
	"github.com/clipcart/clipcart/internal/engagement"
	"github.com/clipcart/clipcart/internal/showroom"
	"github.com/clipcart/clipcart/internal/wizard"
)

// Session is the per-browser state of one anonymous viewer: where they
// are in the app, what they track and clip, their showroom media
// overrides, and the campaign wizard if one is in flight.
type Session struct {
	ID string

	mu         sync.Mutex
	nav        Nav
	engagement *engagement.State
	media      *showroom.Media
	wiz        *wizard.Session
	lastSeen   time.Time
}

// NavState is the JSON shape of the viewer's position.
type NavState struct {
	View       View             `json:"view"`
	Category   catalog.Category `json:"category"`
	SelectedAd string           `json:"selectedAd,omitempty"`
}

func (s *Session) NavState() NavState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := NavState{View: s.nav.View(), Category: s.nav.Category()}
	if id, ok := s.nav.SelectedAd(); ok {
		st.SelectedAd = id
	}
	return st
}

// SelectAd opens the detail view for an ad. Unknown ids leave the
// navigation untouched.
func (s *Session) SelectAd(c *catalog.Catalog, id string) error {
	if _, ok := c.Get(id); !ok {
		return fmt.Errorf("unknown ad %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.selectAd(id)
	return nil
}

func (s *Session) SelectCategory(c catalog.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.selectCategory(c)
}

func (s *Session) NavigateTo(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.navigateTo(v)
}

func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.back()
}

// Engagement returns the viewer's track/clip toggles. The state is safe
// for concurrent use.
func (s *Session) Engagement() *engagement.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engagement
}

// Media returns the viewer's showroom media overrides.
func (s *Session) Media() *showroom.Media {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.media
}

// Wizard returns the in-flight campaign wizard, or nil.
func (s *Session) Wizard() *wizard.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wiz
}

// StartWizard opens a fresh campaign wizard. An earlier wizard, finished
// or not, is cancelled first so its pipeline stops ticking.
func (s *Session) StartWizard(cfg wizard.Config) *wizard.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wiz != nil {
		s.wiz.Close()
	}
	s.wiz = wizard.NewSession(cfg)
	return s.wiz
}

// EndWizard cancels and detaches the wizard if one exists.
func (s *Session) EndWizard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wiz == nil {
		return false
	}
	s.wiz.Close()
	s.wiz = nil
	return true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// close releases session resources. Called with the session already
// removed from the store.
func (s *Session) close() {
	s.mu.Lock()
	wiz := s.wiz
	s.wiz = nil
	s.mu.Unlock()
	if wiz != nil {
		wiz.Close()
	}
}

// Store keeps live sessions in memory, keyed by id, and mints the signed
// cookie tokens that identify them. Idle sessions are swept out so
// abandoned wizards do not leak goroutines.
type Store struct {
	secret string
	ttl    time.Duration
	clock  clockwork.Clock

	mu       sync.Mutex
	sessions map[string]*Session

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore starts the idle sweeper and returns the store. Call Stop when
// the server shuts down.
func NewStore(secret string, ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	st := &Store{
		secret:   secret,
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go st.sweepLoop()
	return st
}

// Create registers a new session and returns it with its cookie token.
func (st *Store) Create() (*Session, string, error) {
	id := uuid.NewString()
	token, err := generateToken(st.secret, id, st.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	s := &Session{
		ID:         id,
		nav:        newNav(),
		engagement: engagement.NewState(),
		media:      showroom.NewMedia(),
		lastSeen:   st.clock.Now(),
	}

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	return s, token, nil
}

// Resolve maps a cookie token back to its live session. A valid token
// whose session was swept returns false; the caller starts a new one.
func (st *Store) Resolve(token string) (*Session, bool) {
	claims, err := validateToken(st.secret, token)
	if err != nil {
		return nil, false
	}

	st.mu.Lock()
	s, ok := st.sessions[claims.SessionID]
	st.mu.Unlock()
	if !ok {
		return nil, false
	}
	s.touch(st.clock.Now())
	return s, true
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Stop halts the sweeper and closes every live session.
func (st *Store) Stop() {
	st.stopOnce.Do(func() { close(st.stop) })

	st.mu.Lock()
	live := make([]*Session, 0, len(st.sessions))
	for id, s := range st.sessions {
		live = append(live, s)
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	for _, s := range live {
		s.close()
	}
}

func (st *Store) sweepLoop() {
	interval := st.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := st.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case <-ticker.Chan():
			st.sweep()
		}
	}
}

func (st *Store) sweep() {
	now := st.clock.Now()

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
}
