package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"

	"github.com/clipcart/clipcart/internal/catalog"
	"github.com/clipcart/clipcart/internal/countdown"
	"github.com/clipcart/clipcart/internal/merchant"
	"github.com/clipcart/clipcart/internal/probe"
	"github.com/clipcart/clipcart/internal/ratelimit"
	"github.com/clipcart/clipcart/internal/session"
	"github.com/clipcart/clipcart/internal/wizard"
)

type Config struct {
	Catalog  *catalog.Catalog
	Sessions *session.Store
	BaseURL  string

	// Probe resolves asset metadata when a wizard upload omits it.
	Probe probe.Inspector

	Wizard wizard.Config
	Clock  clockwork.Clock

	RateLimit      float64
	RateLimitBurst int
}

type Server struct {
	router    chi.Router
	catalog   *catalog.Catalog
	sessions  *session.Store
	recorder  *merchant.Recorder
	probe     probe.Inspector
	wizardCfg wizard.Config
	limiter   *ratelimit.Limiter

	secureCookies bool

	// One live countdown per deal that ships with a deadline. Timers are
	// shared across sessions; every viewer sees the same clock.
	timers map[string]*countdown.Timer

	closeOnce sync.Once
}

func New(cfg Config) *Server {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 20
	}
	if cfg.Wizard.Clock == nil {
		cfg.Wizard.Clock = clock
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(slogMiddleware)
	r.Use(securityHeaders(SecurityConfig{BaseURL: cfg.BaseURL}))

	s := &Server{
		router:    r,
		catalog:   cfg.Catalog,
		sessions:  cfg.Sessions,
		recorder:  merchant.NewRecorder(),
		probe:     cfg.Probe,
		wizardCfg: cfg.Wizard,
		limiter:   ratelimit.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),

		secureCookies: strings.HasPrefix(cfg.BaseURL, "https://"),
		timers:        make(map[string]*countdown.Timer),
	}

	for _, ad := range cfg.Catalog.Ads() {
		if ad.TimeLeft == "" {
			continue
		}
		t, err := countdown.New(ad.TimeLeft, clock)
		if err != nil {
			continue
		}
		s.timers[ad.ID] = t
	}

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the deal countdowns and the rate limiter sweeper. Sessions
// are owned by the store and shut down with it.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		for _, t := range s.timers {
			t.Stop()
		}
		s.limiter.Stop()
	})
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/api/feed", s.handleFeed)
		r.Get("/api/categories", s.handleCategories)

		r.Get("/api/nav", s.handleNavState)
		r.Get("/api/ads/{id}", s.handleAdDetail)
		r.Get("/watch/{id}", s.handleWatchPage)

		r.Get("/api/merchant/dashboard", s.handleDashboard)
		r.Get("/api/merchant/campaigns", s.handleCampaigns)

		r.Get("/api/showroom/{brand}", s.handleShowroom)
		r.Get("/api/engagement", s.handleEngagement)

		r.Get("/api/wizard", s.handleWizardState)
		r.Get("/api/wizard/options", s.handleWizardOptions)
		r.Get("/api/limits", s.handleLimits)

		r.Group(func(r chi.Router) {
			r.Use(s.limiter.Middleware)

			r.Post("/api/nav/ad/{id}", s.handleSelectAd)
			r.Post("/api/nav/category/{category}", s.handleSelectCategory)
			r.Post("/api/nav/view/{view}", s.handleNavigate)
			r.Post("/api/nav/back", s.handleBack)

			r.Post("/api/ads/{id}/view", s.handleRecordView)
			r.Post("/api/ads/{id}/cta", s.handleRecordCTA)

			r.Post("/api/showroom/{brand}/banner", s.handleSetBanner)
			r.Post("/api/showroom/{brand}/logo", s.handleSetLogo)

			r.Post("/api/engagement/track/{brand}", s.handleToggleTrack)
			r.Post("/api/engagement/clip/{id}", s.handleToggleClip)

			r.Post("/api/wizard", s.handleWizardStart)
			r.Delete("/api/wizard", s.handleWizardCancel)
			r.Post("/api/wizard/type/{option}", s.handleWizardType)
			r.Post("/api/wizard/asset", s.handleWizardAsset)
			r.Post("/api/wizard/next", s.handleWizardNext)
			r.Post("/api/wizard/back", s.handleWizardBack)
			r.Patch("/api/wizard/form", s.handleWizardForm)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// timeLeft returns the live countdown for a deal, or the catalog value
// when no timer runs for it.
func (s *Server) timeLeft(ad catalog.VideoAd) string {
	if t, ok := s.timers[ad.ID]; ok {
		return t.Value()
	}
	return ad.TimeLeft
}

func (s *Server) withLiveCountdown(ads []catalog.VideoAd) []catalog.VideoAd {
	for i := range ads {
		if ads[i].TimeLeft != "" {
			ads[i].TimeLeft = s.timeLeft(ads[i])
		}
	}
	return ads
}
