package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clipcart/clipcart/internal/catalog"
	"github.com/clipcart/clipcart/internal/probe"
	"github.com/clipcart/clipcart/internal/session"
	"github.com/clipcart/clipcart/internal/wizard"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}
	store := session.NewStore("test-secret", time.Hour, nil)
	t.Cleanup(store.Stop)

	wizardCfg := wizard.DefaultConfig()
	wizardCfg.ProgressInterval = 2 * time.Millisecond
	wizardCfg.TierDuration = 5 * time.Millisecond

	srv := New(Config{
		Catalog:  cat,
		Sessions: store,
		BaseURL:  "http://localhost:8080",
		Probe: probe.Static{
			"upload://clip.mp4": {DurationSeconds: 30, Width: 1920, Height: 1080},
		},
		Wizard:         wizardCfg,
		RateLimit:      1000,
		RateLimitBurst: 1000,
	})
	t.Cleanup(srv.Close)
	return srv
}

// client replays the session cookie across requests, standing in for one
// browser.
type client struct {
	t       *testing.T
	srv     *Server
	cookies []*http.Cookie
}

func newClient(t *testing.T, srv *Server) *client {
	return &client{t: t, srv: srv}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)

	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rec
}

func (c *client) getJSON(path string, out any) {
	c.t.Helper()
	rec := c.do(http.MethodGet, path, nil)
	if rec.Code != http.StatusOK {
		c.t.Fatalf("GET %s: status %d: %s", path, rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		c.t.Fatalf("GET %s: %v", path, err)
	}
}

func adIDs(ads []catalog.VideoAd) []string {
	ids := make([]string, len(ads))
	for i, ad := range ads {
		ids[i] = ad.ID
	}
	return ids
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := newClient(t, srv).do(http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSessionCookieIsReused(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	rec := c.do(http.MethodGet, "/api/feed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if len(c.cookies) == 0 {
		t.Fatal("expected a session cookie on first contact")
	}

	rec = c.do(http.MethodGet, "/api/feed", nil)
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("a returning session must not get a new cookie")
	}
}

func TestFeedFollowsCategorySelection(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	var feed feedResponse
	c.getJSON("/api/feed", &feed)
	if feed.Category != catalog.CategoryAll || feed.Total != srv.catalog.Len() {
		t.Fatalf("unexpected default feed: %+v", feed)
	}

	rec := c.do(http.MethodPost, "/api/nav/category/coupons", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	c.getJSON("/api/feed", &feed)
	got := adIDs(feed.Ads)
	if len(got) != 2 || got[0] != "1" || got[1] != "5" {
		t.Fatalf("expected coupon ads 1 and 5, got %v", got)
	}

	if feed.EmptyHint != "" {
		t.Fatalf("a non-empty feed must not carry a reset hint, got %q", feed.EmptyHint)
	}

	rec = c.do(http.MethodPost, "/api/nav/category/vintage", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown category should 400, got %d", rec.Code)
	}
}

func TestFeedEmptyStateCarriesResetHint(t *testing.T) {
	cat, err := catalog.New([]catalog.VideoAd{
		{ID: "1", Title: "Minimal Desk Setup", Brand: catalog.Brand{Name: "Aura"}, Category: "Tech Showcase", Style: catalog.StyleMinimalist, Industry: catalog.IndustryTech},
	})
	if err != nil {
		t.Fatal(err)
	}
	store := session.NewStore("test-secret", time.Hour, nil)
	t.Cleanup(store.Stop)
	srv := New(Config{
		Catalog:        cat,
		Sessions:       store,
		BaseURL:        "http://localhost:8080",
		RateLimit:      1000,
		RateLimitBurst: 1000,
	})
	t.Cleanup(srv.Close)
	c := newClient(t, srv)

	if rec := c.do(http.MethodPost, "/api/nav/category/coupons", nil); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var feed feedResponse
	c.getJSON("/api/feed", &feed)
	if feed.Total != 0 || len(feed.Ads) != 0 {
		t.Fatalf("expected an empty feed, got %+v", feed)
	}
	if feed.EmptyHint == "" {
		t.Fatal("empty feed should carry a reset hint")
	}
}

func TestFeedCarriesLiveCountdown(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	var feed feedResponse
	c.getJSON("/api/feed", &feed)
	for _, ad := range feed.Ads {
		if ad.ID == "1" {
			if ad.TimeLeft == "" {
				t.Fatal("flash deal lost its countdown")
			}
			if _, ok := srv.timers["1"]; !ok {
				t.Fatal("expected a running timer for ad 1")
			}
			return
		}
	}
	t.Fatal("ad 1 missing from feed")
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	var items []categoryItem
	c.getJSON("/api/categories", &items)
	if len(items) != len(catalog.Categories()) {
		t.Fatalf("expected %d categories, got %d", len(catalog.Categories()), len(items))
	}
	if items[0].ID != catalog.CategoryAll || items[0].Label == "" {
		t.Fatalf("unexpected first category %+v", items[0])
	}
}

// navState fetches /api/nav into a fresh struct. A reused struct would
// keep a stale selectedAd across decodes because the field is omitempty.
func navState(t *testing.T, c *client) session.NavState {
	t.Helper()
	var nav session.NavState
	c.getJSON("/api/nav", &nav)
	return nav
}

func TestNavigationFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	rec := c.do(http.MethodPost, "/api/nav/ad/404", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown ad should 404, got %d", rec.Code)
	}
	// The miss response carries the unchanged state.
	var missed session.NavState
	if err := json.Unmarshal(rec.Body.Bytes(), &missed); err != nil {
		t.Fatal(err)
	}
	if missed.View != session.ViewHome || missed.SelectedAd != "" {
		t.Fatalf("failed selection must not move, got %+v", missed)
	}
	if nav := navState(t, c); nav.View != session.ViewHome {
		t.Fatalf("failed selection must not move, got %s", nav.View)
	}

	rec = c.do(http.MethodPost, "/api/nav/ad/2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if nav := navState(t, c); nav.View != session.ViewDetail || nav.SelectedAd != "2" {
		t.Fatalf("expected detail of ad 2, got %+v", nav)
	}

	// Detail cannot be entered without an ad.
	rec = c.do(http.MethodPost, "/api/nav/view/detail", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("direct detail navigation should 400, got %d", rec.Code)
	}

	rec = c.do(http.MethodPost, "/api/nav/view/wallet", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if nav := navState(t, c); nav.View != session.ViewWallet || nav.SelectedAd != "" {
		t.Fatalf("expected wallet with no selection, got %+v", nav)
	}

	rec = c.do(http.MethodPost, "/api/nav/back", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if nav := navState(t, c); nav.View != session.ViewHome {
		t.Fatalf("back should land on home, got %s", nav.View)
	}
}

func TestAdDetail(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	var detail adDetailResponse
	c.getJSON("/api/ads/1", &detail)
	if detail.Ad.ID != "1" || detail.Ad.TimeLeft == "" {
		t.Fatalf("unexpected ad %+v", detail.Ad)
	}
	for _, rel := range detail.Related {
		if rel.ID == "1" {
			t.Fatal("related shelf must not contain the ad itself")
		}
	}

	rec := c.do(http.MethodGet, "/api/ads/404", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown ad should 404, got %d", rec.Code)
	}
}

func TestViewTrackingFeedsDashboard(t *testing.T) {
	srv := newTestServer(t)

	viewerA := newClient(t, srv)
	viewerB := newClient(t, srv)

	for i := 0; i < 2; i++ {
		if rec := viewerA.do(http.MethodPost, "/api/ads/1/view", nil); rec.Code != http.StatusNoContent {
			t.Fatalf("status %d", rec.Code)
		}
	}
	if rec := viewerB.do(http.MethodPost, "/api/ads/2/view", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if rec := viewerA.do(http.MethodPost, "/api/ads/1/cta", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if rec := viewerA.do(http.MethodPost, "/api/ads/404/view", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown ad view should 404, got %d", rec.Code)
	}

	var dash struct {
		Summary struct {
			TotalViews    int64   `json:"totalViews"`
			UniqueViewers int64   `json:"uniqueViewers"`
			CtaClicks     int64   `json:"totalCtaClicks"`
			CtaClickRate  float64 `json:"ctaClickRate"`
		} `json:"summary"`
		TopAds []struct {
			AdID  string `json:"id"`
			Title string `json:"title"`
			Views int64  `json:"views"`
		} `json:"topAds"`
	}
	viewerA.getJSON("/api/merchant/dashboard", &dash)

	if dash.Summary.TotalViews != 3 || dash.Summary.UniqueViewers != 2 || dash.Summary.CtaClicks != 1 {
		t.Fatalf("unexpected summary %+v", dash.Summary)
	}
	if len(dash.TopAds) == 0 || dash.TopAds[0].AdID != "1" || dash.TopAds[0].Views != 2 {
		t.Fatalf("unexpected top ads %+v", dash.TopAds)
	}
	if dash.TopAds[0].Title == "" {
		t.Fatal("top ad should carry its catalog title")
	}
}

func TestMerchantCampaigns(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	var campaigns []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	c.getJSON("/api/merchant/campaigns", &campaigns)
	if len(campaigns) != 4 {
		t.Fatalf("expected 4 seeded campaigns, got %d", len(campaigns))
	}
}

func TestShowroom(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	var room showroomResponse
	c.getJSON("/api/showroom/nike", &room)
	if room.Profile.Slug != "nike" || room.Banner == "" {
		t.Fatalf("unexpected showroom %+v", room.Profile)
	}
	if len(room.Drops) == 0 {
		t.Fatal("expected the brand shelf from the catalog")
	}

	rec := c.do(http.MethodGet, "/api/showroom/acme", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown showroom should 404, got %d", rec.Code)
	}
}

func TestShowroomBannerOverrideIsSessionScoped(t *testing.T) {
	srv := newTestServer(t)
	owner := newClient(t, srv)
	visitor := newClient(t, srv)

	rec := owner.do(http.MethodPost, "/api/showroom/nike/banner", bannerRequest{
		Ref: "upload://portrait.mp4", ContentType: "video/mp4", Width: 720, Height: 1280,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("portrait banner should 400, got %d", rec.Code)
	}

	rec = owner.do(http.MethodPost, "/api/showroom/nike/banner", bannerRequest{
		Ref: "upload://hero.mp4", ContentType: "video/mp4", Width: 1920, Height: 1080,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var room showroomResponse
	owner.getJSON("/api/showroom/nike", &room)
	if room.Banner != "upload://hero.mp4" {
		t.Fatalf("expected banner override, got %s", room.Banner)
	}

	visitor.getJSON("/api/showroom/nike", &room)
	if room.Banner == "upload://hero.mp4" {
		t.Fatal("another session must not see the override")
	}
}

func TestEngagementToggles(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	rec := c.do(http.MethodPost, "/api/engagement/track/Nike", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var toggle toggleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &toggle); err != nil {
		t.Fatal(err)
	}
	if !toggle.On {
		t.Fatal("first toggle should turn tracking on")
	}

	if rec := c.do(http.MethodPost, "/api/engagement/clip/1", nil); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/api/engagement/clip/404", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown deal clip should 404, got %d", rec.Code)
	}

	var snap struct {
		Tracked []string `json:"tracked"`
		Clipped []string `json:"clipped"`
	}
	c.getJSON("/api/engagement", &snap)
	if len(snap.Tracked) != 1 || snap.Tracked[0] != "Nike" {
		t.Fatalf("unexpected tracked %v", snap.Tracked)
	}
	if len(snap.Clipped) != 1 || snap.Clipped[0] != "1" {
		t.Fatalf("unexpected clipped %v", snap.Clipped)
	}

	// Toggling off removes the entry.
	c.do(http.MethodPost, "/api/engagement/track/Nike", nil)
	c.getJSON("/api/engagement", &snap)
	if len(snap.Tracked) != 0 {
		t.Fatalf("expected tracking off, got %v", snap.Tracked)
	}
}

func TestWizardFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	if rec := c.do(http.MethodGet, "/api/wizard", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("no wizard yet, expected 404, got %d", rec.Code)
	}

	rec := c.do(http.MethodPost, "/api/wizard", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var options []struct {
		ID string `json:"id"`
	}
	c.getJSON("/api/wizard/options", &options)
	if len(options) != 8 {
		t.Fatalf("expected 8 campaign types, got %d", len(options))
	}

	if rec := c.do(http.MethodPost, "/api/wizard/type/billboard", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown type should 400, got %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/api/wizard/type/flash", nil); rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if rec := c.do(http.MethodPost, "/api/wizard/type/product", nil); rec.Code != http.StatusConflict {
		t.Fatalf("second type choice should 409, got %d", rec.Code)
	}

	// Metadata omitted: the server probes the reference.
	rec = c.do(http.MethodPost, "/api/wizard/asset", assetRequest{Ref: "upload://clip.mp4"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var state wizard.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatal(err)
	}
	if state.Stage != wizard.StageForm || !state.QualityTiers.HD.Available {
		t.Fatalf("unexpected state after upload: %+v", state)
	}

	// The details gate holds until title and thumbnail exist.
	if rec := c.do(http.MethodPost, "/api/wizard/next", nil); rec.Code != http.StatusConflict {
		t.Fatalf("gate should 409, got %d", rec.Code)
	}
	rec = c.do(http.MethodPatch, "/api/wizard/form", map[string]string{
		"title": "Summer Flash Sale", "thumbnail": "thumb-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var step wizardStepResponse
	for i := 0; i < 3; i++ {
		rec = c.do(http.MethodPost, "/api/wizard/next", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &step); err != nil {
			t.Fatal(err)
		}
	}
	if step.Completed {
		t.Fatal("flow must not complete before visibility")
	}

	rec = c.do(http.MethodPost, "/api/wizard/next", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &step); err != nil {
		t.Fatal(err)
	}
	if !step.Completed {
		t.Fatal("expected completion from visibility")
	}

	if rec := c.do(http.MethodGet, "/api/wizard", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("completed wizard should be gone, got %d", rec.Code)
	}
}

func TestWizardCancel(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	if rec := c.do(http.MethodDelete, "/api/wizard", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("nothing to cancel, expected 404, got %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/api/wizard", nil); rec.Code != http.StatusCreated {
		t.Fatal("could not start wizard")
	}
	if rec := c.do(http.MethodDelete, "/api/wizard", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if rec := c.do(http.MethodGet, "/api/wizard", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("cancelled wizard should be gone, got %d", rec.Code)
	}
}

func TestLimitsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	var limits limitsResponse
	c.getJSON("/api/limits", &limits)
	if limits.MaxDurationSeconds != 180 {
		t.Fatalf("unexpected max duration %v", limits.MaxDurationSeconds)
	}
	if len(limits.Fields) == 0 || limits.Fields["title"] == 0 {
		t.Fatalf("unexpected field limits %v", limits.Fields)
	}
}

func TestWatchPage(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	rec := c.do(http.MethodGet, "/watch/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ClipCart") || !strings.Contains(body, "nonce=") {
		t.Fatal("watch page missing branding or nonce")
	}
	if !strings.Contains(rec.Header().Get("Content-Security-Policy"), "nonce-") {
		t.Fatal("expected CSP nonce header")
	}

	if rec := c.do(http.MethodGet, "/watch/404", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown ad should 404, got %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)
	rec := newClient(t, srv).do(http.MethodGet, "/api/feed", nil)

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing nosniff header")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("plain http must not set HSTS")
	}
}
