package merchant

import (
	"math"
	"sort"
	"sync"

	"github.com/mssola/useragent"
)

type adStats struct {
	views     int64
	ctaClicks int64
	viewers   map[string]struct{}
}

// Recorder accumulates view and CTA-click events for the merchant
// dashboard. Everything lives in memory for the process lifetime; there is
// no persistence behind it.
type Recorder struct {
	mu       sync.Mutex
	perAd    map[string]*adStats
	viewers  map[string]struct{}
	browsers map[string]int64
	devices  map[string]int64

	totalViews int64
	totalCTA   int64
}

func NewRecorder() *Recorder {
	return &Recorder{
		perAd:    make(map[string]*adStats),
		viewers:  make(map[string]struct{}),
		browsers: make(map[string]int64),
		devices:  make(map[string]int64),
	}
}

func (r *Recorder) stats(adID string) *adStats {
	s, ok := r.perAd[adID]
	if !ok {
		s = &adStats{viewers: make(map[string]struct{})}
		r.perAd[adID] = s
	}
	return s
}

// RecordView counts one playback. viewerID deduplicates unique viewers;
// the user agent feeds the browser/device breakdowns.
func (r *Recorder) RecordView(adID, viewerID, userAgentString string) {
	browser, device := classifyAgent(userAgentString)

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.stats(adID)
	s.views++
	r.totalViews++
	if viewerID != "" {
		s.viewers[viewerID] = struct{}{}
		r.viewers[viewerID] = struct{}{}
	}
	r.browsers[browser]++
	r.devices[device]++
}

// RecordCTAClick counts one call-to-action click.
func (r *Recorder) RecordCTAClick(adID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats(adID).ctaClicks++
	r.totalCTA++
}

func classifyAgent(uaString string) (browser, device string) {
	if uaString == "" {
		return "Unknown", "Unknown"
	}
	ua := useragent.New(uaString)
	browser, _ = ua.Browser()
	if browser == "" {
		browser = "Unknown"
	}
	switch {
	case ua.Bot():
		device = "Bot"
	case ua.Mobile():
		device = "Mobile"
	default:
		device = "Desktop"
	}
	return browser, device
}

type Summary struct {
	TotalViews     int64   `json:"totalViews"`
	UniqueViewers  int64   `json:"uniqueViewers"`
	TotalCtaClicks int64   `json:"totalCtaClicks"`
	CtaClickRate   float64 `json:"ctaClickRate"`
}

type TopAd struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Views         int64  `json:"views"`
	UniqueViewers int64  `json:"uniqueViewers"`
	CtaClicks     int64  `json:"ctaClicks"`
}

type BreakdownItem struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

type Dashboard struct {
	Summary   Summary         `json:"summary"`
	TopAds    []TopAd         `json:"topAds"`
	Browsers  []BreakdownItem `json:"browsers"`
	Devices   []BreakdownItem `json:"devices"`
	Campaigns []Campaign      `json:"campaigns"`
}

// TitleLookup resolves an ad id to its display title for the top list.
type TitleLookup func(adID string) (string, bool)

// Snapshot assembles the dashboard from the recorded events.
func (r *Recorder) Snapshot(lookup TitleLookup) Dashboard {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := Dashboard{
		Summary: Summary{
			TotalViews:     r.totalViews,
			UniqueViewers:  int64(len(r.viewers)),
			TotalCtaClicks: r.totalCTA,
		},
		TopAds:    []TopAd{},
		Campaigns: Campaigns(),
	}
	if r.totalViews > 0 {
		rate := float64(r.totalCTA) / float64(r.totalViews) * 100
		d.Summary.CtaClickRate = math.Round(rate*10) / 10
	}

	for adID, s := range r.perAd {
		title := adID
		if lookup != nil {
			if t, ok := lookup(adID); ok {
				title = t
			}
		}
		d.TopAds = append(d.TopAds, TopAd{
			ID:            adID,
			Title:         title,
			Views:         s.views,
			UniqueViewers: int64(len(s.viewers)),
			CtaClicks:     s.ctaClicks,
		})
	}
	sort.Slice(d.TopAds, func(i, j int) bool {
		if d.TopAds[i].Views != d.TopAds[j].Views {
			return d.TopAds[i].Views > d.TopAds[j].Views
		}
		return d.TopAds[i].ID < d.TopAds[j].ID
	})

	d.Browsers = breakdown(r.browsers, r.totalViews)
	d.Devices = breakdown(r.devices, r.totalViews)
	return d
}

func breakdown(counts map[string]int64, total int64) []BreakdownItem {
	items := make([]BreakdownItem, 0, len(counts))
	if total == 0 {
		return items
	}
	for name, count := range counts {
		pct := float64(count) / float64(total) * 100
		items = append(items, BreakdownItem{Name: name, Percentage: math.Round(pct*10) / 10})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Percentage != items[j].Percentage {
			return items[i].Percentage > items[j].Percentage
		}
		return items[i].Name < items[j].Name
	})
	return items
}
