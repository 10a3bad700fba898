package merchant

import "testing"

const (
	chromeDesktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	safariMobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
)

func TestRecorderSummary(t *testing.T) {
	r := NewRecorder()

	r.RecordView("1", "viewer-a", chromeDesktopUA)
	r.RecordView("1", "viewer-a", chromeDesktopUA)
	r.RecordView("2", "viewer-b", safariMobileUA)
	r.RecordCTAClick("1")

	d := r.Snapshot(nil)
	if d.Summary.TotalViews != 3 {
		t.Errorf("expected 3 views, got %d", d.Summary.TotalViews)
	}
	if d.Summary.UniqueViewers != 2 {
		t.Errorf("expected 2 unique viewers, got %d", d.Summary.UniqueViewers)
	}
	if d.Summary.TotalCtaClicks != 1 {
		t.Errorf("expected 1 CTA click, got %d", d.Summary.TotalCtaClicks)
	}
	if d.Summary.CtaClickRate != 33.3 {
		t.Errorf("expected CTA rate 33.3, got %v", d.Summary.CtaClickRate)
	}
}

func TestRecorderTopAdsOrderedByViews(t *testing.T) {
	r := NewRecorder()

	r.RecordView("2", "a", chromeDesktopUA)
	r.RecordView("2", "b", chromeDesktopUA)
	r.RecordView("1", "a", chromeDesktopUA)

	lookup := func(id string) (string, bool) {
		titles := map[string]string{"1": "Phantom Series", "2": "Roadster Edit"}
		title, ok := titles[id]
		return title, ok
	}

	d := r.Snapshot(lookup)
	if len(d.TopAds) != 2 {
		t.Fatalf("expected 2 top ads, got %d", len(d.TopAds))
	}
	if d.TopAds[0].ID != "2" || d.TopAds[0].Title != "Roadster Edit" {
		t.Errorf("expected ad 2 first, got %+v", d.TopAds[0])
	}
	if d.TopAds[0].Views != 2 || d.TopAds[0].UniqueViewers != 2 {
		t.Errorf("unexpected ad 2 stats: %+v", d.TopAds[0])
	}
}

func TestRecorderBreakdowns(t *testing.T) {
	r := NewRecorder()

	r.RecordView("1", "a", chromeDesktopUA)
	r.RecordView("1", "b", chromeDesktopUA)
	r.RecordView("1", "c", safariMobileUA)

	d := r.Snapshot(nil)

	if len(d.Devices) != 2 {
		t.Fatalf("expected 2 device classes, got %v", d.Devices)
	}
	if d.Devices[0].Name != "Desktop" || d.Devices[0].Percentage != 66.7 {
		t.Errorf("unexpected top device: %+v", d.Devices[0])
	}
	if d.Devices[1].Name != "Mobile" || d.Devices[1].Percentage != 33.3 {
		t.Errorf("unexpected second device: %+v", d.Devices[1])
	}

	foundChrome := false
	for _, b := range d.Browsers {
		if b.Name == "Chrome" {
			foundChrome = true
		}
	}
	if !foundChrome {
		t.Errorf("expected Chrome in browser breakdown, got %v", d.Browsers)
	}
}

func TestRecorderEmpty(t *testing.T) {
	r := NewRecorder()
	d := r.Snapshot(nil)

	if d.Summary.TotalViews != 0 || d.Summary.CtaClickRate != 0 {
		t.Errorf("unexpected summary for empty recorder: %+v", d.Summary)
	}
	if len(d.TopAds) != 0 || len(d.Browsers) != 0 {
		t.Error("expected empty lists for empty recorder")
	}
	if len(d.Campaigns) != 4 {
		t.Errorf("expected 4 seeded campaigns, got %d", len(d.Campaigns))
	}
}

func TestCampaignsSeed(t *testing.T) {
	cs := Campaigns()
	if len(cs) != 4 {
		t.Fatalf("expected 4 campaigns, got %d", len(cs))
	}
	if cs[0].Status != StatusActive || cs[2].Status != StatusDraft {
		t.Errorf("unexpected statuses: %v, %v", cs[0].Status, cs[2].Status)
	}
}
