package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed catalog.json
var seedJSON []byte

// Catalog is the ordered, read-only set of video ads every view renders
// from. It is populated once at startup and never mutated afterward, so it
// is safe for concurrent readers.
type Catalog struct {
	ads  []VideoAd
	byID map[string]int
}

// New builds a catalog from an ordered ad list. Insertion order is the
// default feed order. IDs must be unique.
func New(ads []VideoAd) (*Catalog, error) {
	byID := make(map[string]int, len(ads))
	for i, ad := range ads {
		if ad.ID == "" {
			return nil, fmt.Errorf("ad at position %d has no id", i)
		}
		if _, dup := byID[ad.ID]; dup {
			return nil, fmt.Errorf("duplicate ad id %q", ad.ID)
		}
		byID[ad.ID] = i
	}
	return &Catalog{ads: ads, byID: byID}, nil
}

// Load builds the catalog from the embedded seed data.
func Load() (*Catalog, error) {
	var ads []VideoAd
	if err := json.Unmarshal(seedJSON, &ads); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	return New(ads)
}

// Ads returns the full catalog in feed order. The returned slice is a copy;
// the catalog itself stays immutable.
func (c *Catalog) Ads() []VideoAd {
	out := make([]VideoAd, len(c.ads))
	copy(out, c.ads)
	return out
}

// Len reports the number of ads in the catalog.
func (c *Catalog) Len() int {
	return len(c.ads)
}

// Get looks up an ad by id. A miss is a normal outcome the caller guards
// on, not an error.
func (c *Catalog) Get(id string) (VideoAd, bool) {
	i, ok := c.byID[id]
	if !ok {
		return VideoAd{}, false
	}
	return c.ads[i], true
}

// Filtered returns the ads matching the category in feed order.
func (c *Catalog) Filtered(cat Category) []VideoAd {
	return Filter(c.ads, cat)
}

// Related returns every ad except the given one, in feed order. An unknown
// id yields the full catalog, which matches how the player renders its
// side rail.
func (c *Catalog) Related(id string) []VideoAd {
	out := make([]VideoAd, 0, len(c.ads))
	for _, ad := range c.ads {
		if ad.ID != id {
			out = append(out, ad)
		}
	}
	return out
}

// ByStyle returns the ads with the given content style, in feed order.
func (c *Catalog) ByStyle(s Style) []VideoAd {
	out := make([]VideoAd, 0, len(c.ads))
	for _, ad := range c.ads {
		if ad.Style == s {
			out = append(out, ad)
		}
	}
	return out
}

// NewDrops returns the ads flagged as new drops, in feed order.
func (c *Catalog) NewDrops() []VideoAd {
	out := make([]VideoAd, 0, len(c.ads))
	for _, ad := range c.ads {
		if ad.IsNewDrop {
			out = append(out, ad)
		}
	}
	return out
}

// ByBrand returns the ads belonging to the named brand, in feed order.
func (c *Catalog) ByBrand(name string) []VideoAd {
	out := make([]VideoAd, 0, len(c.ads))
	for _, ad := range c.ads {
		if ad.Brand.Name == name {
			out = append(out, ad)
		}
	}
	return out
}
