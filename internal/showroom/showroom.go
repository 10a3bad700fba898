// Package showroom models a brand's storefront page: profile, active
// coupon, and the media slots a merchant can customize. Shelf content
// comes from the catalog; this package owns the brand-level data and the
// banner/logo validation gates.
package showroom

import (
	"errors"
	"strings"
	"sync"
)

type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Profile struct {
	Slug string `json:"slug"`
	Name string `json:"name"`

	// Brand is the catalog brand name behind this showroom. The display
	// name can differ; shelves and tracking key off Brand.
	Brand        string `json:"brand"`
	Logo         string `json:"logo"`
	HeaderVideo  string `json:"headerVideo"`
	Industry     string `json:"industry"`
	Trackers     string `json:"trackers"`
	ActiveCoupon string `json:"activeCoupon,omitempty"`
	Description  string `json:"description"`
	StoreCount   int    `json:"storeCount"`
	FAQ          []QA   `json:"faq"`
}

var profiles = map[string]Profile{
	"nike": {
		Slug:         "nike",
		Name:         "Nike Performance",
		Brand:        "Nike",
		Logo:         "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&w=128&q=80",
		HeaderVideo:  "https://player.vimeo.com/external/494163966.hd.mp4?s=56e6d1c92b95b866c1e550c609c13554b726b216&profile_id=174",
		Industry:     "Fashion & Sports",
		Trackers:     "1.2M",
		ActiveCoupon: "SUMMER20",
		Description:  "Pushing the boundaries of human potential through high-performance footwear and apparel.",
		StoreCount:   3,
		FAQ: []QA{
			{Question: "Do the Phantom Series run true to size?", Answer: "Yes, we recommend ordering your standard athletic shoe size. If you have wide feet, half a size up is suggested for maximum comfort."},
			{Question: "What is the return policy for Drops?", Answer: "All Showroom Drops can be returned within 30 days if clipped with a valid ClipCart signal. Keep the digital receipt in your wallet."},
			{Question: "When is the next colorway releasing?", Answer: "Track our brand to get an instant notification! We have a new colorway dropping next Friday at 10 AM EST."},
		},
	},
}

// For looks up a showroom profile by brand slug.
func For(slug string) (Profile, bool) {
	p, ok := profiles[strings.ToLower(slug)]
	return p, ok
}

var (
	ErrNotVideo     = errors.New("please upload a valid video file")
	ErrNotLandscape = errors.New("please upload a landscape video")
	ErrNotImage     = errors.New("please upload a valid image file")
)

// ValidateBanner gates the showroom header slot: video content only, and
// landscape orientation (portrait clips break the storefront header).
func ValidateBanner(contentType string, width, height int) error {
	if !strings.HasPrefix(contentType, "video/") {
		return ErrNotVideo
	}
	if height > width {
		return ErrNotLandscape
	}
	return nil
}

// ValidateLogo gates the logo slot: image content only.
func ValidateLogo(contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	return nil
}

// Media holds a session's custom banner/logo overrides per brand. A failed
// validation never touches the stored refs.
type Media struct {
	mu      sync.Mutex
	banners map[string]string
	logos   map[string]string
}

func NewMedia() *Media {
	return &Media{
		banners: make(map[string]string),
		logos:   make(map[string]string),
	}
}

// SetBanner validates and stores a custom banner for the brand.
func (m *Media) SetBanner(slug, ref, contentType string, width, height int) error {
	if err := ValidateBanner(contentType, width, height); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banners[slug] = ref
	return nil
}

// SetLogo validates and stores a custom logo for the brand.
func (m *Media) SetLogo(slug, ref, contentType string) error {
	if err := ValidateLogo(contentType); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logos[slug] = ref
	return nil
}

// Banner returns the custom banner ref for the brand, if any.
func (m *Media) Banner(slug string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref, ok := m.banners[slug]
	return ref, ok
}

// Logo returns the custom logo ref for the brand, if any.
func (m *Media) Logo(slug string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref, ok := m.logos[slug]
	return ref, ok
}
