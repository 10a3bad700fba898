package catalog

// Style is the closed set of content styles an ad can carry.
type Style string

const (
	StyleCinematic  Style = "Cinematic"
	StyleUGC        Style = "UGC"
	StyleMinimalist Style = "Minimalist"
	StyleTutorial   Style = "Tutorial"
)

// Industry is the closed set of industry tags.
type Industry string

const (
	IndustryTech    Industry = "Tech"
	IndustryFashion Industry = "Fashion"
	IndustryHome    Industry = "Home"
	IndustryAuto    Industry = "Auto"
	IndustryLuxury  Industry = "Luxury"
)

type Brand struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type FundingProgress struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// VideoAd is a single listing in the catalog. Records are immutable once
// loaded; every view works on copies or derived slices.
type VideoAd struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Brand       Brand            `json:"brand"`
	Thumbnail   string           `json:"thumbnail"`
	VideoURL    string           `json:"videoUrl"`
	Duration    string           `json:"duration"`
	Category    string           `json:"category"`
	Style       Style            `json:"style"`
	CTAText     string           `json:"ctaText"`
	IsShoppable bool             `json:"isShoppable,omitempty"`
	HasCoupon   bool             `json:"hasCoupon,omitempty"`
	Industry    Industry         `json:"industry,omitempty"`
	IsNewDrop   bool             `json:"isNewDrop,omitempty"`
	TimeLeft    string           `json:"timeLeft,omitempty"`
	Location    string           `json:"location,omitempty"`
	Specs       []string         `json:"specs,omitempty"`
	IsAffiliate bool             `json:"isAffiliate,omitempty"`
	Funding     *FundingProgress `json:"fundingProgress,omitempty"`
}
