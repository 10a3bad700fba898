package wizard

import "fmt"

// CampaignType identifies one of the creation options offered on the
// wizard's first screen. Chosen once per session, immutable afterward.
type CampaignType string

const (
	TypeFlash      CampaignType = "flash"
	TypeProduct    CampaignType = "product"
	TypeCrowd      CampaignType = "crowd"
	TypeEvent      CampaignType = "event"
	TypeService    CampaignType = "service"
	TypeJobs       CampaignType = "jobs"
	TypeTrailers   CampaignType = "trailers"
	TypeInfluencer CampaignType = "influencer"
)

type Option struct {
	ID   CampaignType `json:"id"`
	Name string       `json:"name"`
	Desc string       `json:"desc"`
}

// Options lists the creation choices in display order.
func Options() []Option {
	return []Option{
		{ID: TypeFlash, Name: "Flash Deal", Desc: "Live countdown for limited offers"},
		{ID: TypeProduct, Name: "Product Showcase", Desc: "Technical specifications and product features"},
		{ID: TypeCrowd, Name: "Crowdfunding", Desc: "Track goal progress and backers"},
		{ID: TypeEvent, Name: "Local Event", Desc: "Pin interactive location for visitors"},
		{ID: TypeService, Name: "Service Demo", Desc: "Direct booking link for clients"},
		{ID: TypeJobs, Name: "Jobs & Hiring", Desc: "Quick application for active roles"},
		{ID: TypeTrailers, Name: "Trailers & Teasers", Desc: "Set reminders for upcoming launches"},
		{ID: TypeInfluencer, Name: "Influencer Promo", Desc: "Verified tags for affiliate partners"},
	}
}

// ParseCampaignType validates a creation-option id.
func ParseCampaignType(s string) (CampaignType, error) {
	for _, opt := range Options() {
		if opt.ID == CampaignType(s) {
			return opt.ID, nil
		}
	}
	return "", fmt.Errorf("unknown campaign type %q", s)
}
