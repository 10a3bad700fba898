package merchant

// CampaignStatus is the closed set of campaign lifecycle labels shown in
// the portal.
type CampaignStatus string

const (
	StatusActive  CampaignStatus = "Active"
	StatusDraft   CampaignStatus = "Draft"
	StatusExpired CampaignStatus = "Expired"
	StatusSoldOut CampaignStatus = "Sold Out"
)

// Campaign is one row of the merchant portal's campaign table. Metric
// fields are pre-formatted display strings supplied with the record.
type Campaign struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Type   string         `json:"type"`
	Status CampaignStatus `json:"status"`
	Views  string         `json:"views"`
	Clips  string         `json:"clips"`
	CTR    string         `json:"ctr"`
	Spend  string         `json:"spend"`
}

// Campaigns returns the demo campaign table in display order.
func Campaigns() []Campaign {
	return []Campaign{
		{ID: "1", Title: "Summer Collection 2024", Type: "Flash Deal", Status: StatusActive, Views: "1.2M", Clips: "8.4k", CTR: "12.4%", Spend: "$4,200"},
		{ID: "2", Title: "Phantom Series Launch", Type: "Showcase", Status: StatusActive, Views: "2.4M", Clips: "12k", CTR: "18.2%", Spend: "$8,900"},
		{ID: "3", Title: "Soho Pop-up Event", Type: "Event", Status: StatusDraft, Views: "0", Clips: "0", CTR: "0%", Spend: "$0"},
		{ID: "4", Title: "Q1 Tech Teasers", Type: "Trailer", Status: StatusExpired, Views: "840k", Clips: "4.2k", CTR: "9.8%", Spend: "$2,100"},
	}
}
