package domain

// Category classifies a campaign into one of the product lines promoted
// by the marketing team. Classification is keyword based, see
// internal/dataprocessing.Categorize.
type Category string

const (
	CategoryReach     Category = "Reach"
	CategoryPaymePlus Category = "PaymePlus"
	CategoryP2P       Category = "P2P"
	CategoryPayments  Category = "Payments"
	CategoryOther     Category = "Other"
)

// Categories lists the four product categories, excluding Other.
// Used for portfolio split calculations.
var Categories = []Category{CategoryP2P, CategoryPaymePlus, CategoryPayments, CategoryReach}

// MediaSource is the normalized acquisition channel of a campaign.
type MediaSource string

const (
	SourceFacebook MediaSource = "Facebook"
	SourceGoogle   MediaSource = "Google"
	SourceBigo     MediaSource = "Bigo"
	SourceOther    MediaSource = "Other"
)

// CampaignSummary is one ranked row of the campaign performance table.
// Rank and PIScore are table-wide derived fields: they are only meaningful
// relative to the full set of campaigns they were computed with.
type CampaignSummary struct {
	ID               string      `json:"id"`
	Rank             int         `json:"rank"`
	Category         Category    `json:"category"`
	CampaignName     string      `json:"campaignName"`
	MediaSource      string      `json:"mediaSource"`
	NormalizedSource MediaSource `json:"normalizedSource"`
	Cost             float64     `json:"cost"`
	Revenue          float64     `json:"revenue"`
	Profit           float64     `json:"profit"`
	ROAS             float64     `json:"roas"`
	Installs         float64     `json:"installs"`
	Cards            float64     `json:"cards"`
	CPACards         float64     `json:"cpaCards"`
	Subs             float64     `json:"subs"`
	CPASubs          float64     `json:"cpaSubs"`
	CPI              float64     `json:"cpi"`
	PIScore          float64     `json:"piScore"`
}

// SummaryResult is the response body of the summary endpoint.
type SummaryResult struct {
	Campaigns  []CampaignSummary `json:"campaigns"`
	Metrics    *PortfolioMetrics `json:"metrics,omitempty"`
	Benchmarks *Benchmarks       `json:"benchmarks,omitempty"`
}
