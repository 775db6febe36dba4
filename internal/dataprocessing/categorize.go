package dataprocessing

import (
	"strings"

	"adpulse/pkg/contracts/domain"
)

// Categorize classifies a campaign name into a product category by keyword
// matching, first match wins. The priority order matters: a name containing
// both "sub" and "payment" classifies as PaymePlus because that rule is
// checked first.
func Categorize(campaignName string) domain.Category {
	name := strings.ToLower(campaignName)
	switch {
	case strings.Contains(name, "reach"):
		return domain.CategoryReach
	case strings.Contains(name, "paymeplus"), strings.Contains(name, "pfm"), strings.Contains(name, "sub"):
		return domain.CategoryPaymePlus
	case strings.Contains(name, "p2p"), strings.Contains(name, "transfer"):
		return domain.CategoryP2P
	case strings.Contains(name, "payment"):
		return domain.CategoryPayments
	default:
		return domain.CategoryOther
	}
}

// NormalizeSource folds the many spellings ad networks report for themselves
// into the four acquisition channels tracked by the dashboard.
func NormalizeSource(mediaSource string) domain.MediaSource {
	s := strings.ToLower(mediaSource)
	switch {
	case strings.Contains(s, "facebook"), strings.Contains(s, "instagram"), strings.Contains(s, "meta"):
		return domain.SourceFacebook
	case strings.Contains(s, "google"), strings.Contains(s, "youtube"), strings.Contains(s, "gdn"):
		return domain.SourceGoogle
	case strings.Contains(s, "bigo"):
		return domain.SourceBigo
	default:
		return domain.SourceOther
	}
}
