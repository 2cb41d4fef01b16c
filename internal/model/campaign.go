package model

// CampaignType is the closed set of campaign families a schedule slot can request.
type CampaignType string

const (
	CampaignTypePrimary           CampaignType = "Primary Campaign"
	CampaignTypeFollowUp          CampaignType = "Follow-up"
	CampaignTypePremiumDrop       CampaignType = "Premium Drop"
	CampaignTypeWeeklyRecap       CampaignType = "Weekly Recap"
	CampaignTypePopup             CampaignType = "Popup Campaign"
	CampaignTypeContentGeneration CampaignType = "Content Generation"
)

// CampaignTypes lists every known campaign type in display order.
var CampaignTypes = []CampaignType{
	CampaignTypePrimary,
	CampaignTypeFollowUp,
	CampaignTypePremiumDrop,
	CampaignTypeWeeklyRecap,
	CampaignTypePopup,
	CampaignTypeContentGeneration,
}

// Known reports whether t is one of the enumerated campaign types.
func (t CampaignType) Known() bool {
	for _, k := range CampaignTypes {
		if k == t {
			return true
		}
	}
	return false
}

// CampaignStrategy is the caller-supplied description of what the campaign should achieve.
type CampaignStrategy struct {
	Description        string  `json:"description"`
	PrimaryAudience    string  `json:"primaryAudience"`
	ContentType        string  `json:"contentType"`
	CustomInstructions *string `json:"customInstructions,omitempty"`
}

// Product is the product or segment the campaign promotes.
type Product struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Category     string   `json:"category,omitempty"`
	ProductNames []string `json:"productNames,omitempty"`
}

// BrandCandidates returns the names used for brand resolution.
func (p Product) BrandCandidates() []string {
	if len(p.ProductNames) > 0 {
		return p.ProductNames
	}
	return []string{p.Name}
}
