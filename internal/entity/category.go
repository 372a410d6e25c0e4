package entity

import "errors"

var ErrTierNotFound = errors.New("tier not found")

// Categories is the trade taxonomy shared by leads and subscriptions.
var Categories = []string{
	"Roofing",
	"Plumbing",
	"Electrical",
	"HVAC",
	"Painting",
	"Flooring",
	"Carpentry",
	"Kitchen Renovation",
	"Bathroom Renovation",
	"Basement Renovation",
	"Landscaping",
	"Windows & Doors",
	"General Renovation",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Tier is a pricing plan. CategoryAllowance caps how many categories a
// contractor may pick when subscribing; AllCategories tiers ignore the pick
// and get a single wildcard subscription row.
type Tier struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	MonthlyPriceCents int    `json:"monthly_price_cents"`
	CategoryAllowance int    `json:"category_allowance"`
	MonthlyLeadLimit  int    `json:"monthly_lead_limit"` // 0 = unlimited
	AllCategories     bool   `json:"all_categories"`
}

var tiers = map[string]Tier{
	"handyman": {
		ID:                "handyman",
		Name:              "Handyman",
		MonthlyPriceCents: 4900,
		CategoryAllowance: 3,
		MonthlyLeadLimit:  10,
	},
	"renovation_xbert": {
		ID:                "renovation_xbert",
		Name:              "Renovation Xbert",
		MonthlyPriceCents: 9900,
		CategoryAllowance: 6,
		MonthlyLeadLimit:  25,
	},
	"general_contractor": {
		ID:                "general_contractor",
		Name:              "General Contractor",
		MonthlyPriceCents: 19900,
		AllCategories:     true,
	},
}

func TierByID(id string) (Tier, error) {
	t, ok := tiers[id]
	if !ok {
		return Tier{}, ErrTierNotFound
	}
	return t, nil
}
