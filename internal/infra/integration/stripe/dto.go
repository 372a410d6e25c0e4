package stripe

// CheckoutSessionInput is what the core hands the payment collaborator; the
// client maps it to Stripe's form encoding.
type CheckoutSessionInput struct {
	ContractorID string
	TierID       string
	TierName     string
	Categories   []string
	PriceCents   int
	SuccessURL   string
	CancelURL    string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
