package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the opaque checkout-session collaborator. Subscription rows are
// written only after the payment webhook comes back, never here.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error) {
	endpoint := fmt.Sprintf("%s/v1/checkout/sessions", c.baseURL)

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	form.Set("line_items[0][price_data][currency]", "cad")
	form.Set("line_items[0][price_data][recurring][interval]", "month")
	form.Set("line_items[0][price_data][unit_amount]", strconv.Itoa(input.PriceCents))
	form.Set("line_items[0][price_data][product_data][name]", input.TierName)
	form.Set("line_items[0][quantity]", "1")
	// Metadata round-trips through the webhook so activation knows what to grant.
	form.Set("metadata[contractor_id]", input.ContractorID)
	form.Set("metadata[tier_id]", input.TierID)
	form.Set("metadata[categories]", strings.Join(input.Categories, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("stripe checkout session failed (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("stripe checkout session failed (status %d)", resp.StatusCode)
	}

	var session checkoutSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("stripe decode failed: %w", err)
	}

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}
