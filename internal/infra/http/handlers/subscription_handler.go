package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/http/middleware"
	"github.com/renoxbert/leadmarket/internal/usecase"
)

type SubscriptionHandler struct {
	Subs          entity.SubscriptionRepository
	CheckoutUC    *usecase.CreateCheckoutUseCase
	CancelUC      *usecase.CancelSubscriptionUseCase
	ActivateUC    *usecase.ActivateSubscriptionUseCase
	Eligibility   usecase.EligibilityChecker
	WebhookSecret string
}

func NewSubscriptionHandler(
	subs entity.SubscriptionRepository,
	checkoutUC *usecase.CreateCheckoutUseCase,
	cancelUC *usecase.CancelSubscriptionUseCase,
	activateUC *usecase.ActivateSubscriptionUseCase,
	eligibility usecase.EligibilityChecker,
	webhookSecret string,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		Subs:          subs,
		CheckoutUC:    checkoutUC,
		CancelUC:      cancelUC,
		ActivateUC:    activateUC,
		Eligibility:   eligibility,
		WebhookSecret: webhookSecret,
	}
}

func (h *SubscriptionHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.ContractorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	subs, err := h.Subs.FindByContractor(r.Context(), contractorID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		return
	}
	if subs == nil {
		subs = []entity.Subscription{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"subscriptions": subs})
}

// HandleEligibility lets the UI decide whether to render "Apply" enabled.
func (h *SubscriptionHandler) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.ContractorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category is required"})
		return
	}

	eligible, err := h.Eligibility.IsEligible(r.Context(), contractorID, category)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"eligible": eligible, "category": category})
}

type checkoutRequest struct {
	Tier       string   `json:"tier"`
	Categories []string `json:"categories"`
}

func (h *SubscriptionHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.ContractorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	output, err := h.CheckoutUC.Execute(r.Context(), usecase.CreateCheckoutInput{
		ContractorID: contractorID,
		TierID:       req.Tier,
		Categories:   req.Categories,
	})
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			middleware.RecordCheckoutSession("rejected")
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": domainErr.Message, "code": domainErr.Code})
			return
		}

		var techErr *usecase.TechnicalError
		if errors.As(err, &techErr) {
			middleware.RecordCheckoutSession("failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"error":      techErr.Message,
				"code":       techErr.Code,
				"request_id": techErr.RequestID,
				"retryable":  techErr.Retryable(),
			})
			return
		}

		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		return
	}

	middleware.RecordCheckoutSession("created")
	writeJSON(w, http.StatusCreated, output)
}

func (h *SubscriptionHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.ContractorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	err := h.CancelUC.Execute(r.Context(), chi.URLParam(r, "subscriptionId"), contractorID)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			status := http.StatusBadRequest
			switch domainErr.Code {
			case "SUBSCRIPTION_NOT_FOUND":
				status = http.StatusNotFound
			case "NOT_OWNER":
				status = http.StatusForbidden
			}
			writeJSON(w, status, map[string]string{"error": domainErr.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "cancel_at_period_end": true})
}

// HandleWebhook receives the payment collaborator's confirmation and turns the
// session metadata back into subscription rows. This is the only write path
// that grants eligibility, so the body must carry a valid HMAC signature; an
// unsigned POST must never create rows. Unknown events are acked with 200 so
// the provider stops retrying them.
func (h *SubscriptionHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad body", http.StatusBadRequest)
		return
	}

	if !validWebhookSignature(body, r.Header.Get("Stripe-Signature"), h.WebhookSecret) {
		log.Printf("[WEBHOOK] rejected request with missing or invalid signature")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID       string            `json:"id"`
				Metadata map[string]string `json:"metadata"`
			} `json:"object"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	if event.Type != "checkout.session.completed" {
		w.WriteHeader(http.StatusOK)
		return
	}

	meta := event.Data.Object.Metadata
	input := usecase.ActivateSubscriptionInput{
		SessionID:    event.Data.Object.ID,
		ContractorID: meta["contractor_id"],
		TierID:       meta["tier_id"],
	}
	if meta["categories"] != "" {
		input.Categories = strings.Split(meta["categories"], ",")
	}

	if input.SessionID == "" || input.ContractorID == "" || input.TierID == "" {
		log.Printf("[WEBHOOK] session %q missing id or metadata, skipping", input.SessionID)
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.ActivateUC.Execute(r.Context(), input); err != nil {
		log.Printf("[WEBHOOK] activation failed for session %s: %v", input.SessionID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// signWebhookBody is the hex HMAC-SHA256 the payment collaborator puts in the
// Stripe-Signature header.
func signWebhookBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func validWebhookSignature(body []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	expected := signWebhookBody(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
