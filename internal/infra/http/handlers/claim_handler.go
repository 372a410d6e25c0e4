package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/renoxbert/leadmarket/internal/infra/http/middleware"
	"github.com/renoxbert/leadmarket/internal/usecase"
)

type ClaimHandler struct {
	ClaimUC *usecase.ClaimLeadUseCase
}

func NewClaimHandler(claimUC *usecase.ClaimLeadUseCase) *ClaimHandler {
	return &ClaimHandler{ClaimUC: claimUC}
}

type claimRequest struct {
	Message string `json:"message,omitempty"`
}

// Handle maps the four arbitration outcomes to distinct statuses so the UI can
// tell "you got it", "someone else got it", "you need a subscription" and
// "try again" apart.
func (h *ClaimHandler) Handle(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.ContractorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req claimRequest
	if r.Body != nil {
		// Body is optional; a bare POST claims without a message.
		json.NewDecoder(r.Body).Decode(&req)
	}

	output, err := h.ClaimUC.Execute(r.Context(), usecase.ClaimLeadInput{
		LeadID:       chi.URLParam(r, "leadId"),
		ContractorID: contractorID,
		Message:      req.Message,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		return
	}

	if output.Claimed {
		middleware.RecordClaim("won")
		writeJSON(w, http.StatusOK, output)
		return
	}

	middleware.RecordClaim(output.Reason)
	switch output.Reason {
	case usecase.ReasonLeadNotFound:
		writeJSON(w, http.StatusNotFound, output)
	case usecase.ReasonAlreadyClaimed:
		writeJSON(w, http.StatusConflict, output)
	case usecase.ReasonNotSubscribed:
		writeJSON(w, http.StatusForbidden, output)
	default:
		writeJSON(w, http.StatusInternalServerError, output)
	}
}
