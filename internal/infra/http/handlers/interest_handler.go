package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/http/middleware"
	"github.com/renoxbert/leadmarket/internal/usecase"
)

type InterestHandler struct {
	SaveUC    *usecase.SaveInterestUseCase
	Interests entity.InterestRepository
}

func NewInterestHandler(saveUC *usecase.SaveInterestUseCase, interests entity.InterestRepository) *InterestHandler {
	return &InterestHandler{
		SaveUC:    saveUC,
		Interests: interests,
	}
}

type saveInterestRequest struct {
	Type    entity.InterestType `json:"type"`
	Message string              `json:"message,omitempty"`
}

func (h *InterestHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.ContractorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req saveInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Invalid JSON"})
		return
	}

	output, err := h.SaveUC.Execute(r.Context(), usecase.SaveInterestInput{
		ContractorID: contractorID,
		LeadID:       chi.URLParam(r, "leadId"),
		Type:         req.Type,
		Message:      req.Message,
	})
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			status := http.StatusBadRequest
			if domainErr.Code == "LEAD_NOT_FOUND" {
				status = http.StatusNotFound
			}
			writeJSON(w, status, map[string]interface{}{"success": false, "error": domainErr.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "error": "Something went wrong, try again"})
		return
	}

	middleware.RecordInterest(string(req.Type))
	writeJSON(w, http.StatusOK, output)
}

func (h *InterestHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := middleware.ContractorID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	interests, err := h.Interests.ListByContractor(r.Context(), contractorID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		return
	}
	if interests == nil {
		interests = []entity.Interest{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"interests": interests})
}
