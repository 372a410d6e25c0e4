package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/http/middleware"
	"github.com/renoxbert/leadmarket/internal/usecase"
)

type LeadHandler struct {
	CreateUC    *usecase.CreateLeadUseCase
	ListUC      *usecase.ListLeadsUseCase
	Leads       entity.LeadRepository
	rateLimiter *RateLimiter
}

func NewLeadHandler(createUC *usecase.CreateLeadUseCase, listUC *usecase.ListLeadsUseCase, leads entity.LeadRepository) *LeadHandler {
	return &LeadHandler{
		CreateUC:    createUC,
		ListUC:      listUC,
		Leads:       leads,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 submissions/min per IP
	}
}

type createLeadErrorResponse struct {
	Success     bool                      `json:"success"`
	Error       string                    `json:"error"`
	Code        string                    `json:"code,omitempty"`
	RequestID   string                    `json:"request_id,omitempty"`
	FieldErrors []usecase.ValidationError `json:"field_errors,omitempty"`
}

// HandleCreate is the public homeowner submit endpoint.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, createLeadErrorResponse{
			Error: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, createLeadErrorResponse{Error: "Invalid JSON"})
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		var fieldErrs usecase.ValidationErrors
		if errors.As(err, &fieldErrs) {
			writeJSON(w, http.StatusBadRequest, createLeadErrorResponse{
				Error:       "Validation failed",
				Code:        "VALIDATION_ERROR",
				FieldErrors: fieldErrs,
			})
			return
		}

		var techErr *usecase.TechnicalError
		if errors.As(err, &techErr) {
			writeJSON(w, http.StatusInternalServerError, createLeadErrorResponse{
				Error:     "Something went wrong, try again",
				Code:      techErr.Code,
				RequestID: techErr.RequestID,
			})
			return
		}

		writeJSON(w, http.StatusInternalServerError, createLeadErrorResponse{Error: "Something went wrong, try again"})
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, output)
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")

	lead, err := h.Leads.FindByID(r.Context(), leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// HandleList serves the contractor browse view. All filters are optional
// query params; invalid budget numbers are rejected rather than ignored.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := entity.LeadFilters{
		Query:    q.Get("q"),
		Trade:    q.Get("trade"),
		City:     q.Get("city"),
		Province: q.Get("province"),
	}

	var parseErr error
	filters.MinBudget, parseErr = parseOptionalInt(q.Get("min_budget"))
	if parseErr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "min_budget must be a number"})
		return
	}
	filters.MaxBudget, parseErr = parseOptionalInt(q.Get("max_budget"))
	if parseErr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "max_budget must be a number"})
		return
	}

	leads, err := h.ListUC.Execute(r.Context(), filters)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong, try again"})
		return
	}
	if leads == nil {
		leads = []entity.Lead{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"leads": leads})
}

func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// getClientIP keys the rate limiter on the socket address. Forwarded headers
// are client-controlled and would hand out a fresh bucket per request.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
