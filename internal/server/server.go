// Package server exposes the installment calculator as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/datetime"
	"github.com/iwvelando/installment-calculator/pkg/format"
	"github.com/iwvelando/installment-calculator/pkg/installment"
	"github.com/iwvelando/installment-calculator/pkg/output"
	"github.com/iwvelando/installment-calculator/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	now            func() time.Time
}

// NewHandler constructs the HTTP handler that serves the plan API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	h := newHandler(logger, int64(cfg.MaxRequestSize), version)

	mux := http.NewServeMux()

	// Plan API endpoint, JSON body (POST) or query string (GET)
	mux.HandleFunc("/api/plan", h.handlePlan)

	// Term table for populating selectors
	mux.HandleFunc("/api/terms", h.handleTerms)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return newRateLimiter(logger, cfg.RateLimitPerMinute, cfg.RateLimitBurst).Wrap(mux)
}

func newHandler(logger *zap.Logger, maxRequestSize int64, version string) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	return &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion, now: time.Now}
}

type planRequest struct {
	CashPrice interface{} `json:"cashPrice"`
	Weeks     *int        `json:"weeks"`
	StartDate string      `json:"startDate"`
}

type planResponse struct {
	output.Report
	CSV      string   `json:"csv"`
	Warnings []string `json:"warnings,omitempty"`
	Duration string   `json:"duration"`
}

type termInfo struct {
	Weeks      int             `json:"weeks"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Label      string          `json:"label"`
}

// requestError carries the HTTP status for a rejected plan request.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(msg string, args ...interface{}) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(msg, args...)}
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePlan"
	start := time.Now()

	var (
		req planRequest
		err error
	)
	switch r.Method {
	case http.MethodGet:
		req, err = planRequestFromQuery(r)
	case http.MethodPost:
		req, err = h.planRequestFromBody(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	result, warnings, err := h.computePlan(req)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	elapsed := time.Since(start)
	for _, warning := range warnings {
		h.logger.Warn(warning, zap.String("op", op))
	}
	h.logger.Info("plan computed",
		zap.String("op", op),
		zap.Int("weeks", result.Term),
		zap.Bool("dated", result.StartDate != nil),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, planResponse{
		Report:   output.NewReport(result),
		CSV:      output.CsvString(result),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func planRequestFromQuery(r *http.Request) (planRequest, error) {
	query := r.URL.Query()
	req := planRequest{
		CashPrice: query.Get("cashPrice"),
		StartDate: query.Get("startDate"),
	}
	if raw := strings.TrimSpace(query.Get("weeks")); raw != "" {
		weeks, err := strconv.Atoi(raw)
		if err != nil {
			return req, badRequest("invalid weeks %q: expected an integer", raw)
		}
		req.Weeks = &weeks
	}
	return req, nil
}

func (h *handler) planRequestFromBody(w http.ResponseWriter, r *http.Request) (planRequest, error) {
	var req planRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return req, &requestError{
				status: http.StatusRequestEntityTooLarge,
				msg:    fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize),
			}
		}
		return req, badRequest("failed to decode plan request: %v", err)
	}
	return req, nil
}

func (h *handler) computePlan(req planRequest) (installment.PlanResult, []string, error) {
	weeks := constants.DefaultTermWeeks
	if req.Weeks != nil {
		weeks = *req.Weeks
	}

	var warnings []string
	warning, err := validation.ValidateTerm(weeks)
	if err != nil {
		return installment.PlanResult{}, nil, badRequest("%v", err)
	}
	if warning != "" {
		warnings = append(warnings, warning)
	}

	startDate, err := datetime.ParseOptionalDate(req.StartDate)
	if err != nil {
		return installment.PlanResult{}, nil, badRequest("%v", err)
	}
	if startDate != nil {
		if err := datetime.ValidateStartDate(*startDate, h.now()); err != nil {
			return installment.PlanResult{}, nil, badRequest("%v", err)
		}
	}

	result, err := installment.Compute(installment.PlanInput{
		CashPrice: coerceCashPrice(req.CashPrice),
		Term:      weeks,
		StartDate: startDate,
	})
	if err != nil {
		return installment.PlanResult{}, nil, badRequest("%v", err)
	}
	return result, warnings, nil
}

func (h *handler) handleTerms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	terms := installment.Terms()
	infos := make([]termInfo, 0, len(terms))
	for _, term := range terms {
		m := installment.Multiplier(term)
		infos = append(infos, termInfo{Weeks: term, Multiplier: m, Label: format.Multiplier(m)})
	}
	h.writeJSON(w, http.StatusOK, infos)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondRequestError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		status = reqErr.status
	}
	h.respondErrorWithOp(w, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("plan request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// coerceCashPrice turns whatever the client sent as a price into a
// non-negative amount; anything unusable becomes zero.
func coerceCashPrice(value interface{}) decimal.Decimal {
	switch v := value.(type) {
	case string:
		return installment.ParseCashPrice(v)
	case json.Number:
		return installment.ParseCashPrice(v.String())
	}
	return decimal.Zero
}
