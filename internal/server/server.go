// Package server exposes the engines over a JSON HTTP API. Handlers load
// records through a narrow Store interface, capture the current time once,
// and run the pure computations against that moment.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/cadence"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/csvio"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/pipeline"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/projection"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/schedule"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/storage"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/money"
)

// Store is the slice of the storage layer the API needs.
type Store interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	ListOpportunities(ctx context.Context) ([]model.Opportunity, error)
	TouchAccount(ctx context.Context, id, action, details string, now time.Time) error
}

type handler struct {
	logger  *zap.Logger
	store   Store
	version string
}

// NewHandler constructs the HTTP handler that serves the collections API.
func NewHandler(store Store, logger *zap.Logger, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, store: store, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/accounts", h.handleAccounts)
	mux.HandleFunc("/api/accounts/", h.handleTouch)
	mux.HandleFunc("/api/projection", h.handleProjection)
	mux.HandleFunc("/api/forecast", h.handleForecast)
	mux.HandleFunc("/api/export", h.handleExport)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

type badgeView struct {
	Label string `json:"label"`
	Tier  string `json:"tier"`
}

type accountView struct {
	ID              string     `json:"id"`
	Merchant        string     `json:"merchant"`
	Client          string     `json:"client,omitempty"`
	Status          string     `json:"status"`
	StartDate       string     `json:"startDate,omitempty"`
	Amount          string     `json:"amount,omitempty"`
	Type            string     `json:"type,omitempty"`
	Frequency       string     `json:"frequency,omitempty"`
	IncreaseDate    string     `json:"increaseDate,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	AddedDate       string     `json:"addedDate,omitempty"`
	LastTouched     string     `json:"lastTouched,omitempty"`
	AgeDays         int        `json:"ageDays"`
	Priority        string     `json:"priority"`
	NextDueDate     string     `json:"nextDueDate"`
	DueThisWeek     bool       `json:"dueThisWeek"`
	NextFollowUp    string     `json:"nextFollowUp"`
	FollowUpStatus  badgeView  `json:"followUpStatus"`
	FollowUpOverdue bool       `json:"followUpOverdue"`
	TouchBadge      badgeView  `json:"touchBadge"`
	IncreaseBadge   *badgeView `json:"increaseBadge,omitempty"`
}

func toBadgeView(b cadence.Badge) badgeView {
	return badgeView{Label: b.Label, Tier: string(b.Tier)}
}

func buildAccountView(a model.Account, now time.Time) accountView {
	view := accountView{
		ID:              a.ID,
		Merchant:        a.Merchant,
		Client:          a.Client,
		Status:          a.Status,
		StartDate:       a.StartDate,
		Amount:          a.Amount,
		Type:            a.Type,
		Frequency:       a.Frequency,
		IncreaseDate:    a.IncreaseDate,
		Notes:           a.Notes,
		AddedDate:       a.AddedDate,
		LastTouched:     a.LastTouched,
		NextDueDate:     "-",
		NextFollowUp:    "-",
		FollowUpStatus:  toBadgeView(cadence.FollowUpStatus(a, now)),
		FollowUpOverdue: cadence.IsFollowUpOverdue(a, now),
		TouchBadge:      toBadgeView(cadence.TouchBadge(a, now)),
	}
	age := cadence.AgeDays(a, now)
	view.AgeDays = age
	view.Priority = cadence.PriorityLabel(age)
	if due, ok := schedule.NextDueDate(a.Frequency, a.StartDate, now); ok {
		view.NextDueDate = dates.Display(due)
		view.DueThisWeek = schedule.DueThisWeek(a.Frequency, a.StartDate, now)
	}
	if next, ok := cadence.NextFollowUp(a, now); ok {
		view.NextFollowUp = dates.Display(next)
	}
	if badge, ok := cadence.IncreaseBadge(a, now); ok {
		b := toBadgeView(badge)
		view.IncreaseBadge = &b
	}
	return view
}

func (h *handler) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	accounts, err := h.store.ListAccounts(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to load accounts: %v", err), "server.handleAccounts")
		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, buildAccountView(a, now))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"accounts": views})
}

type projectionRow struct {
	ID           string  `json:"id"`
	Merchant     string  `json:"merchant"`
	Status       string  `json:"status"`
	RiskCategory string  `json:"riskCategory"`
	Projected    float64 `json:"projected"`
	Received     float64 `json:"received"`
}

type projectionResponse struct {
	Month          string          `json:"month"`
	Expected       float64         `json:"expected"`
	ExpectedLabel  string          `json:"expectedLabel"`
	AtRisk         float64         `json:"atRisk"`
	SettledLoss    float64         `json:"settledLoss"`
	DefaultedLoss  float64         `json:"defaultedLoss"`
	ActiveCount    int             `json:"activeCount"`
	SettledCount   int             `json:"settledCount"`
	DefaultedCount int             `json:"defaultedCount"`
	Received       float64         `json:"received"`
	Rows           []projectionRow `json:"rows"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		monthKey = dates.MonthKey(now)
	}
	if _, ok := dates.ParseMonthKey(monthKey); !ok {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("invalid month %q, expected YYYY-MM", monthKey), "server.handleProjection")
		return
	}

	accounts, err := h.store.ListAccounts(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to load accounts: %v", err), "server.handleProjection")
		return
	}

	totals := projection.MonthTotals(accounts, monthKey, now)
	response := projectionResponse{
		Month:          monthKey,
		Expected:       totals.Expected,
		ExpectedLabel:  money.Format(totals.Expected),
		AtRisk:         totals.AtRisk,
		SettledLoss:    totals.SettledLoss,
		DefaultedLoss:  totals.DefaultedLoss,
		ActiveCount:    totals.ActiveCount,
		SettledCount:   totals.SettledCount,
		DefaultedCount: totals.DefaultedCount,
		Received:       projection.MonthPaymentsTotal(accounts, monthKey),
		Rows:           make([]projectionRow, 0, len(accounts)),
	}
	for _, a := range accounts {
		response.Rows = append(response.Rows, projectionRow{
			ID:           a.ID,
			Merchant:     a.Merchant,
			Status:       a.Status,
			RiskCategory: string(projection.RiskCategoryFor(a.Status)),
			Projected:    projection.ProjectedAmount(a, monthKey, now),
			Received:     projection.AccountMonthPayments(a, monthKey),
		})
	}
	h.writeJSON(w, http.StatusOK, response)
}

type forecastStageView struct {
	Stage      string  `json:"stage"`
	Confidence float64 `json:"confidence"`
	Count      int     `json:"count"`
	Weighted   float64 `json:"weighted"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	opportunities, err := h.store.ListOpportunities(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to load opportunities: %v", err), "server.handleForecast")
		return
	}

	stageViews := make([]forecastStageView, 0, len(pipeline.Stages))
	for _, stage := range pipeline.Stages {
		view := forecastStageView{Stage: stage, Confidence: pipeline.Confidence(stage)}
		for _, opp := range opportunities {
			if opp.Stage != stage {
				continue
			}
			view.Count++
			view.Weighted += money.Parse(opp.Amount) * view.Confidence
		}
		stageViews = append(stageViews, view)
	}

	total := pipeline.ForecastTotal(opportunities)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"total":      total,
		"totalLabel": money.Format(total),
		"count":      len(opportunities),
		"stages":     stageViews,
	})
}

type touchRequest struct {
	Details string `json:"details"`
}

func (h *handler) handleTouch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/accounts/")
	id, action, found := strings.Cut(rest, "/")
	if !found || action != "touch" || id == "" {
		http.NotFound(w, r)
		return
	}

	var payload touchRequest
	if r.Body != nil {
		// An empty body is fine; details are optional.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	now := time.Now()
	if err := h.store.TouchAccount(r.Context(), id, "touched", payload.Details, now); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respondError(w, http.StatusNotFound,
				fmt.Sprintf("account %s not found", id), "server.handleTouch")
			return
		}
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to touch account: %v", err), "server.handleTouch")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"id":          id,
		"lastTouched": dates.DateKey(now),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		monthKey = dates.MonthKey(now)
	}
	if _, ok := dates.ParseMonthKey(monthKey); !ok {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("invalid month %q, expected YYYY-MM", monthKey), "server.handleExport")
		return
	}

	accounts, err := h.store.ListAccounts(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to load accounts: %v", err), "server.handleExport")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "accounts-"+monthKey+".csv"))
	if err := csvio.WriteAccounts(w, accounts, monthKey, now); err != nil {
		h.logger.Error("failed to write export",
			zap.String("op", "server.handleExport"),
			zap.Error(err),
		)
	}
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

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
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
