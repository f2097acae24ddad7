// Package httpapi exposes the portfolio dashboard's HTTP JSON API.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rendalab/carteira-backend/internal/domain"
	"github.com/rendalab/carteira-backend/internal/usecase/dashboard"
	"github.com/rendalab/carteira-backend/internal/usecase/metrics"
	portfoliouc "github.com/rendalab/carteira-backend/internal/usecase/portfolio"
	"github.com/rendalab/carteira-backend/internal/usecase/summary"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	portfolioService *portfoliouc.PortfolioService
	dashboardService *dashboard.DashboardService
	assetRepo        domain.AssetRepository
	rateRepo         domain.ReferenceRateRepository
	log              zerolog.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	portfolioService *portfoliouc.PortfolioService,
	dashboardService *dashboard.DashboardService,
	assetRepo domain.AssetRepository,
	rateRepo domain.ReferenceRateRepository,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		portfolioService: portfolioService,
		dashboardService: dashboardService,
		assetRepo:        assetRepo,
		rateRepo:         rateRepo,
		log:              log.With().Str("handler", "api").Logger(),
	}
}

// HandleListPortfolios returns the portfolios owned by the requesting user
// (user_id query parameter).
func (h *Handler) HandleListPortfolios(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
		return
	}

	portfolios, err := h.portfolioService.ListPortfolios(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("list portfolios failed")
		writeError(w, http.StatusInternalServerError, "failed to list portfolios")
		return
	}

	writeJSON(w, http.StatusOK, portfolios)
}

type createPortfolioRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// HandleCreatePortfolio creates a new, empty portfolio.
func (h *Handler) HandleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req createPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, portfolio)
}

// HandlePortfolioMetrics returns the full MetricsResult for a portfolio.
func (h *Handler) HandlePortfolioMetrics(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Metrics)
}

// HandlePortfolioSummary returns the DiversificationSummary for a portfolio.
func (h *Handler) HandlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Summary)
}

// HandlePortfolioReport returns the combined metrics + summary report.
func (h *Handler) HandlePortfolioReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleRates returns the current reference-rate table.
func (h *Handler) HandleRates(w http.ResponseWriter, r *http.Request) {
	table, err := h.rateRepo.Current(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("reference rates unavailable")
		writeError(w, http.StatusInternalServerError, "failed to load reference rates")
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// HandleListAssets returns the full asset catalog.
func (h *Handler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetRepo.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list assets failed")
		writeError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

type createAssetResponse struct {
	ID string `json:"id"`
}

// HandleCreateAsset registers one asset in the catalog. The free-text
// indexer and frequency fields are classified here, at the boundary, the
// same way imports are.
func (h *Handler) HandleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req previewAsset
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "asset name is required")
		return
	}

	asset := req.toDomain()
	id, err := h.assetRepo.Create(r.Context(), &asset)
	if err != nil {
		h.log.Error().Err(err).Msg("create asset failed")
		writeError(w, http.StatusInternalServerError, "failed to create asset")
		return
	}

	writeJSON(w, http.StatusCreated, createAssetResponse{ID: id.String()})
}

// previewAsset mirrors domain.Asset with the free-text fields still raw;
// the handler runs them through the parsing boundary before the engine
// sees them.
type previewAsset struct {
	Name              string           `json:"name"`
	Code              string           `json:"code"`
	Issuer            string           `json:"issuer"`
	Sector            string           `json:"sector"`
	Type              string           `json:"type"`
	Indexer           string           `json:"indexer"`
	RateText          string           `json:"rate_text"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	PaymentFrequency  string           `json:"payment_frequency"`
	PaymentMonths     string           `json:"payment_months"`
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
}

func (a previewAsset) toDomain() domain.Asset {
	return domain.Asset{
		Name:              a.Name,
		Code:              a.Code,
		Issuer:            a.Issuer,
		Sector:            a.Sector,
		Type:              a.Type,
		Indexer:           domain.ParseIndexerKind(a.Indexer),
		RateText:          a.RateText,
		UnitPrice:         a.UnitPrice,
		PaymentFrequency:  domain.ParsePaymentFrequency(a.PaymentFrequency),
		PaymentMonths:     a.PaymentMonths,
		CommissionPercent: a.CommissionPercent,
	}
}

type previewHolding struct {
	Asset    previewAsset    `json:"asset"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

type previewRequest struct {
	Holdings       []previewHolding           `json:"holdings"`
	ReferenceRates map[string]decimal.Decimal `json:"reference_rates"`
}

type previewResponse struct {
	Metrics domain.MetricsResult          `json:"metrics"`
	Summary domain.DiversificationSummary `json:"summary"`
}

// HandleMetricsPreview computes metrics for holdings supplied in the request
// body, without touching storage. This is the ad-hoc path the import screen
// uses before anything is saved.
func (h *Handler) HandleMetricsPreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	holdings := make([]domain.Holding, 0, len(req.Holdings))
	for _, ph := range req.Holdings {
		holdings = append(holdings, domain.Holding{
			Asset:    ph.Asset.toDomain(),
			Quantity: ph.Quantity,
			Value:    ph.Value,
		})
	}

	result := metrics.ComputeMetrics(holdings, req.ReferenceRates)
	writeJSON(w, http.StatusOK, previewResponse{
		Metrics: result,
		Summary: summary.BuildSummary(result),
	})
}

// loadReport resolves the {id} URL parameter and fetches the portfolio
// report, writing the error response itself when anything fails.
func (h *Handler) loadReport(w http.ResponseWriter, r *http.Request) (*dashboard.PortfolioReport, bool) {
	portfolioID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid portfolio id")
		return nil, false
	}

	report, err := h.dashboardService.GetPortfolioReport(r.Context(), portfolioID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "portfolio not found")
			return nil, false
		}
		h.log.Error().Err(err).Str("portfolio_id", portfolioID.String()).Msg("report failed")
		writeError(w, http.StatusInternalServerError, "failed to compute report")
		return nil, false
	}

	return report, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
