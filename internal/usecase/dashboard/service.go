package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rendalab/carteira-backend/internal/domain"
	"github.com/rendalab/carteira-backend/internal/usecase/metrics"
	"github.com/rendalab/carteira-backend/internal/usecase/summary"
)

// PortfolioReport bundles everything the dashboard renders for one
// portfolio: the full metrics and the derived summary.
type PortfolioReport struct {
	Portfolio *domain.Portfolio             `json:"portfolio"`
	Metrics   domain.MetricsResult          `json:"metrics"`
	Summary   domain.DiversificationSummary `json:"summary"`
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	PortfolioRepo domain.PortfolioRepository
	RateRepo      domain.ReferenceRateRepository

	log zerolog.Logger
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	portfolioRepo domain.PortfolioRepository,
	rateRepo domain.ReferenceRateRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		PortfolioRepo: portfolioRepo,
		RateRepo:      rateRepo,
		log:           log.With().Str("service", "dashboard").Logger(),
	}
}

// GetPortfolioReport loads a portfolio's holdings and the current
// reference-rate table, runs the metrics engine, and returns the combined
// report.
//
// A failure to read the reference rates is not fatal: the engine falls back
// to its fixed defaults, so the report degrades instead of erroring.
func (s *DashboardService) GetPortfolioReport(ctx context.Context, portfolioID uuid.UUID) (*PortfolioReport, error) {
	portfolio, err := s.PortfolioRepo.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	holdings, err := s.PortfolioRepo.GetHoldings(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	rateTable, err := s.RateRepo.Current(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("reference rates unavailable, using defaults")
		rateTable = domain.ReferenceRateTable{}
	}

	result := metrics.ComputeMetrics(holdings, rateTable)

	return &PortfolioReport{
		Portfolio: portfolio,
		Metrics:   result,
		Summary:   summary.BuildSummary(result),
	}, nil
}
