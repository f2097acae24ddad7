package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rendalab/carteira-backend/internal/adapter/httpapi"
	"github.com/rendalab/carteira-backend/internal/domain"
	"github.com/rendalab/carteira-backend/internal/usecase/dashboard"
	portfoliouc "github.com/rendalab/carteira-backend/internal/usecase/portfolio"
)

const apiToken = "e2e-token"

// stubPortfolioRepository backs the full service stack with in-test data so
// the whole HTTP surface can be exercised without a database.
type stubPortfolioRepository struct {
	mock.Mock
}

func (m *stubPortfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Portfolio), args.Error(1)
}

func (m *stubPortfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

func (m *stubPortfolioRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Portfolio, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Portfolio), args.Error(1)
}

func (m *stubPortfolioRepository) GetHoldings(ctx context.Context, portfolioID uuid.UUID) ([]domain.Holding, error) {
	args := m.Called(ctx, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

type stubRateRepository struct {
	mock.Mock
}

func (m *stubRateRepository) Current(ctx context.Context) (domain.ReferenceRateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ReferenceRateTable), args.Error(1)
}

func (m *stubRateRepository) Save(ctx context.Context, name string, annualRate decimal.Decimal) error {
	args := m.Called(ctx, name, annualRate)
	return args.Error(0)
}

func newRouter(portfolioRepo domain.PortfolioRepository, rateRepo domain.ReferenceRateRepository) http.Handler {
	log := zerolog.Nop()
	portfolioService := portfoliouc.NewPortfolioService(portfolioRepo)
	dashboardService := dashboard.NewDashboardService(portfolioRepo, rateRepo, log)
	handler := httpapi.NewHandler(portfolioService, dashboardService, nil, rateRepo, log)

	server := httpapi.New(httpapi.Config{
		Port:           0,
		APIToken:       apiToken,
		AllowedOrigins: []string{"*"},
		Log:            log,
		Handler:        handler,
	})
	return server.Router()
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+apiToken)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPortfolioReportEndToEnd(t *testing.T) {
	portfolioID := uuid.New()
	price := decimal.NewFromInt(1000)

	holdings := []domain.Holding{
		{
			Asset: domain.Asset{
				Name:             "CDB Banco A",
				Issuer:           "Banco A",
				Sector:           "Financeiro",
				Indexer:          domain.IndexerPrefixada,
				RateText:         "12%",
				UnitPrice:        &price,
				PaymentFrequency: domain.FrequencyMonthly,
				PaymentMonths:    "ALL",
			},
			Quantity: decimal.NewFromInt(1),
			Value:    decimal.NewFromInt(1000),
		},
		{
			Asset: domain.Asset{
				Name:     "LCI Banco B",
				Issuer:   "Banco B",
				Sector:   "Imobiliário",
				Indexer:  domain.IndexerPctCDI,
				RateText: "108% CDI",
			},
			Quantity: decimal.NewFromInt(1),
			Value:    decimal.NewFromInt(3000),
		},
	}

	portfolioRepo := new(stubPortfolioRepository)
	portfolioRepo.On("GetByID", mock.Anything, portfolioID).Return(&domain.Portfolio{
		ID:        portfolioID,
		UserID:    uuid.New(),
		Name:      "Renda Fixa",
		CreatedAt: time.Now(),
	}, nil)
	portfolioRepo.On("GetHoldings", mock.Anything, portfolioID).Return(holdings, nil)

	rateRepo := new(stubRateRepository)
	rateRepo.On("Current", mock.Anything).Return(domain.ReferenceRateTable{
		"CDI": decimal.NewFromFloat(14.65),
	}, nil)

	router := newRouter(portfolioRepo, rateRepo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/portfolios/"+portfolioID.String()+"/report", ""))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		Metrics struct {
			TotalHoldings         int                        `json:"total_holdings"`
			TotalValue            decimal.Decimal            `json:"total_value"`
			ConcentrationByIssuer map[string]decimal.Decimal `json:"concentration_by_issuer"`
		} `json:"metrics"`
		Summary struct {
			DiversificationScore decimal.Decimal `json:"diversification_score"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.Equal(t, 2, report.Metrics.TotalHoldings)
	assert.True(t, report.Metrics.TotalValue.Equal(decimal.NewFromInt(4000)))
	assert.True(t, report.Metrics.ConcentrationByIssuer["Banco A"].Equal(decimal.NewFromInt(25)))
	assert.True(t, report.Metrics.ConcentrationByIssuer["Banco B"].Equal(decimal.NewFromInt(75)))
}

// notFoundError mimics the repository's "portfolio not found" error.
type notFoundError struct{}

func (notFoundError) Error() string { return "portfolio not found: sql: no rows in result set" }

func TestPortfolioReportEndToEnd_NotFound(t *testing.T) {
	portfolioID := uuid.New()

	portfolioRepo := new(stubPortfolioRepository)
	portfolioRepo.On("GetByID", mock.Anything, portfolioID).Return(nil, notFoundError{})

	rateRepo := new(stubRateRepository)

	router := newRouter(portfolioRepo, rateRepo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/portfolios/"+portfolioID.String()+"/report", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAndListPortfoliosEndToEnd(t *testing.T) {
	userID := uuid.New()

	portfolioRepo := new(stubPortfolioRepository)
	portfolioRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Portfolio")).Return(nil)
	portfolioRepo.On("List", mock.Anything, userID).Return([]*domain.Portfolio{
		{ID: uuid.New(), UserID: userID, Name: "Renda Fixa"},
	}, nil)

	rateRepo := new(stubRateRepository)
	router := newRouter(portfolioRepo, rateRepo)

	createBody := `{"user_id": "` + userID.String() + `", "name": "Renda Fixa"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/portfolios", createBody))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/portfolios?user_id="+userID.String(), ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var portfolios []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &portfolios))
	assert.Len(t, portfolios, 1)
}
