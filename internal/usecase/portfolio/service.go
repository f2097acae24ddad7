package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rendalab/carteira-backend/internal/domain"
)

// PortfolioService handles portfolio management operations
type PortfolioService struct {
	PortfolioRepo domain.PortfolioRepository
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(portfolioRepo domain.PortfolioRepository) *PortfolioService {
	return &PortfolioService{PortfolioRepo: portfolioRepo}
}

// CreatePortfolio creates a new, empty portfolio for a user
// Returns the created portfolio
func (s *PortfolioService) CreatePortfolio(ctx context.Context, userID uuid.UUID, name string) (*domain.Portfolio, error) {
	portfolio := &domain.Portfolio{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	if err := portfolio.Validate(); err != nil {
		return nil, err
	}

	if err := s.PortfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}

	return portfolio, nil
}

// ListPortfolios retrieves all portfolios owned by a user
func (s *PortfolioService) ListPortfolios(ctx context.Context, userID uuid.UUID) ([]*domain.Portfolio, error) {
	return s.PortfolioRepo.List(ctx, userID)
}
