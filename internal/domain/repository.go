package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PortfolioRepository defines the interface for portfolio persistence operations
type PortfolioRepository interface {
	// GetByID retrieves a portfolio by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Portfolio, error)

	// Create creates a new portfolio
	Create(ctx context.Context, portfolio *Portfolio) error

	// List retrieves all portfolios owned by a user
	List(ctx context.Context, userID uuid.UUID) ([]*Portfolio, error)

	// GetHoldings retrieves the joined asset + position rows for a portfolio.
	// An empty portfolio yields an empty slice, not an error.
	GetHoldings(ctx context.Context, portfolioID uuid.UUID) ([]Holding, error)
}

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// Create creates a new asset and returns its generated ID
	Create(ctx context.Context, asset *Asset) (uuid.UUID, error)

	// List retrieves all known assets
	List(ctx context.Context) ([]Asset, error)
}

// ReferenceRateRepository defines the interface for economic-parameter persistence
type ReferenceRateRepository interface {
	// Current retrieves the current reference-rate table.
	// A missing or empty table is returned as an empty (non-nil) map.
	Current(ctx context.Context) (ReferenceRateTable, error)

	// Save inserts or updates one reference rate
	Save(ctx context.Context, name string, annualRate decimal.Decimal) error
}
