package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rendalab/carteira-backend/internal/domain"
)

// portfolioRepository implements domain.PortfolioRepository
type portfolioRepository struct {
	db *DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *DB) domain.PortfolioRepository {
	return &portfolioRepository{db: db}
}

// GetByID retrieves a portfolio by its ID
func (r *portfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM portfolios
		WHERE id = $1
	`

	var portfolio domain.Portfolio
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.Name,
		&portfolio.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("portfolio not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get portfolio by ID: %w", err)
	}

	return &portfolio, nil
}

// Create creates a new portfolio
func (r *portfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	query := `
		INSERT INTO portfolios (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		portfolio.ID,
		portfolio.UserID,
		portfolio.Name,
		portfolio.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}

	return nil
}

// List retrieves all portfolios owned by a user
func (r *portfolioRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM portfolios
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	portfolios := make([]*domain.Portfolio, 0)
	for rows.Next() {
		var portfolio domain.Portfolio
		if err := rows.Scan(
			&portfolio.ID,
			&portfolio.UserID,
			&portfolio.Name,
			&portfolio.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		portfolios = append(portfolios, &portfolio)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate portfolios: %w", err)
	}

	return portfolios, nil
}

// GetHoldings retrieves the joined asset + position rows for a portfolio
func (r *portfolioRepository) GetHoldings(ctx context.Context, portfolioID uuid.UUID) ([]domain.Holding, error) {
	query := `
		SELECT a.name, a.code, a.issuer, a.sector, a.asset_type,
		       a.indexer, a.rate_text, a.unit_price,
		       a.payment_frequency, a.payment_months, a.commission_percent,
		       h.quantity, h.market_value
		FROM portfolio_holdings h
		JOIN assets a ON a.id = h.asset_id
		WHERE h.portfolio_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]domain.Holding, 0)
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// scanHolding maps one joined row into a domain.Holding, classifying the
// free-text indexer and frequency columns into their enums at this boundary
// so the engine never re-parses them.
func scanHolding(rows *sql.Rows) (domain.Holding, error) {
	var (
		holding       domain.Holding
		sector        sql.NullString
		indexerText   string
		unitPrice     sql.NullString
		frequencyText sql.NullString
		paymentMonths sql.NullString
		commission    sql.NullString
		quantityStr   string
		valueStr      string
	)

	if err := rows.Scan(
		&holding.Asset.Name,
		&holding.Asset.Code,
		&holding.Asset.Issuer,
		&sector,
		&holding.Asset.Type,
		&indexerText,
		&holding.Asset.RateText,
		&unitPrice,
		&frequencyText,
		&paymentMonths,
		&commission,
		&quantityStr,
		&valueStr,
	); err != nil {
		return domain.Holding{}, fmt.Errorf("failed to scan holding: %w", err)
	}

	holding.Asset.Sector = sector.String
	holding.Asset.Indexer = domain.ParseIndexerKind(indexerText)
	holding.Asset.PaymentFrequency = domain.ParsePaymentFrequency(frequencyText.String)
	holding.Asset.PaymentMonths = paymentMonths.String

	// Parse DECIMAL columns (scanned as strings, teacher-style)
	if unitPrice.Valid {
		price, err := parseDecimal(unitPrice.String, "unit_price")
		if err != nil {
			return domain.Holding{}, err
		}
		holding.Asset.UnitPrice = &price
	}
	if commission.Valid {
		pct, err := parseDecimal(commission.String, "commission_percent")
		if err != nil {
			return domain.Holding{}, err
		}
		holding.Asset.CommissionPercent = &pct
	}

	quantity, err := parseDecimal(quantityStr, "quantity")
	if err != nil {
		return domain.Holding{}, err
	}
	holding.Quantity = quantity

	value, err := parseDecimal(valueStr, "market_value")
	if err != nil {
		return domain.Holding{}, err
	}
	holding.Value = value

	return holding, nil
}
