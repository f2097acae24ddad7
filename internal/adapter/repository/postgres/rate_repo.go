package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rendalab/carteira-backend/internal/domain"
)

// referenceRateRepository implements domain.ReferenceRateRepository
type referenceRateRepository struct {
	db *DB
}

// NewReferenceRateRepository creates a new reference-rate repository
func NewReferenceRateRepository(db *DB) domain.ReferenceRateRepository {
	return &referenceRateRepository{db: db}
}

// Current retrieves the current reference-rate table.
// An empty table is a valid result: the engine falls back to its fixed
// defaults for any rate that is absent.
func (r *referenceRateRepository) Current(ctx context.Context) (domain.ReferenceRateTable, error) {
	query := `
		SELECT name, annual_rate
		FROM reference_rates
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference rates: %w", err)
	}
	defer rows.Close()

	table := make(domain.ReferenceRateTable)
	for rows.Next() {
		var name, rateStr string
		if err := rows.Scan(&name, &rateStr); err != nil {
			return nil, fmt.Errorf("failed to scan reference rate: %w", err)
		}

		rate, err := parseDecimal(rateStr, "annual_rate")
		if err != nil {
			return nil, err
		}
		table[name] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reference rates: %w", err)
	}

	return table, nil
}

// Save inserts or updates one reference rate
func (r *referenceRateRepository) Save(ctx context.Context, name string, annualRate decimal.Decimal) error {
	query := `
		INSERT INTO reference_rates (name, annual_rate, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET annual_rate = $2, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, name, annualRate.String()); err != nil {
		return fmt.Errorf("failed to save reference rate %s: %w", name, err)
	}
	return nil
}
