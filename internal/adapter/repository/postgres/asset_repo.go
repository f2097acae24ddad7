package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rendalab/carteira-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// Create creates a new asset and returns its generated ID
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) (uuid.UUID, error) {
	query := `
		INSERT INTO assets (id, name, code, issuer, sector, asset_type,
		                    indexer, rate_text, unit_price,
		                    payment_frequency, payment_months, commission_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	id := uuid.New()
	_, err := r.db.ExecContext(ctx, query,
		id,
		asset.Name,
		asset.Code,
		asset.Issuer,
		nullableString(asset.Sector),
		asset.Type,
		string(asset.Indexer),
		asset.RateText,
		nullableDecimal(asset.UnitPrice),
		nullableString(string(asset.PaymentFrequency)),
		nullableString(asset.PaymentMonths),
		nullableDecimal(asset.CommissionPercent),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return id, nil
}

// List retrieves all known assets
func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	query := `
		SELECT name, code, issuer, sector, asset_type,
		       indexer, rate_text, unit_price,
		       payment_frequency, payment_months, commission_percent
		FROM assets
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		var (
			asset         domain.Asset
			sector        sql.NullString
			indexerText   string
			unitPrice     sql.NullString
			frequencyText sql.NullString
			paymentMonths sql.NullString
			commission    sql.NullString
		)

		if err := rows.Scan(
			&asset.Name,
			&asset.Code,
			&asset.Issuer,
			&sector,
			&asset.Type,
			&indexerText,
			&asset.RateText,
			&unitPrice,
			&frequencyText,
			&paymentMonths,
			&commission,
		); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}

		asset.Sector = sector.String
		asset.Indexer = domain.ParseIndexerKind(indexerText)
		asset.PaymentFrequency = domain.ParsePaymentFrequency(frequencyText.String)
		asset.PaymentMonths = paymentMonths.String

		if unitPrice.Valid {
			price, err := parseDecimal(unitPrice.String, "unit_price")
			if err != nil {
				return nil, err
			}
			asset.UnitPrice = &price
		}
		if commission.Valid {
			pct, err := parseDecimal(commission.String, "commission_percent")
			if err != nil {
				return nil, err
			}
			asset.CommissionPercent = &pct
		}

		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	return assets, nil
}

// parseDecimal parses a DECIMAL column scanned into a string
func parseDecimal(value, column string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return parsed, nil
}

// nullableString maps an empty string to SQL NULL
func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// nullableDecimal maps a nil decimal pointer to SQL NULL
func nullableDecimal(value *decimal.Decimal) interface{} {
	if value == nil {
		return nil
	}
	return value.String()
}
