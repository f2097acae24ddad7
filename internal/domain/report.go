package domain

import "github.com/shopspring/decimal"

// MonthsInYear is the length of the coupon-projection horizon.
const MonthsInYear = 12

// CouponContribution records one holding's contribution to a projected
// month's coupon total.
type CouponContribution struct {
	AssetName string           `json:"asset_name"`
	Value     decimal.Decimal  `json:"value"`
	Frequency PaymentFrequency `json:"frequency"`
}

// MetricsResult is the full output of the metrics aggregator for one
// holdings list. All fields are plain numbers; formatting (currency symbols,
// locale separators) is the caller's concern.
//
// Invariants, for totalValue > 0:
//   - every ConcentrationBy* map sums to 100 within floating tolerance
//   - MonthlyCouponTotals[i] equals the sum of MonthlyCouponDetail[i] values
//
// For an empty holdings list every field is exactly zero — never NaN, never
// an error.
type MetricsResult struct {
	TotalHoldings          int                             `json:"total_holdings"`
	TotalValue             decimal.Decimal                 `json:"total_value"`
	WeightedRatePercent    decimal.Decimal                 `json:"weighted_rate_percent"`
	WeightedRateByIndexer  map[IndexerKind]decimal.Decimal `json:"weighted_rate_by_indexer"`
	ConcentrationByIssuer  map[string]decimal.Decimal      `json:"concentration_by_issuer"`
	ConcentrationBySector  map[string]decimal.Decimal      `json:"concentration_by_sector"`
	ConcentrationByIndexer map[IndexerKind]decimal.Decimal `json:"concentration_by_indexer"`
	MonthlyCouponTotals    [MonthsInYear]decimal.Decimal   `json:"monthly_coupon_totals"`
	MonthlyCouponDetail    [MonthsInYear][]CouponContribution `json:"monthly_coupon_detail"`
	TotalCommissionValue   decimal.Decimal                 `json:"total_commission_value"`
}

// ConcentrationEntry is one ranked row of a concentration breakdown,
// produced when a concentration map is sorted for display.
type ConcentrationEntry struct {
	Key     string          `json:"key"`
	Percent decimal.Decimal `json:"percent"`
}

// DiversificationSummary is the compact, display-oriented report derived
// from a MetricsResult.
type DiversificationSummary struct {
	DiversificationScore decimal.Decimal      `json:"diversification_score"` // 0-100
	TopIssuers           []ConcentrationEntry `json:"top_issuers"`
	TopSectors           []ConcentrationEntry `json:"top_sectors"`
	AnnualCouponTotal    decimal.Decimal      `json:"annual_coupon_total"`
	TotalHoldings        int                  `json:"total_holdings"`
	TotalValue           decimal.Decimal      `json:"total_value"`
	WeightedRatePercent  decimal.Decimal      `json:"weighted_rate_percent"`
	TotalCommissionValue decimal.Decimal      `json:"total_commission_value"`
}
