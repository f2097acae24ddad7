// Package metrics computes descriptive portfolio metrics from a holdings
// list: total value, value-weighted rates, concentration breakdowns, and the
// 12-month coupon projection. Everything here is a pure function; callers
// may invoke it concurrently without coordination.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/rendalab/carteira-backend/internal/domain"
	"github.com/rendalab/carteira-backend/internal/usecase/projection"
	"github.com/rendalab/carteira-backend/internal/usecase/rates"
)

var hundred = decimal.NewFromInt(100)

// ComputeMetrics aggregates a holdings list into a MetricsResult.
//
// An empty list produces the canonical zero result: zero totals, empty
// concentration maps, zero-filled coupon arrays. A zero total value short-
// circuits every weighted computation to zero rather than dividing. This
// function never fails.
func ComputeMetrics(holdings []domain.Holding, referenceRates domain.ReferenceRateTable) domain.MetricsResult {
	result := domain.MetricsResult{
		TotalHoldings:          len(holdings),
		WeightedRateByIndexer:  make(map[domain.IndexerKind]decimal.Decimal),
		ConcentrationByIssuer:  make(map[string]decimal.Decimal),
		ConcentrationBySector:  make(map[string]decimal.Decimal),
		ConcentrationByIndexer: make(map[domain.IndexerKind]decimal.Decimal),
	}

	if len(holdings) == 0 {
		return result
	}

	totalValue := decimal.Zero
	for _, holding := range holdings {
		totalValue = totalValue.Add(holding.Value)
	}
	result.TotalValue = totalValue

	// Weighted rates and concentrations accumulate value-by-key first and
	// divide once at the end, so the convex-combination property holds
	// exactly for uniform-rate portfolios.
	weightedSum := decimal.Zero
	indexerWeightedSum := make(map[domain.IndexerKind]decimal.Decimal)
	indexerValue := make(map[domain.IndexerKind]decimal.Decimal)
	issuerValue := make(map[string]decimal.Decimal)
	sectorValue := make(map[string]decimal.Decimal)

	for _, holding := range holdings {
		rate := rates.NormalizeRate(holding.Asset.RateText, holding.Asset.Indexer, referenceRates)
		valueTimesRate := holding.Value.Mul(rate)

		weightedSum = weightedSum.Add(valueTimesRate)

		kind := holding.Asset.Indexer
		indexerWeightedSum[kind] = indexerWeightedSum[kind].Add(valueTimesRate)
		indexerValue[kind] = indexerValue[kind].Add(holding.Value)

		issuerValue[holding.Asset.Issuer] = issuerValue[holding.Asset.Issuer].Add(holding.Value)
		sectorKey := holding.SectorKey()
		sectorValue[sectorKey] = sectorValue[sectorKey].Add(holding.Value)

		if holding.Asset.CommissionPercent != nil {
			commission := holding.Value.Mul(holding.Asset.CommissionPercent.Div(hundred))
			result.TotalCommissionValue = result.TotalCommissionValue.Add(commission)
		}
	}

	schedule := projection.ProjectMonthlyCoupons(holdings, referenceRates.CDI())
	result.MonthlyCouponTotals = schedule.Totals
	result.MonthlyCouponDetail = schedule.Details

	if totalValue.IsZero() {
		// Weighted rate and concentrations are undefined; leave them zero.
		return result
	}

	result.WeightedRatePercent = weightedSum.Div(totalValue)

	// Per-indexer weights renormalize within the group, not the portfolio.
	for kind, groupValue := range indexerValue {
		if groupValue.IsZero() {
			result.WeightedRateByIndexer[kind] = decimal.Zero
			continue
		}
		result.WeightedRateByIndexer[kind] = indexerWeightedSum[kind].Div(groupValue)
	}

	for issuer, value := range issuerValue {
		result.ConcentrationByIssuer[issuer] = value.Div(totalValue).Mul(hundred)
	}
	for sector, value := range sectorValue {
		result.ConcentrationBySector[sector] = value.Div(totalValue).Mul(hundred)
	}
	for kind, value := range indexerValue {
		result.ConcentrationByIndexer[kind] = value.Div(totalValue).Mul(hundred)
	}

	return result
}
