// Package summary derives the compact dashboard report from an aggregated
// MetricsResult: a bounded diversification score, ranked concentration
// lists, and the annual coupon total.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rendalab/carteira-backend/internal/domain"
)

// Diversification scoring thresholds and penalties. The score starts at 100
// and is reduced for each missing issuer/sector/indexer below the minimum
// counts, then for excess concentration in the single largest issuer and
// sector.
var (
	minIssuers  = 5
	minSectors  = 3
	minIndexers = 2

	penaltyPerMissingIssuer  = decimal.NewFromInt(10)
	penaltyPerMissingSector  = decimal.NewFromInt(15)
	penaltyPerMissingIndexer = decimal.NewFromInt(10)

	issuerConcentrationLimit = decimal.NewFromInt(20)
	sectorConcentrationLimit = decimal.NewFromInt(40)
	issuerExcessPenalty      = decimal.NewFromInt(2)
	sectorExcessPenalty      = decimal.NewFromFloat(1.5)

	maxScore = decimal.NewFromInt(100)
)

// DefaultTopLimit is the ranking size used by list endpoints; the summary
// itself truncates to SummaryTopLimit.
const (
	DefaultTopLimit = 5
	SummaryTopLimit = 3
)

// BuildSummary composes a DiversificationSummary from an already-computed
// MetricsResult. Given a well-formed result (the all-zero one included) it
// cannot fail.
func BuildSummary(m domain.MetricsResult) domain.DiversificationSummary {
	annualTotal := decimal.Zero
	for _, monthTotal := range m.MonthlyCouponTotals {
		annualTotal = annualTotal.Add(monthTotal)
	}

	return domain.DiversificationSummary{
		DiversificationScore: Score(m),
		TopIssuers:           TopConcentrations(m.ConcentrationByIssuer, SummaryTopLimit),
		TopSectors:           TopConcentrations(m.ConcentrationBySector, SummaryTopLimit),
		AnnualCouponTotal:    annualTotal,
		TotalHoldings:        m.TotalHoldings,
		TotalValue:           m.TotalValue,
		WeightedRatePercent:  m.WeightedRatePercent,
		TotalCommissionValue: m.TotalCommissionValue,
	}
}

// Score computes the diversification score for a MetricsResult, clamped to
// [0, 100].
func Score(m domain.MetricsResult) decimal.Decimal {
	score := maxScore

	if missing := minIssuers - len(m.ConcentrationByIssuer); missing > 0 {
		score = score.Sub(penaltyPerMissingIssuer.Mul(decimal.NewFromInt(int64(missing))))
	}
	if missing := minSectors - len(m.ConcentrationBySector); missing > 0 {
		score = score.Sub(penaltyPerMissingSector.Mul(decimal.NewFromInt(int64(missing))))
	}
	if missing := minIndexers - len(m.ConcentrationByIndexer); missing > 0 {
		score = score.Sub(penaltyPerMissingIndexer.Mul(decimal.NewFromInt(int64(missing))))
	}

	if excess := largest(m.ConcentrationByIssuer).Sub(issuerConcentrationLimit); excess.IsPositive() {
		score = score.Sub(excess.Mul(issuerExcessPenalty))
	}
	if excess := largest(m.ConcentrationBySector).Sub(sectorConcentrationLimit); excess.IsPositive() {
		score = score.Sub(excess.Mul(sectorExcessPenalty))
	}

	if score.IsNegative() {
		return decimal.Zero
	}
	return score
}

// TopConcentrations ranks a concentration map descending by percentage and
// truncates it to limit entries. Equal percentages order by key so the
// ranking is deterministic.
func TopConcentrations(concentrations map[string]decimal.Decimal, limit int) []domain.ConcentrationEntry {
	entries := make([]domain.ConcentrationEntry, 0, len(concentrations))
	for key, percent := range concentrations {
		entries = append(entries, domain.ConcentrationEntry{Key: key, Percent: percent})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percent.Equal(entries[j].Percent) {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Percent.GreaterThan(entries[j].Percent)
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func largest(concentrations map[string]decimal.Decimal) decimal.Decimal {
	max := decimal.Zero
	for _, percent := range concentrations {
		if percent.GreaterThan(max) {
			max = percent
		}
	}
	return max
}
