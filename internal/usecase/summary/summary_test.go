package summary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rendalab/carteira-backend/internal/domain"
)

func pct(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// balancedMetrics builds a MetricsResult at exactly the scoring thresholds:
// 5 issuers, 3 sectors, 2 indexers, no issuer above 20%, no sector above 40%.
func balancedMetrics() domain.MetricsResult {
	return domain.MetricsResult{
		TotalHoldings: 5,
		TotalValue:    decimal.NewFromInt(5000),
		ConcentrationByIssuer: map[string]decimal.Decimal{
			"Banco A": pct(20), "Banco B": pct(20), "Banco C": pct(20),
			"Banco D": pct(20), "Banco E": pct(20),
		},
		ConcentrationBySector: map[string]decimal.Decimal{
			"Agro": pct(40), "Imobiliário": pct(40), "Financeiro": pct(20),
		},
		ConcentrationByIndexer: map[domain.IndexerKind]decimal.Decimal{
			domain.IndexerPrefixada: pct(50), domain.IndexerIPCA: pct(50),
		},
	}
}

func TestScore_BalancedPortfolioScores100(t *testing.T) {
	score := Score(balancedMetrics())
	assert.True(t, score.Equal(decimal.NewFromInt(100)), "got %s", score)
}

func TestScore_MissingIssuerCostsTen(t *testing.T) {
	m := balancedMetrics()
	delete(m.ConcentrationByIssuer, "Banco E")

	score := Score(m)
	assert.True(t, score.Equal(decimal.NewFromInt(90)), "got %s", score)
}

func TestScore_ExcessIssuerConcentration(t *testing.T) {
	m := balancedMetrics()
	// Largest issuer at 30%: 10 points over the 20% limit, 2 per point
	m.ConcentrationByIssuer["Banco A"] = pct(30)
	m.ConcentrationByIssuer["Banco B"] = pct(10)

	score := Score(m)
	assert.True(t, score.Equal(decimal.NewFromInt(80)), "got %s", score)
}

func TestScore_ExcessSectorConcentration(t *testing.T) {
	m := balancedMetrics()
	// Largest sector at 60%: 20 points over the 40% limit, 1.5 per point
	m.ConcentrationBySector["Agro"] = pct(60)
	m.ConcentrationBySector["Imobiliário"] = pct(20)

	score := Score(m)
	assert.True(t, score.Equal(decimal.NewFromInt(70)), "got %s", score)
}

func TestScore_ClampsAtZero(t *testing.T) {
	// Single issuer at 100%: count penalties plus a huge excess penalty
	m := domain.MetricsResult{
		ConcentrationByIssuer:  map[string]decimal.Decimal{"Banco A": pct(100)},
		ConcentrationBySector:  map[string]decimal.Decimal{"Agro": pct(100)},
		ConcentrationByIndexer: map[domain.IndexerKind]decimal.Decimal{domain.IndexerPrefixada: pct(100)},
	}

	score := Score(m)
	assert.True(t, score.IsZero(), "got %s", score)
}

func TestScore_AllZeroResultDoesNotFail(t *testing.T) {
	score := Score(domain.MetricsResult{})
	// 100 - 50 (issuers) - 45 (sectors) - 20 (indexers) clamps to 0
	assert.True(t, score.IsZero(), "got %s", score)
}

func TestTopConcentrations_SortsAndTruncates(t *testing.T) {
	concentrations := map[string]decimal.Decimal{
		"Banco A": pct(5), "Banco B": pct(40), "Banco C": pct(25),
		"Banco D": pct(20), "Banco E": pct(10),
	}

	top := TopConcentrations(concentrations, 3)

	assert.Len(t, top, 3)
	assert.Equal(t, "Banco B", top[0].Key)
	assert.Equal(t, "Banco C", top[1].Key)
	assert.Equal(t, "Banco D", top[2].Key)
}

func TestTopConcentrations_TiesOrderByKey(t *testing.T) {
	concentrations := map[string]decimal.Decimal{
		"Banco B": pct(50), "Banco A": pct(50),
	}

	top := TopConcentrations(concentrations, DefaultTopLimit)

	assert.Equal(t, "Banco A", top[0].Key)
	assert.Equal(t, "Banco B", top[1].Key)
}

func TestBuildSummary_ComposesReport(t *testing.T) {
	m := balancedMetrics()
	m.WeightedRatePercent = pct(11.8)
	m.TotalCommissionValue = pct(42)
	m.MonthlyCouponTotals[0] = pct(10)
	m.MonthlyCouponTotals[6] = pct(15.5)

	s := BuildSummary(m)

	assert.True(t, s.DiversificationScore.Equal(decimal.NewFromInt(100)))
	assert.Len(t, s.TopIssuers, SummaryTopLimit)
	assert.Len(t, s.TopSectors, SummaryTopLimit)
	assert.True(t, s.AnnualCouponTotal.Equal(pct(25.5)), "got %s", s.AnnualCouponTotal)
	assert.Equal(t, m.TotalHoldings, s.TotalHoldings)
	assert.True(t, s.TotalValue.Equal(m.TotalValue))
	assert.True(t, s.WeightedRatePercent.Equal(m.WeightedRatePercent))
	assert.True(t, s.TotalCommissionValue.Equal(m.TotalCommissionValue))
}

func TestBuildSummary_ZeroMetrics(t *testing.T) {
	s := BuildSummary(domain.MetricsResult{})

	assert.True(t, s.DiversificationScore.IsZero())
	assert.Empty(t, s.TopIssuers)
	assert.Empty(t, s.TopSectors)
	assert.True(t, s.AnnualCouponTotal.IsZero())
}
