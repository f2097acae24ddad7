// Package projection projects the coupon payments of a holdings list onto a
// 12-month horizon. It is a package of pure functions: no repository access,
// no clock, no state beyond its inputs.
package projection

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rendalab/carteira-backend/internal/domain"
	"github.com/rendalab/carteira-backend/internal/usecase/rates"
)

var hundred = decimal.NewFromInt(100)

var paymentsPerYear = map[domain.PaymentFrequency]int64{
	domain.FrequencyMonthly:    12,
	domain.FrequencyQuarterly:  4,
	domain.FrequencySemiannual: 2,
	domain.FrequencyAnnual:     1,
}

// Schedule is the result of a coupon projection. Totals[i] is always the
// sum of the contribution values in Details[i].
type Schedule struct {
	Totals  [domain.MonthsInYear]decimal.Decimal
	Details [domain.MonthsInYear][]domain.CouponContribution
}

// ProjectMonthlyCoupons distributes each holding's annual coupon into
// monthly buckets. cdiRatePercent is the resolved CDI annual percentage used
// by the %CDI and CDI+ formulas.
//
// A holding participates only when it carries a payment frequency, a
// payment-month list, and a unit price; anything else is silently skipped.
// A per-holding parse failure likewise removes only that holding from the
// projection, never the whole computation.
func ProjectMonthlyCoupons(holdings []domain.Holding, cdiRatePercent decimal.Decimal) Schedule {
	var schedule Schedule

	for _, holding := range holdings {
		asset := holding.Asset
		if asset.PaymentFrequency == domain.FrequencyNone ||
			strings.TrimSpace(asset.PaymentMonths) == "" ||
			asset.UnitPrice == nil {
			continue
		}

		perYear, ok := paymentsPerYear[asset.PaymentFrequency]
		if !ok {
			continue
		}

		months := domain.ParsePaymentMonths(asset.PaymentMonths)
		annual := annualCoupon(holding, cdiRatePercent)
		payment := annual.Div(decimal.NewFromInt(perYear))

		if asset.PaymentFrequency == domain.FrequencyMonthly {
			// Monthly assets pay every month regardless of the listed months.
			for month := 0; month < domain.MonthsInYear; month++ {
				schedule.add(month, asset.Name, payment, asset.PaymentFrequency)
			}
			continue
		}

		// Annual frequency with several listed months pays the full coupon
		// in each of them. That is the system's literal behavior, kept as-is.
		for _, month := range months {
			schedule.add(month, asset.Name, payment, asset.PaymentFrequency)
		}
	}

	return schedule
}

// annualCoupon computes a holding's yearly coupon amount using the
// indexer-aware formulas. The base is always unit price times quantity.
func annualCoupon(holding domain.Holding, cdiRatePercent decimal.Decimal) decimal.Decimal {
	base := holding.Asset.UnitPrice.Mul(holding.Quantity)
	rate := rates.NormalizeRate(holding.Asset.RateText, holding.Asset.Indexer, nil).Div(hundred)
	cdi := cdiRatePercent.Div(hundred)

	switch holding.Asset.Indexer {
	case domain.IndexerPctCDI:
		// The normalized rate is a fraction of CDI.
		return rate.Mul(cdi).Mul(base)
	case domain.IndexerCDIPlus:
		// CDI plus a spread.
		return cdi.Add(rate).Mul(base)
	default:
		// IPCA, PREFIXADA and unknown indexers: the normalized rate is the
		// yield itself.
		return rate.Mul(base)
	}
}

func (s *Schedule) add(month int, assetName string, value decimal.Decimal, frequency domain.PaymentFrequency) {
	s.Totals[month] = s.Totals[month].Add(value)
	s.Details[month] = append(s.Details[month], domain.CouponContribution{
		AssetName: assetName,
		Value:     value,
		Frequency: frequency,
	})
}
