package domain

import "github.com/shopspring/decimal"

// Reference-rate defaults used when the economic-parameters table has no
// current value. CDI and IPCA are annual percentages.
var (
	DefaultCDIRate  = decimal.NewFromFloat(14.65)
	DefaultIPCARate = decimal.NewFromFloat(4.5)
)

// ReferenceRateTable maps a reference-rate name ("CDI", "IPCA", "SELIC", ...)
// to its current annual percentage. A nil table is valid and means "use
// defaults for everything".
type ReferenceRateTable map[string]decimal.Decimal

// CDI returns the table's CDI rate, or DefaultCDIRate when the table is nil
// or has no CDI entry.
func (t ReferenceRateTable) CDI() decimal.Decimal {
	if rate, ok := t["CDI"]; ok {
		return rate
	}
	return DefaultCDIRate
}

// IPCA returns the table's IPCA rate, or DefaultIPCARate when the table is
// nil or has no IPCA entry.
func (t ReferenceRateTable) IPCA() decimal.Decimal {
	if rate, ok := t["IPCA"]; ok {
		return rate
	}
	return DefaultIPCARate
}
