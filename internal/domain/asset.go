package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// IndexerKind represents the reference rate an asset's yield is expressed
// relative to. Free-text descriptions ("108% CDI", "IPCA + 6,25%") are
// classified into one of these kinds once, at the ingestion boundary.
type IndexerKind string

const (
	IndexerIPCA      IndexerKind = "IPCA"
	IndexerPrefixada IndexerKind = "PREFIXADA"
	IndexerPctCDI    IndexerKind = "PCT_CDI"
	IndexerCDIPlus   IndexerKind = "CDI_PLUS"
	IndexerUnknown   IndexerKind = "UNKNOWN"
)

// ParseIndexerKind classifies a free-text indexer description into an
// IndexerKind. It accepts both the canonical enum spellings and the
// Portuguese market shorthand found in imported spreadsheets
// ("prefixado", "% CDI", "CDI+").
// Unrecognized text classifies as IndexerUnknown, never an error.
func ParseIndexerKind(text string) IndexerKind {
	normalized := strings.ToUpper(strings.TrimSpace(text))

	switch normalized {
	case string(IndexerIPCA), string(IndexerPrefixada), string(IndexerPctCDI), string(IndexerCDIPlus):
		return IndexerKind(normalized)
	}

	// Collapse spaces so "% CDI" and "CDI +" match their compact forms
	compact := strings.ReplaceAll(normalized, " ", "")

	switch {
	case strings.Contains(compact, "IPCA"):
		return IndexerIPCA
	case strings.Contains(compact, "PREFIX"):
		return IndexerPrefixada
	case strings.Contains(compact, "%CDI"), strings.Contains(compact, "%DOCDI"):
		return IndexerPctCDI
	case strings.Contains(compact, "CDI"):
		return IndexerCDIPlus
	default:
		return IndexerUnknown
	}
}

// Asset represents a fixed-income asset as produced by the import layer.
// All fields are populated before the engine sees them; optional fields use
// nil (decimals) or the zero value (strings) to mean "absent".
type Asset struct {
	Name              string           `json:"name"`
	Code              string           `json:"code"`
	Issuer            string           `json:"issuer"`
	Sector            string           `json:"sector"` // empty means unspecified
	Type              string           `json:"type"`   // LCI, CDB, CRA... informational only
	Indexer           IndexerKind      `json:"indexer"`
	RateText          string           `json:"rate_text"` // free-form, e.g. "12,5%", "108% CDI", "IPCA + 6.25%"
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	PaymentFrequency  PaymentFrequency `json:"payment_frequency"`
	PaymentMonths     string           `json:"payment_months"` // raw month list, parsed by ParsePaymentMonths
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
}

// Holding represents one asset position within a portfolio.
// Value is the market value of the position, carried independently of
// Quantity times UnitPrice.
type Holding struct {
	Asset    Asset
	Quantity decimal.Decimal
	Value    decimal.Decimal
}

// SectorUnspecified is the concentration-map key used for holdings whose
// asset carries no sector.
const SectorUnspecified = "unspecified"

// SectorKey returns the concentration-map key for the holding's sector.
func (h Holding) SectorKey() string {
	if h.Asset.Sector == "" {
		return SectorUnspecified
	}
	return h.Asset.Sector
}
