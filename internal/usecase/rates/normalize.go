package rates

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rendalab/carteira-backend/internal/domain"
)

// Numeric tokens in imported rate descriptions use Brazilian financial
// notation: at most one separator, where a comma followed by up to two
// digits is a decimal separator ("12,5") and any other comma is a
// thousands separator ("1,250").
var (
	numberPattern  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	percentPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)
)

// Fixed assumptions of the rate heuristic. These are intentionally crude:
// the normalizer exists to make free-text rates comparable on one axis, not
// to price them. The coupon projector applies the precise indexer-aware
// formulas; the mismatch between the two is a known, preserved behavior.
var (
	cdiMultiplierThreshold = decimal.NewFromInt(10)
	cdiSpreadBase          = decimal.NewFromInt(10)
	ipcaFixedOffset        = decimal.NewFromInt(4)
)

// NormalizeRate parses a free-text rate description into a comparable
// annual percentage. Resolution order:
//
//  1. An explicit "<number>%" with no CDI/IPCA context returns that number.
//  2. CDI context: the leading number is a percentage-of-CDI multiplier
//     when greater than 10 (scaled by 10), otherwise a spread over an
//     assumed base of 10.
//  3. IPCA context: the number after "+" plus a fixed 4-point IPCA
//     assumption.
//  4. Otherwise the first numeric token found, or 0.
//
// The reference table is part of the contract but deliberately unused: the
// heuristic never looks CDI/IPCA up (see the note on the fixed assumptions
// above). Unparseable text yields 0; this function never fails.
func NormalizeRate(rateText string, indexer domain.IndexerKind, referenceRates domain.ReferenceRateTable) decimal.Decimal {
	upper := strings.ToUpper(rateText)

	mentionsCDI := strings.Contains(upper, "CDI") ||
		indexer == domain.IndexerPctCDI || indexer == domain.IndexerCDIPlus
	mentionsIPCA := strings.Contains(upper, "IPCA") || indexer == domain.IndexerIPCA

	if !mentionsCDI && !mentionsIPCA {
		if match := percentPattern.FindStringSubmatch(rateText); match != nil {
			if value, ok := parseNumberToken(match[1]); ok {
				return value
			}
		}
	}

	if mentionsCDI {
		value, ok := firstNumber(rateText)
		if !ok {
			return decimal.Zero
		}
		if value.GreaterThan(cdiMultiplierThreshold) {
			return value.Div(cdiMultiplierThreshold)
		}
		return value.Add(cdiSpreadBase)
	}

	if mentionsIPCA {
		spread := decimal.Zero
		if plus := strings.Index(rateText, "+"); plus >= 0 {
			if value, ok := firstNumber(rateText[plus+1:]); ok {
				spread = value
			}
		}
		return spread.Add(ipcaFixedOffset)
	}

	if value, ok := firstNumber(rateText); ok {
		return value
	}
	return decimal.Zero
}

// firstNumber extracts the first numeric token from text.
func firstNumber(text string) (decimal.Decimal, bool) {
	token := numberPattern.FindString(text)
	if token == "" {
		return decimal.Zero, false
	}
	return parseNumberToken(token)
}

// parseNumberToken converts one numeric token to a decimal, applying the
// comma convention described on numberPattern.
func parseNumberToken(token string) (decimal.Decimal, bool) {
	if comma := strings.Index(token, ","); comma >= 0 {
		if len(token)-comma-1 <= 2 {
			token = token[:comma] + "." + token[comma+1:]
		} else {
			token = token[:comma] + token[comma+1:]
		}
	}

	value, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}
