package domain

import (
	"strconv"
	"strings"
)

// PaymentFrequency represents how often an asset pays coupons.
type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "MONTHLY"
	FrequencyQuarterly  PaymentFrequency = "QUARTERLY"
	FrequencySemiannual PaymentFrequency = "SEMIANNUAL"
	FrequencyAnnual     PaymentFrequency = "ANNUAL"
	FrequencyNone       PaymentFrequency = "" // asset pays no periodic coupon
)

// ParsePaymentFrequency classifies a free-text payment frequency into a
// PaymentFrequency. English and Portuguese spellings are accepted
// ("monthly"/"mensal", "quarterly"/"trimestral", ...).
// Unrecognized or empty text classifies as FrequencyNone, never an error.
func ParsePaymentFrequency(text string) PaymentFrequency {
	normalized := strings.ToUpper(strings.TrimSpace(text))

	switch normalized {
	case string(FrequencyMonthly), string(FrequencyQuarterly), string(FrequencySemiannual), string(FrequencyAnnual):
		return PaymentFrequency(normalized)
	}

	switch {
	case strings.HasPrefix(normalized, "MENSAL"), strings.HasPrefix(normalized, "MONTH"):
		return FrequencyMonthly
	case strings.HasPrefix(normalized, "TRIMESTRAL"), strings.HasPrefix(normalized, "QUARTER"):
		return FrequencyQuarterly
	case strings.HasPrefix(normalized, "SEMESTRAL"), strings.HasPrefix(normalized, "SEMIANNUAL"), strings.HasPrefix(normalized, "SEMI-ANNUAL"):
		return FrequencySemiannual
	case strings.HasPrefix(normalized, "ANUAL"), strings.HasPrefix(normalized, "ANNUAL"), strings.HasPrefix(normalized, "YEARLY"):
		return FrequencyAnnual
	default:
		return FrequencyNone
	}
}

// AllMonthsSentinels are the spellings of the "pays every month" sentinel
// accepted by ParsePaymentMonths.
var allMonthsSentinels = map[string]bool{
	"ALL":   true,
	"TODOS": true,
}

// ParsePaymentMonths parses a free-text payment-month list into a
// de-duplicated slice of zero-based month indexes (0 = January).
//
// The sentinel "ALL" (or Portuguese "TODOS", case-insensitive) expands to
// every month. Otherwise the text is split on commas, whitespace, and the
// standalone conjunction "e" ("Janeiro e Julho" style lists), each token is
// parsed as a 1-based month number, and out-of-range or non-numeric tokens
// are discarded.
//
// This tokenizer is the single authority for the month-list format; every
// caller goes through it. It never returns an error — unparseable input
// yields an empty slice.
func ParsePaymentMonths(text string) []int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if allMonthsSentinels[strings.ToUpper(trimmed)] {
		months := make([]int, 12)
		for i := range months {
			months[i] = i
		}
		return months
	}

	tokens := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	seen := make(map[int]bool)
	months := make([]int, 0, len(tokens))
	for _, token := range tokens {
		// The conjunction "e" between months is a separator, not a month
		if strings.EqualFold(token, "E") {
			continue
		}

		monthNumber, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		if monthNumber < 1 || monthNumber > 12 {
			continue
		}

		monthIndex := monthNumber - 1
		if !seen[monthIndex] {
			seen[monthIndex] = true
			months = append(months, monthIndex)
		}
	}

	return months
}
