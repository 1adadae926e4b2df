package scrape

import (
	"regexp"
	"strconv"
	"strings"
)

// Salary periods.
const (
	PeriodHourly  = "hourly"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAnnual  = "annual"
)

// ParsedSalary holds the bounds extracted from free-form salary text.
// Nil bounds mean the text carried no usable number.
type ParsedSalary struct {
	Min      *float64
	Max      *float64
	Currency string
	Period   string
	RawText  string
}

// currencySymbols is checked in order; symbols before codes so "$" wins
// over an incidental "usd" later in the text.
var currencySymbols = []struct {
	symbol   string
	currency string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"usd", "USD"},
	{"eur", "EUR"},
	{"gbp", "GBP"},
	{"jpy", "JPY"},
}

var periodIndicators = []struct {
	indicator string
	period    string
}{
	{"hourly", PeriodHourly},
	{"hour", PeriodHourly},
	{"hr", PeriodHourly},
	{"yearly", PeriodAnnual},
	{"year", PeriodAnnual},
	{"annual", PeriodAnnual},
	{"monthly", PeriodMonthly},
	{"month", PeriodMonthly},
	{"weekly", PeriodWeekly},
	{"week", PeriodWeekly},
}

var (
	salaryCleanRe = regexp.MustCompile(`[^\w\s$€£¥,.\-]`)
	kSuffixRe     = regexp.MustCompile(`(?i)(\d+)k\b`)
	// num matches either comma-grouped thousands or a plain digit run;
	// K-suffix expansion produces the latter (120k -> 120000).
	numberRe       = regexp.MustCompile(`[$€£¥]?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)`)
	allNumbersRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	rangeDashRe    = regexp.MustCompile(`[$€£¥]?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)\s*[-–—]\s*[$€£¥]?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)`)
	rangeToRe      = regexp.MustCompile(`(?i)[$€£¥]?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)\s+to\s+[$€£¥]?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)`)
	upToRe         = regexp.MustCompile(`(?i)up\s+to\s+[$€£¥]?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)`)
	fromStartingRe = regexp.MustCompile(`(?i)(?:from|starting)\s+(?:at\s+)?[$€£¥]?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)`)
	hasUpToRe      = regexp.MustCompile(`(?i)up\s+to`)
	hasFromRe      = regexp.MustCompile(`(?i)(from|starting)`)
)

// ParseSalary extracts (min, max, currency, period) from salary text.
// Hourly figures are converted to annual at 40 hours/week, 52 weeks/year.
// Text with no usable numbers yields nil bounds, never an error.
func ParseSalary(salaryText string) ParsedSalary {
	result := ParsedSalary{
		Currency: "USD",
		RawText:  salaryText,
	}

	if salaryText == "" {
		return result
	}

	text := strings.ToLower(strings.TrimSpace(salaryText))
	text = salaryCleanRe.ReplaceAllString(text, " ")

	for _, entry := range currencySymbols {
		if strings.Contains(text, entry.symbol) {
			result.Currency = entry.currency
			break
		}
	}

	for _, entry := range periodIndicators {
		if strings.Contains(text, entry.indicator) {
			result.Period = entry.period
			break
		}
	}

	// Expand K suffix before number extraction (120k -> 120000).
	normalized := kSuffixRe.ReplaceAllString(text, "${1}000")

	// Infer the period from magnitude when the text never names one.
	if result.Period == "" {
		result.Period = inferPeriod(normalized)
	}

	min, max, found := extractRange(normalized)
	if found {
		result.Min = &min
		result.Max = &max
	} else {
		switch {
		case hasUpToRe.MatchString(text):
			if m := upToRe.FindStringSubmatch(normalized); m != nil {
				v := parseNumber(m[1])
				result.Max = &v
			}
		case hasFromRe.MatchString(text):
			if m := fromStartingRe.FindStringSubmatch(normalized); m != nil {
				v := parseNumber(m[1])
				result.Min = &v
			}
		default:
			if m := numberRe.FindStringSubmatch(normalized); m != nil {
				v := parseNumber(m[1])
				result.Min = &v
			}
		}
	}

	if result.Period == PeriodHourly && (result.Min != nil || result.Max != nil) {
		if result.Min != nil {
			annual := *result.Min * 40 * 52
			result.Min = &annual
		}
		if result.Max != nil {
			annual := *result.Max * 40 * 52
			result.Max = &annual
		}
		result.Period = PeriodAnnual
	}

	return result
}

func extractRange(text string) (float64, float64, bool) {
	for _, re := range []*regexp.Regexp{rangeDashRe, rangeToRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return parseNumber(m[1]), parseNumber(m[2]), true
		}
	}
	return 0, 0, false
}

func inferPeriod(text string) string {
	matches := allNumbersRe.FindAllString(strings.ReplaceAll(text, ",", ""), -1)
	if len(matches) == 0 {
		return ""
	}

	var sum float64
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		sum += v
	}
	avg := sum / float64(len(matches))

	switch {
	case avg < 200:
		return PeriodHourly
	case avg < 10000:
		return PeriodMonthly
	default:
		return PeriodAnnual
	}
}

func parseNumber(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}

// AnnualBounds rounds the parsed bounds to integer dollars for storage.
func (p ParsedSalary) AnnualBounds() (*int64, *int64) {
	var min, max *int64
	if p.Min != nil {
		v := int64(*p.Min + 0.5)
		min = &v
	}
	if p.Max != nil {
		v := int64(*p.Max + 0.5)
		max = &v
	}
	return min, max
}
