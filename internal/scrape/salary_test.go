package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantMin      *float64
		wantMax      *float64
		wantCurrency string
		wantPeriod   string
	}{
		{
			name:         "annual range with commas",
			text:         "$120,000 - $150,000 per year",
			wantMin:      fp(120000),
			wantMax:      fp(150000),
			wantCurrency: "USD",
			wantPeriod:   PeriodAnnual,
		},
		{
			name:         "hourly rate converted to annual",
			text:         "$75/hour",
			wantMin:      fp(75 * 40 * 52),
			wantCurrency: "USD",
			wantPeriod:   PeriodAnnual,
		},
		{
			name:         "up to with K suffix",
			text:         "Up to $200K annually",
			wantMax:      fp(200000),
			wantCurrency: "USD",
			wantPeriod:   PeriodAnnual,
		},
		{
			name:         "starting from",
			text:         "Starting from $90,000",
			wantMin:      fp(90000),
			wantCurrency: "USD",
			wantPeriod:   PeriodAnnual,
		},
		{
			name:         "no numbers",
			text:         "Competitive salary",
			wantCurrency: "USD",
		},
		{
			name:         "K suffix range",
			text:         "$100K - $130K",
			wantMin:      fp(100000),
			wantMax:      fp(130000),
			wantCurrency: "USD",
			wantPeriod:   PeriodAnnual,
		},
		{
			name:         "from X to Y",
			text:         "From $85,000 to $110,000",
			wantMin:      fp(85000),
			wantMax:      fp(110000),
			wantCurrency: "USD",
			wantPeriod:   PeriodAnnual,
		},
		{
			name:         "euro range",
			text:         "€60,000 - €80,000 per year",
			wantMin:      fp(60000),
			wantMax:      fp(80000),
			wantCurrency: "EUR",
			wantPeriod:   PeriodAnnual,
		},
		{
			name:         "bare number becomes min",
			text:         "130,000",
			wantMin:      fp(130000),
			wantCurrency: "USD",
			wantPeriod:   PeriodAnnual,
		},
		{
			name:         "monthly inferred from magnitude",
			text:         "$8,000",
			wantMin:      fp(8000),
			wantCurrency: "USD",
			wantPeriod:   PeriodMonthly,
		},
		{
			name:         "empty input",
			text:         "",
			wantCurrency: "USD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSalary(tt.text)

			assertBound(t, tt.wantMin, got.Min, "min")
			assertBound(t, tt.wantMax, got.Max, "max")
			assert.Equal(t, tt.wantCurrency, got.Currency)
			assert.Equal(t, tt.wantPeriod, got.Period)
			assert.Equal(t, tt.text, got.RawText)
		})
	}
}

func fp(v float64) *float64 { return &v }

func assertBound(t *testing.T, want, got *float64, label string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, label)
		return
	}
	require.NotNil(t, got, label)
	assert.InDelta(t, *want, *got, 0.01, label)
}

func TestParsedSalary_AnnualBounds(t *testing.T) {
	parsed := ParsedSalary{Min: fp(99999.6), Max: fp(150000.2)}

	min, max := parsed.AnnualBounds()

	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, int64(100000), *min)
	assert.Equal(t, int64(150000), *max)

	empty := ParsedSalary{}
	min, max = empty.AnnualBounds()
	assert.Nil(t, min)
	assert.Nil(t, max)
}
