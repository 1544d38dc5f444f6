package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"thousands separators stripped", "1,234,567", "1234567"},
		{"negative amount", "-9,876", "-9876"},
		{"surrounding whitespace", "  1,000 ", "1000"},
		{"already normalized", "1234567", "1234567"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeAmount(tc.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"1,234,567", " 자산총계 ", "-42", ""}
	for _, in := range inputs {
		once := NormalizeAmount(in)
		assert.Equal(t, once, NormalizeAmount(once))

		name := NormalizeAccountName(in)
		assert.Equal(t, name, NormalizeAccountName(name))
	}
}

func TestNormalizeRows(t *testing.T) {
	rows := []StatementRow{
		{AccountName: " 자산총계 ", Amount: "448,424,507,000,000"},
		{AccountName: "부채총계", Amount: "92,228,115,000,000"},
	}

	out := NormalizeRows(rows)

	require.Len(t, out, 2)
	assert.Equal(t, "자산총계", out[0].AccountName)
	assert.Equal(t, "448424507000000", out[0].Amount)
	assert.Equal(t, "92228115000000", out[1].Amount)

	// Input rows are left untouched.
	assert.Equal(t, " 자산총계 ", rows[0].AccountName)
}

func TestAmountToTrillions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"whole trillions", "448,424,507,000,000", "448.42", true},
		{"rounds to two places", "1,236,000,000,000", "1.24", true},
		{"small amount rounds toward zero", "4,000,000,000", "0", true},
		{"negative", "-2,500,000,000,000", "-2.5", true},
		{"blank", "", "0", false},
		{"whitespace", "   ", "0", false},
		{"nan marker", "NaN", "0", false},
		{"not numeric", "해당없음", "0", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AmountToTrillions(tc.input)
			assert.Equal(t, tc.ok, ok)
			expected, err := decimal.NewFromString(tc.expected)
			require.NoError(t, err)
			assert.True(t, expected.Equal(got), "expected %s got %s", expected, got)
		})
	}
}

func TestPriceDayMetricValue(t *testing.T) {
	day := PriceDay{
		Open:               decimal.NewFromInt(70000),
		High:               decimal.NewFromInt(71000),
		Low:                decimal.NewFromInt(69500),
		Close:              decimal.NewFromInt(70500),
		Volume:             1234567,
		DividendYield:      decimal.NewFromFloat(2.1),
		BookValuePerShare:  decimal.NewFromInt(52002),
		PriceEarningsRatio: decimal.NewFromFloat(13.5),
		PriceBookRatio:     decimal.NewFromFloat(1.36),
	}

	for _, name := range PriceMetricNames() {
		v, ok := day.MetricValue(name)
		assert.True(t, ok, "metric %s should be known", name)
		assert.NotZero(t, v, "metric %s should carry the fixture value", name)
	}

	closePrice, ok := day.MetricValue("Close")
	require.True(t, ok)
	assert.InDelta(t, 70500, closePrice, 0.001)

	_, ok = day.MetricValue("Unknown")
	assert.False(t, ok)
}
