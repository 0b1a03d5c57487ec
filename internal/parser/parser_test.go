package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PnLBoard/internal/model"
)

func row(date, in, gain, out, overall string) model.RawRecord {
	return model.RawRecord{
		model.ColumnDate:         date,
		model.ColumnMoneyIn:      in,
		model.ColumnGainLoss:     gain,
		model.ColumnMoneyOut:     out,
		model.ColumnOverallMoney: overall,
	}
}

func TestParseRecord_Date(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{"plain", "11 Nov", time.Date(2025, time.November, 11, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  5 Nov ", time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)},
		{"lowercase month", "5 nov", time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)},
		{"single digit day", "2 Jan", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{"zero padded day", "02 Jan", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecord(row(tt.date, "0", "0", "0", "0"), 2025)
			require.NoError(t, err)
			assert.True(t, rec.Date.Equal(tt.want), "got %v want %v", rec.Date, tt.want)
		})
	}
}

func TestParseRecord_BadDateIsFormatError(t *testing.T) {
	for _, bad := range []string{"", "Nov 11", "32 Nov", "2025-11-11", "yesterday"} {
		_, err := ParseRecord(row(bad, "1", "1", "1", "1"), 2025)
		require.Error(t, err, "date %q", bad)
		var fe *FormatError
		require.True(t, errors.As(err, &fe), "date %q: want *FormatError, got %v", bad, err)
		assert.Equal(t, bad, fe.Value)
	}
}

func TestParseRecord_ThousandsSeparators(t *testing.T) {
	tests := []struct {
		separated string
		plain     string
	}{
		{"1,234", "1234"},
		{"12,34,567", "1234567"}, // lakh-style grouping
		{"1,234.50", "1234.50"},
		{"-1,000", "-1000"},
	}
	for _, tt := range tests {
		withSep, err := ParseRecord(row("1 Jan", tt.separated, tt.separated, tt.separated, tt.separated), 2025)
		require.NoError(t, err)
		withoutSep, err := ParseRecord(row("1 Jan", tt.plain, tt.plain, tt.plain, tt.plain), 2025)
		require.NoError(t, err)
		assert.True(t, withSep.GainLoss.Equal(withoutSep.GainLoss),
			"%q parsed to %s, %q to %s", tt.separated, withSep.GainLoss, tt.plain, withoutSep.GainLoss)
	}
}

func TestParseRecord_LenientNumericCoercion(t *testing.T) {
	for _, bad := range []string{"", "N/A", "-", "--", "abc", "₹100", "1.2.3", "  "} {
		rec, err := ParseRecord(row("1 Jan", bad, bad, bad, bad), 2025)
		require.NoError(t, err, "numeric coercion must never fail, input %q", bad)
		assert.True(t, rec.MoneyIn.IsZero(), "money in for %q: got %s", bad, rec.MoneyIn)
		assert.True(t, rec.GainLoss.IsZero(), "gain/loss for %q: got %s", bad, rec.GainLoss)
		assert.True(t, rec.MoneyOut.IsZero(), "money out for %q: got %s", bad, rec.MoneyOut)
		assert.True(t, rec.OverallMoney.IsZero(), "overall money for %q: got %s", bad, rec.OverallMoney)
	}
}

func TestParseRecord_SignedAmounts(t *testing.T) {
	rec, err := ParseRecord(row("5 Nov", "0", "-200", "50", "800"), 2025)
	require.NoError(t, err)
	assert.Equal(t, "-200", rec.GainLoss.String())
	assert.Equal(t, "50", rec.MoneyOut.String())
	assert.Equal(t, "800", rec.OverallMoney.String())
}

func TestParseRecord_MissingNumericColumnsAreZero(t *testing.T) {
	rec, err := ParseRecord(model.RawRecord{model.ColumnDate: "1 Jan"}, 2025)
	require.NoError(t, err)
	for _, d := range []string{rec.MoneyIn.String(), rec.GainLoss.String(), rec.MoneyOut.String(), rec.OverallMoney.String()} {
		assert.Equal(t, "0", d)
	}
}

func TestParseRecord_ReferenceYearApplied(t *testing.T) {
	rec, err := ParseRecord(row("11 Nov", "0", "0", "0", "0"), 2023)
	require.NoError(t, err)
	assert.Equal(t, 2023, rec.Date.Year())
}
