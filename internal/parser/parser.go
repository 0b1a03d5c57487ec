package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"PnLBoard/internal/model"
)

// dateLayout matches the sheet's year-less "11 Nov" date cells.
const dateLayout = "2 Jan"

// FormatError reports a date cell that does not match the expected
// day/month pattern. It is fatal to the whole load.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized date %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ParseRecord converts one raw row into a typed record. The date cell is
// combined with referenceYear since the sheet carries no year. Numeric cells
// are coerced leniently: thousands separators are stripped and anything that
// still fails to parse resolves to zero, never an error.
func ParseRecord(raw model.RawRecord, referenceYear int) (model.Record, error) {
	date, err := parseDate(raw[model.ColumnDate], referenceYear)
	if err != nil {
		return model.Record{}, err
	}
	return model.Record{
		Date:         date,
		MoneyIn:      parseAmount(raw[model.ColumnMoneyIn]),
		GainLoss:     parseAmount(raw[model.ColumnGainLoss]),
		MoneyOut:     parseAmount(raw[model.ColumnMoneyOut]),
		OverallMoney: parseAmount(raw[model.ColumnOverallMoney]),
	}, nil
}

func parseDate(text string, referenceYear int) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return time.Time{}, &FormatError{Value: text, Err: err}
	}
	return time.Date(referenceYear, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseAmount(text string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
