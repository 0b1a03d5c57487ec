package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column names of the trading sheet, after header trimming and lowercasing.
const (
	ColumnDate         = "date"
	ColumnMoneyIn      = "money in"
	ColumnGainLoss     = "gain/loss"
	ColumnMoneyOut     = "money out"
	ColumnOverallMoney = "overall money"
)

// RawRecord is one source row as fetched: column name to cell text.
type RawRecord map[string]string

// Record is one trading day after parsing. Date is midnight UTC.
type Record struct {
	Date         time.Time       `json:"date"`
	MoneyIn      decimal.Decimal `json:"money_in"`
	GainLoss     decimal.Decimal `json:"gain_loss"`
	MoneyOut     decimal.Decimal `json:"money_out"`
	OverallMoney decimal.Decimal `json:"overall_money"`
}

// Dataset is an ordered run of records, non-decreasing by date.
// It is replaced wholesale on refresh and never mutated in place.
type Dataset []Record
