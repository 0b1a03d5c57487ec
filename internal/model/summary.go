package model

import "github.com/shopspring/decimal"

// SummaryMetrics holds the derived dashboard figures. They are stateless and
// recomputed from a Dataset on demand.
type SummaryMetrics struct {
	TotalPnL       decimal.Decimal `json:"total_pnl"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	BestDay        Record          `json:"best_day"`
	WorstDay       Record          `json:"worst_day"`
	TotalIn        decimal.Decimal `json:"total_in"`
	TotalOut       decimal.Decimal `json:"total_out"`
}
