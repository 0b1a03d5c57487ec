package aggregator

import (
	"errors"

	"PnLBoard/internal/model"
)

// ErrEmptyDataset is returned when summarization is requested on zero records:
// the current balance and best/worst day are undefined on an empty sequence.
var ErrEmptyDataset = errors.New("dataset has no records")

// Summarize computes the dashboard metrics from a loaded dataset. Pure
// function: no I/O, ds is not mutated. Best/worst ties resolve to the first
// occurrence in sequence order.
func Summarize(ds model.Dataset) (model.SummaryMetrics, error) {
	if len(ds) == 0 {
		return model.SummaryMetrics{}, ErrEmptyDataset
	}

	m := model.SummaryMetrics{
		CurrentBalance: ds[len(ds)-1].OverallMoney,
		BestDay:        ds[0],
		WorstDay:       ds[0],
	}
	for _, r := range ds {
		m.TotalPnL = m.TotalPnL.Add(r.GainLoss)
		m.TotalIn = m.TotalIn.Add(r.MoneyIn)
		m.TotalOut = m.TotalOut.Add(r.MoneyOut)
		if r.GainLoss.GreaterThan(m.BestDay.GainLoss) {
			m.BestDay = r
		}
		if r.GainLoss.LessThan(m.WorstDay.GainLoss) {
			m.WorstDay = r
		}
	}
	return m, nil
}
