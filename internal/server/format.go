package server

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"PnLBoard/internal/loader"
	"PnLBoard/internal/model"
)

// Chart palette, matching the reference deployment.
const (
	colorGain    = "#00d4aa"
	colorLoss    = "#ff3b30"
	colorBalance = "#9b59b6"
)

const (
	recordDateLayout = "2006-01-02"
	labelDateLayout  = "02 Jan"
)

// Formatter renders plain decimal amounts as display strings in the
// configured currency. The pipeline itself stays currency-agnostic; symbols
// and locale grouping are applied only here.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter creates a formatter for an ISO currency code.
func NewFormatter(code string) *Formatter {
	return &Formatter{currency: money.GetCurrency(code)}
}

// Display formats an amount with the currency's symbol and grouping.
func (f *Formatter) Display(d decimal.Decimal) string {
	minor := d.Shift(int32(f.currency.Fraction)).Round(0).IntPart()
	return money.New(minor, f.currency.Code).Display()
}

// RecordDTO is one trading day as served to the presentation layer.
type RecordDTO struct {
	Date         string          `json:"date"`
	Label        string          `json:"label"`
	MoneyIn      decimal.Decimal `json:"money_in"`
	GainLoss     decimal.Decimal `json:"gain_loss"`
	MoneyOut     decimal.Decimal `json:"money_out"`
	OverallMoney decimal.Decimal `json:"overall_money"`
}

// MetricDTO is one headline figure with its display string.
type MetricDTO struct {
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
	Date    string          `json:"date,omitempty"`
}

// MetricsDTO carries the four headline metrics.
type MetricsDTO struct {
	TotalPnL       MetricDTO `json:"total_pnl"`
	CurrentBalance MetricDTO `json:"current_balance"`
	BestDay        MetricDTO `json:"best_day"`
	WorstDay       MetricDTO `json:"worst_day"`
}

// ChartDTO is the main bar+line chart: daily P&L bars colored by sign and the
// running balance line.
type ChartDTO struct {
	Labels       []string          `json:"labels"`
	DailyPnL     []decimal.Decimal `json:"daily_pnl"`
	BarColors    []string          `json:"bar_colors"`
	Balance      []decimal.Decimal `json:"balance"`
	BalanceColor string            `json:"balance_color"`
}

// MoneyFlowDTO backs the collapsible money in/out sub-charts.
type MoneyFlowDTO struct {
	Labels          []string          `json:"labels"`
	MoneyIn         []decimal.Decimal `json:"money_in"`
	MoneyOut        []decimal.Decimal `json:"money_out"`
	TotalIn         decimal.Decimal   `json:"total_in"`
	TotalInDisplay  string            `json:"total_in_display"`
	TotalOut        decimal.Decimal   `json:"total_out"`
	TotalOutDisplay string            `json:"total_out_display"`
}

// DashboardResponse is the full payload consumed by the presentation layer.
type DashboardResponse struct {
	Records               []RecordDTO  `json:"records"`
	Metrics               MetricsDTO   `json:"metrics"`
	Chart                 ChartDTO     `json:"chart"`
	MoneyFlow             MoneyFlowDTO `json:"money_flow"`
	LastRefreshed         string       `json:"last_refreshed"`
	LastRefreshedRelative string       `json:"last_refreshed_relative"`
}

// RefreshResponse reports the outcome of a manual refresh.
type RefreshResponse struct {
	Refreshed     bool   `json:"refreshed"`
	Records       int    `json:"records"`
	LastRefreshed string `json:"last_refreshed"`
}

func buildDashboard(snap *loader.Snapshot, metrics model.SummaryMetrics, f *Formatter) DashboardResponse {
	records := make([]RecordDTO, len(snap.Dataset))
	chart := ChartDTO{
		Labels:       make([]string, len(snap.Dataset)),
		DailyPnL:     make([]decimal.Decimal, len(snap.Dataset)),
		BarColors:    make([]string, len(snap.Dataset)),
		Balance:      make([]decimal.Decimal, len(snap.Dataset)),
		BalanceColor: colorBalance,
	}
	flow := MoneyFlowDTO{
		Labels:          chart.Labels,
		MoneyIn:         make([]decimal.Decimal, len(snap.Dataset)),
		MoneyOut:        make([]decimal.Decimal, len(snap.Dataset)),
		TotalIn:         metrics.TotalIn,
		TotalInDisplay:  f.Display(metrics.TotalIn),
		TotalOut:        metrics.TotalOut,
		TotalOutDisplay: f.Display(metrics.TotalOut),
	}

	for i, r := range snap.Dataset {
		label := r.Date.Format(labelDateLayout)
		records[i] = RecordDTO{
			Date:         r.Date.Format(recordDateLayout),
			Label:        label,
			MoneyIn:      r.MoneyIn,
			GainLoss:     r.GainLoss,
			MoneyOut:     r.MoneyOut,
			OverallMoney: r.OverallMoney,
		}
		chart.Labels[i] = label
		chart.DailyPnL[i] = r.GainLoss
		if r.GainLoss.IsNegative() {
			chart.BarColors[i] = colorLoss
		} else {
			chart.BarColors[i] = colorGain
		}
		chart.Balance[i] = r.OverallMoney
		flow.MoneyIn[i] = r.MoneyIn
		flow.MoneyOut[i] = r.MoneyOut
	}

	return DashboardResponse{
		Records: records,
		Metrics: MetricsDTO{
			TotalPnL:       MetricDTO{Amount: metrics.TotalPnL, Display: f.Display(metrics.TotalPnL)},
			CurrentBalance: MetricDTO{Amount: metrics.CurrentBalance, Display: f.Display(metrics.CurrentBalance)},
			BestDay: MetricDTO{
				Amount:  metrics.BestDay.GainLoss,
				Display: f.Display(metrics.BestDay.GainLoss),
				Date:    metrics.BestDay.Date.Format(labelDateLayout),
			},
			WorstDay: MetricDTO{
				Amount:  metrics.WorstDay.GainLoss,
				Display: f.Display(metrics.WorstDay.GainLoss),
				Date:    metrics.WorstDay.Date.Format(labelDateLayout),
			},
		},
		Chart:                 chart,
		MoneyFlow:             flow,
		LastRefreshed:         snap.FetchedAt.Format(time.RFC1123),
		LastRefreshedRelative: humanize.Time(snap.FetchedAt),
	}
}
