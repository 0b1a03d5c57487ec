package loader

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"PnLBoard/internal/logger"
	"PnLBoard/internal/model"
	"PnLBoard/internal/parser"
	"PnLBoard/internal/source"
)

// Loader turns the raw fetched table into a sorted, typed dataset.
type Loader struct {
	fetcher       source.Fetcher
	referenceYear int
	log           *logger.Logger
}

// NewLoader creates a Loader. A zero referenceYear means "the year at load time".
func NewLoader(fetcher source.Fetcher, referenceYear int, log *logger.Logger) *Loader {
	return &Loader{fetcher: fetcher, referenceYear: referenceYear, log: log}
}

// Load fetches the table, parses every row, and stable-sorts by date.
// A single row's date failure aborts the whole load; there is no partial
// dataset. Numeric cells never fail (they coerce to zero).
func (l *Loader) Load(ctx context.Context) (model.Dataset, error) {
	rows, err := l.fetcher.FetchTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch table: %w", err)
	}

	year := l.referenceYear
	if year == 0 {
		year = time.Now().Year()
	}

	ds := make(model.Dataset, 0, len(rows))
	for i, raw := range rows {
		rec, err := parser.ParseRecord(raw, year)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		ds = append(ds, rec)
	}

	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Date.Before(ds[j].Date) })

	l.log.Info("dataset loaded",
		zap.String("source", l.fetcher.Name()),
		zap.Int("records", len(ds)),
		zap.Int("reference_year", year))
	return ds, nil
}
