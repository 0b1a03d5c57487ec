package source

import (
	"context"
	"fmt"

	"PnLBoard/internal/model"
)

// Fetcher defines the interface for fetching the raw trading table.
type Fetcher interface {
	FetchTable(ctx context.Context) ([]model.RawRecord, error)
	Name() string
}

// UnavailableError indicates the table could not be fetched or decoded.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
