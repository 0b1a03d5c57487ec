package source

import (
	"context"

	"PnLBoard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Rows []model.RawRecord
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchTable(_ context.Context) ([]model.RawRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows, nil
}
