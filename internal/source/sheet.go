package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PnLBoard/internal/model"
)

// SheetFetcher fetches the published CSV export of the trading sheet.
type SheetFetcher struct {
	URL    string
	Client *http.Client
}

// NewSheetFetcher creates a fetcher with optional proxy support.
func NewSheetFetcher(sheetURL, proxyURL string) *SheetFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &SheetFetcher{
		URL: sheetURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *SheetFetcher) Name() string { return "sheet" }

// FetchTable downloads the full table in one shot.
func (f *SheetFetcher) FetchTable(ctx context.Context) ([]model.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &UnavailableError{Source: f.Name(), Err: err}
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Source: f.Name(), Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &UnavailableError{
			Source: f.Name(),
			Err:    fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)),
		}
	}
	records, err := ReadTable(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Source: f.Name(), Err: err}
	}
	return records, nil
}

// ReadTable decodes a CSV table into raw records. The first row is the header;
// column names are whitespace-trimmed and lowercased before any field access.
// Short rows simply leave the trailing columns absent.
func ReadTable(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	records := make([]model.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(model.RawRecord, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			rec[header[i]] = cell
		}
		records = append(records, rec)
	}
	return records, nil
}
