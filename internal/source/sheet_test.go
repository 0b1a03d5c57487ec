package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PnLBoard/internal/model"
)

const sampleCSV = ` date , Money In ,Gain/Loss, money out , Overall Money
5 Nov,"1,000",-200,0,800
6 Nov,0,500,0,"1,300"
`

func TestReadTable_TrimsAndLowercasesHeaders(t *testing.T) {
	records, err := ReadTable(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "5 Nov", first[model.ColumnDate])
	assert.Equal(t, "1,000", first[model.ColumnMoneyIn])
	assert.Equal(t, "-200", first[model.ColumnGainLoss])
	assert.Equal(t, "0", first[model.ColumnMoneyOut])
	assert.Equal(t, "800", first[model.ColumnOverallMoney])
}

func TestReadTable_ShortRowsLeaveColumnsAbsent(t *testing.T) {
	csv := "date,money in,gain/loss,money out,overall money\n5 Nov,100\n"
	records, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "100", rec[model.ColumnMoneyIn])
	_, ok := rec[model.ColumnOverallMoney]
	assert.False(t, ok)
	// Absent columns read as empty strings downstream.
	assert.Equal(t, "", rec[model.ColumnOverallMoney])
}

func TestReadTable_Empty(t *testing.T) {
	records, err := ReadTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ReadTable(strings.NewReader("date,money in,gain/loss,money out,overall money\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSheetFetcher_FetchTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	f := NewSheetFetcher(srv.URL, "")
	records, err := f.FetchTable(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "6 Nov", records[1][model.ColumnDate])
}

func TestSheetFetcher_Non200IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "sheet gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewSheetFetcher(srv.URL, "")
	_, err := f.FetchTable(context.Background())
	require.Error(t, err)
	var ue *UnavailableError
	require.True(t, errors.As(err, &ue))
	assert.Contains(t, ue.Error(), "404")
}

func TestSheetFetcher_ConnectionFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // fetch against a closed listener

	f := NewSheetFetcher(srv.URL, "")
	_, err := f.FetchTable(context.Background())
	require.Error(t, err)
	var ue *UnavailableError
	assert.True(t, errors.As(err, &ue))
}

func TestSheetFetcher_MalformedCSVIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("date,money in\n\"unterminated\n"))
	}))
	defer srv.Close()

	f := NewSheetFetcher(srv.URL, "")
	_, err := f.FetchTable(context.Background())
	require.Error(t, err)
	var ue *UnavailableError
	assert.True(t, errors.As(err, &ue))
}
