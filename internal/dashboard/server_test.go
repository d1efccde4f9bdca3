package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"iv-data/internal/ivstats"
	"iv-data/internal/model"
	"iv-data/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewServer(st, ":0"), st
}

func seed(t *testing.T, st *store.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.UpsertScripts(ctx, []model.Script{
		{InstrumentToken: 1, Tradingsymbol: "ACME", Name: "Acme Ltd", Underlying: "ACME"},
	}))
	now := time.Now().UTC()
	bars := []model.IVBar{
		{Script: "ACME", Date: now.AddDate(0, 0, -10).Format("2006-01-02"), Open: 9, High: 11, Low: 8, Close: 10, IV: 20},
		{Script: "ACME", Date: now.Format("2006-01-02"), Open: 10, High: 12, Low: 9, Close: 11, IV: 30},
	}
	require.NoError(t, st.UpsertIVBars(ctx, bars))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexPageNoData(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No data available")
}

func TestIndexPageRendersTable(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "screener.in/company/ACME")
	require.Contains(t, body, "tradingview.com/chart/?symbol=NSE%3AACME")
	require.Contains(t, body, "Acme Ltd")
	require.NotContains(t, body, "No data available")
}

func TestAPISummary(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)
	rec := get(t, s, "/api/v1/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var sums []ivstats.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sums))
	require.Len(t, sums, 1)
	require.Equal(t, "ACME", sums[0].Tradingsymbol)
	require.Equal(t, 30.0, sums[0].IV)
	require.NotNil(t, sums[0].IVRank)
	require.Equal(t, 100.0, *sums[0].IVRank)
}

func TestAPISummaryEmpty(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/v1/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestAPIOHLC(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)
	rec := get(t, s, "/api/v1/ohlc/ACME")
	require.Equal(t, http.StatusOK, rec.Code)

	var bars []model.IVBar
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bars))
	require.Len(t, bars, 2)
	require.Equal(t, "ACME", bars[0].Script)
}

func TestAPIOHLCExportCSV(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)
	rec := get(t, s, "/api/v1/ohlc/ACME/export?format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "ACME.csv")
	require.Contains(t, rec.Body.String(), "script,date,open,high,low,close,iv")
}

func TestAPIOHLCExportBadFormat(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/api/v1/ohlc/ACME/export?format=xml")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartPage(t *testing.T) {
	s, st := newTestServer(t)
	seed(t, st)
	rec := get(t, s, "/chart/ACME")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "candlestick")

	rec = get(t, s, "/chart/UNKNOWN")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No data available for UNKNOWN")
}
