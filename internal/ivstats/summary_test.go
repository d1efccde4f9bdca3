package ivstats

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

// day returns the YYYY-MM-DD date offset days back from testNow.
func day(offset int) string {
	return testNow.AddDate(0, 0, -offset).Format("2006-01-02")
}

func row(symbol string, dayOffset int, iv, close float64) Row {
	return Row{Tradingsymbol: symbol, Name: symbol + " Ltd", IV: iv, Date: day(dayOffset), Close: close}
}

func findSummary(t *testing.T, sums []Summary, symbol string) Summary {
	t.Helper()
	for _, s := range sums {
		if s.Tradingsymbol == symbol {
			return s
		}
	}
	t.Fatalf("symbol %s not in summaries", symbol)
	return Summary{}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil, testNow); len(got) != 0 {
		t.Fatalf("expected empty output, got %d summaries", len(got))
	}
	if got := Summarize([]Row{}, testNow); len(got) != 0 {
		t.Fatalf("expected empty output, got %d summaries", len(got))
	}
}

func TestSummarizeSingleObservation(t *testing.T) {
	sums := Summarize([]Row{row("ACME", 0, 22.5, 150)}, testNow)
	if len(sums) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(sums))
	}
	s := sums[0]
	if s.IVPercentile != 100 {
		t.Errorf("iv_percentile = %v, want 100", s.IVPercentile)
	}
	if s.IVRank != nil {
		t.Errorf("iv_rank = %v, want nil (min == max)", *s.IVRank)
	}
	if s.SixMonthsReturn != 0 || s.OneMonthReturn != 0 || s.OneWeekReturn != 0 {
		t.Errorf("horizon returns = %v/%v/%v, want all 0 with no history",
			s.SixMonthsReturn, s.OneMonthReturn, s.OneWeekReturn)
	}
	if s.IVMeanRatio == nil || *s.IVMeanRatio != 1.0 {
		t.Errorf("iv_mean_ratio = %v, want 1.0", s.IVMeanRatio)
	}
}

func TestSummarizeConstantIV(t *testing.T) {
	rows := []Row{
		row("FLAT", 20, 18, 100),
		row("FLAT", 10, 18, 110),
		row("FLAT", 0, 18, 120),
	}
	s := findSummary(t, Summarize(rows, testNow), "FLAT")
	if s.IVRank != nil {
		t.Errorf("iv_rank = %v, want nil for constant IV", *s.IVRank)
	}
	if s.IVMeanRatio == nil || *s.IVMeanRatio != 1.0 {
		t.Errorf("iv_mean_ratio = %v, want 1.0", s.IVMeanRatio)
	}
	if s.RecentIVJump == nil || *s.RecentIVJump != 1.0 {
		t.Errorf("recent_iv_jump = %v, want 1.0", s.RecentIVJump)
	}
	if s.IVPercentile != 100 {
		t.Errorf("iv_percentile = %v, want 100 (every obs <= current)", s.IVPercentile)
	}
}

func TestSummarizeRankAndPercentile(t *testing.T) {
	// IVs 10, 20, 30, current 30: rank (30-10)/(30-10)*100 = 100.
	rows := []Row{
		row("UP", 20, 10, 100),
		row("UP", 10, 20, 100),
		row("UP", 0, 30, 100),
	}
	s := findSummary(t, Summarize(rows, testNow), "UP")
	if s.IVRank == nil || *s.IVRank != 100 {
		t.Errorf("iv_rank = %v, want 100", s.IVRank)
	}
	if s.IVPercentile != 100 {
		t.Errorf("iv_percentile = %v, want 100", s.IVPercentile)
	}

	// Current in the middle: rank 50, percentile 2/3.
	rows = []Row{
		row("MID", 20, 10, 100),
		row("MID", 10, 30, 100),
		row("MID", 0, 20, 100),
	}
	s = findSummary(t, Summarize(rows, testNow), "MID")
	if s.IVRank == nil || *s.IVRank != 50 {
		t.Errorf("iv_rank = %v, want 50", s.IVRank)
	}
	if s.IVPercentile != 66.67 {
		t.Errorf("iv_percentile = %v, want 66.67", s.IVPercentile)
	}
}

func TestPercentileMonotonicInCurrentIV(t *testing.T) {
	history := []Row{
		row("MONO", 30, 15, 100),
		row("MONO", 20, 25, 100),
		row("MONO", 10, 35, 100),
	}
	prev := -1.0
	for _, currentIV := range []float64{10, 20, 30, 40} {
		rows := append(append([]Row{}, history...), row("MONO", 0, currentIV, 100))
		s := findSummary(t, Summarize(rows, testNow), "MONO")
		if s.IVPercentile < prev {
			t.Errorf("iv_percentile decreased from %v to %v as current_iv rose to %v",
				prev, s.IVPercentile, currentIV)
		}
		prev = s.IVPercentile
	}
}

func TestOneWeekReturnTakesLatestAtOrBeforeCutoff(t *testing.T) {
	// Series (d-10, close 100), (d-5, close 105), (d0, close 110); cutoff d-7
	// lands between rows, so d-10 is the reference close.
	rows := []Row{
		row("RET", 10, 20, 100),
		row("RET", 5, 25, 105),
		row("RET", 0, 30, 110),
	}
	s := findSummary(t, Summarize(rows, testNow), "RET")
	if s.OneWeekReturn != 10.0 {
		t.Errorf("one_week_return = %v, want 10.0", s.OneWeekReturn)
	}
	// No row at or before d-30 or d-180: fallback is a literal 0.
	if s.OneMonthReturn != 0 || s.SixMonthsReturn != 0 {
		t.Errorf("longer horizon returns = %v/%v, want 0 fallback", s.OneMonthReturn, s.SixMonthsReturn)
	}
}

func TestRecentIVJumpUsesLastSix(t *testing.T) {
	ivs := []float64{10, 12, 14, 16, 18, 20}
	rows := make([]Row, 0, len(ivs))
	for i, iv := range ivs {
		rows = append(rows, row("JUMP", len(ivs)-1-i, iv, 100))
	}
	s := findSummary(t, Summarize(rows, testNow), "JUMP")
	// recent mean = mean(10..20) = 15, jump = 20/15 rounded.
	if s.RecentIVJump == nil || *s.RecentIVJump != 1.33 {
		t.Errorf("recent_iv_jump = %v, want 1.33", s.RecentIVJump)
	}

	// With more than six observations only the trailing six count.
	older := append([]Row{row("JUMP", 40, 100, 100)}, rows...)
	s = findSummary(t, Summarize(older, testNow), "JUMP")
	if s.RecentIVJump == nil || *s.RecentIVJump != 1.33 {
		t.Errorf("recent_iv_jump with older history = %v, want 1.33", s.RecentIVJump)
	}
}

func TestZeroHistoricalPriceFallsBackToZeroReturn(t *testing.T) {
	rows := []Row{
		row("ZERO", 10, 20, 0), // stored close of 0 must not divide
		row("ZERO", 0, 30, 110),
	}
	s := findSummary(t, Summarize(rows, testNow), "ZERO")
	if s.OneWeekReturn != 0 {
		t.Errorf("one_week_return = %v, want 0 when reference price is 0", s.OneWeekReturn)
	}
}

func TestZeroMeanIVGivesNilRatios(t *testing.T) {
	rows := []Row{
		row("NILIV", 10, 0, 100),
		row("NILIV", 0, 0, 100),
	}
	s := findSummary(t, Summarize(rows, testNow), "NILIV")
	if s.IVMeanRatio != nil {
		t.Errorf("iv_mean_ratio = %v, want nil for zero mean", *s.IVMeanRatio)
	}
	if s.RecentIVJump != nil {
		t.Errorf("recent_iv_jump = %v, want nil for zero recent mean", *s.RecentIVJump)
	}
}

func TestSummarizeSortsByRankDescending(t *testing.T) {
	rows := []Row{
		row("LOW", 10, 10, 100), row("LOW", 0, 11, 100), // rank 100 but small range
		row("HIGH", 10, 10, 100), row("HIGH", 5, 40, 100), row("HIGH", 0, 25, 100),
		row("FLATIV", 10, 18, 100), row("FLATIV", 0, 18, 100), // unranked
	}
	sums := Summarize(rows, testNow)
	if len(sums) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(sums))
	}
	if sums[len(sums)-1].Tradingsymbol != "FLATIV" {
		t.Errorf("unranked symbol should sort last, got order %v",
			[]string{sums[0].Tradingsymbol, sums[1].Tradingsymbol, sums[2].Tradingsymbol})
	}
	for i := 0; i+1 < len(sums); i++ {
		a, b := sums[i].IVRank, sums[i+1].IVRank
		if a != nil && b != nil && *a < *b {
			t.Errorf("ranks out of order: %v before %v", *a, *b)
		}
	}
}

func TestGroupsAreIndependent(t *testing.T) {
	rows := []Row{
		row("A", 10, 10, 100),
		row("B", 10, 50, 200),
		row("A", 0, 20, 110),
		row("B", 0, 50, 220),
	}
	sums := Summarize(rows, testNow)
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}
	a := findSummary(t, sums, "A")
	if a.IV != 20 || a.CurrentPrice != 110 {
		t.Errorf("A current iv/price = %v/%v, want 20/110", a.IV, a.CurrentPrice)
	}
	b := findSummary(t, sums, "B")
	if b.IVRank != nil {
		t.Errorf("B iv_rank = %v, want nil", *b.IVRank)
	}
}
