// Package ivstats computes per-symbol volatility ranking statistics over a
// trailing window of daily IV observations. Pure computation, no I/O.
package ivstats

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// Horizon offsets for the price-return columns, in calendar days.
const (
	sixMonthsDays = 180
	oneMonthDays  = 30
	oneWeekDays   = 7
)

// recentWindow is the number of trailing observations in the recent-IV mean.
const recentWindow = 6

// Row is one joined (script, observation) row, ordered by date within each
// symbol. Column tags match the select list in store.JoinedIVSince.
type Row struct {
	Tradingsymbol string  `gorm:"column:tradingsymbol" json:"tradingsymbol"`
	Name          string  `gorm:"column:name" json:"name"`
	IV            float64 `gorm:"column:iv" json:"iv"`
	Date          string  `gorm:"column:date" json:"date"`
	Close         float64 `gorm:"column:close" json:"close"`
}

// Summary is the per-symbol volatility rollup. Ratio fields that would need
// a zero denominator are nil rather than zero. All values are rounded to two
// decimals for presentation.
type Summary struct {
	Tradingsymbol   string   `json:"tradingsymbol"`
	Name            string   `json:"name"`
	CurrentPrice    float64  `json:"current_price"`
	IV              float64  `json:"iv"`
	IVRank          *float64 `json:"iv_rank"`
	IVPercentile    float64  `json:"iv_percentile"`
	IVMeanRatio     *float64 `json:"iv_mean_ratio"`
	RecentIVJump    *float64 `json:"recent_iv_jump"`
	SixMonthsReturn float64  `json:"six_months_return"`
	OneMonthReturn  float64  `json:"one_month_return"`
	OneWeekReturn   float64  `json:"one_week_return"`
}

type groupKey struct {
	symbol string
	name   string
}

// Summarize computes one Summary per (tradingsymbol, name) group in rows.
// Rows must already be restricted to the trailing window and ordered by date;
// group order within the slice is preserved from that ordering. Symbols with
// no rows simply do not appear. The result is sorted by IV rank descending
// with unranked symbols last, ties broken by symbol.
func Summarize(rows []Row, now time.Time) []Summary {
	if len(rows) == 0 {
		return nil
	}

	sixMonthsAgo := now.AddDate(0, 0, -sixMonthsDays).Format("2006-01-02")
	oneMonthAgo := now.AddDate(0, 0, -oneMonthDays).Format("2006-01-02")
	oneWeekAgo := now.AddDate(0, 0, -oneWeekDays).Format("2006-01-02")

	groups := make(map[groupKey][]Row)
	var order []groupKey
	for _, r := range rows {
		k := groupKey{symbol: r.Tradingsymbol, name: r.Name}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]Summary, 0, len(order))
	for _, k := range order {
		out = append(out, summarizeGroup(k, groups[k], sixMonthsAgo, oneMonthAgo, oneWeekAgo))
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].IVRank, out[j].IVRank
		switch {
		case ri != nil && rj != nil && *ri != *rj:
			return *ri > *rj
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		}
		return out[i].Tradingsymbol < out[j].Tradingsymbol
	})
	return out
}

func summarizeGroup(k groupKey, group []Row, sixMonthsAgo, oneMonthAgo, oneWeekAgo string) Summary {
	n := len(group)
	last := group[n-1]
	currentIV := last.IV
	currentPrice := last.Close

	ivs := make([]float64, n)
	for i, r := range group {
		ivs[i] = r.IV
	}
	recentIVs := ivs
	if n >= recentWindow {
		recentIVs = ivs[n-recentWindow:]
	}
	recentMeanIV, _ := stats.Mean(recentIVs)
	minIV, _ := stats.Min(ivs)
	maxIV, _ := stats.Max(ivs)
	meanIV, _ := stats.Mean(ivs)

	s := Summary{
		Tradingsymbol: k.symbol,
		Name:          k.name,
		CurrentPrice:  round2(currentPrice),
		IV:            round2(currentIV),
	}

	if maxIV > minIV {
		s.IVRank = ptr(round2((currentIV - minIV) / (maxIV - minIV) * 100))
	}

	atOrBelow := 0
	for _, iv := range ivs {
		if iv <= currentIV {
			atOrBelow++
		}
	}
	s.IVPercentile = round2(float64(atOrBelow) / float64(n) * 100)

	if meanIV != 0 {
		s.IVMeanRatio = ptr(round2(currentIV / meanIV))
	}
	if recentMeanIV != 0 {
		s.RecentIVJump = ptr(round2(currentIV / recentMeanIV))
	}

	s.SixMonthsReturn = horizonReturn(group, sixMonthsAgo, currentPrice)
	s.OneMonthReturn = horizonReturn(group, oneMonthAgo, currentPrice)
	s.OneWeekReturn = horizonReturn(group, oneWeekAgo, currentPrice)
	return s
}

// horizonReturn computes the percent return from the close of the latest
// observation dated at or before cutoff. Missing history (or a zero stored
// price) yields exactly 0; that fallback conflates "no data" with "flat" but
// matches the observable output this table has always produced.
func horizonReturn(group []Row, cutoff string, currentPrice float64) float64 {
	var then float64
	found := false
	for _, r := range group {
		if r.Date <= cutoff {
			then = r.Close
			found = true
		}
	}
	if !found || then == 0 {
		return 0
	}
	return round2((currentPrice - then) / then * 100)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func ptr(v float64) *float64 { return &v }
