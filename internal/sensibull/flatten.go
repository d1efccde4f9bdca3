package sensibull

import (
	"sort"
	"strconv"

	"iv-data/internal/model"
)

// Underlyer groups flattened into scripts. The feed nests NSE equities and
// NSE indices under separate exchange groups, both in the EQ segment.
const (
	exchangeNSE     = "NSE"
	groupNSE        = "NSE"
	groupNSEIndices = "NSE-INDICES"
	segmentEQ       = "EQ"
)

// Options flattens the option grid into contract rows. Strike keys that do
// not parse as numbers are skipped. Iteration is key-sorted so repeated runs
// produce rows in the same order.
func (mc *Metacache) Options() []model.FnoScript {
	var out []model.FnoScript
	for _, underlying := range sortedKeys(mc.Derivatives) {
		expiries := mc.Derivatives[underlying].Derivatives
		for _, expiry := range sortedKeys(expiries) {
			opts := expiries[expiry].Options
			for _, strikeKey := range sortedKeys(opts) {
				strike, err := strconv.ParseFloat(strikeKey, 64)
				if err != nil {
					continue
				}
				byType := opts[strikeKey]
				for _, optType := range sortedKeys(byType) {
					c := byType[optType]
					out = append(out, model.FnoScript{
						InstrumentToken: c.InstrumentToken,
						Tradingsymbol:   c.Tradingsymbol,
						Underlying:      underlying,
						Expiry:          expiry,
						ExpiryType:      c.ExpiryType,
						OptionType:      optType,
						Strike:          strike,
					})
				}
			}
		}
	}
	return out
}

// Futures flattens the FUT entries. Futures carry the sentinel strike and
// are always monthly.
func (mc *Metacache) Futures() []model.FnoScript {
	var out []model.FnoScript
	for _, underlying := range sortedKeys(mc.Derivatives) {
		expiries := mc.Derivatives[underlying].Derivatives
		for _, expiry := range sortedKeys(expiries) {
			fut := expiries[expiry].Future
			if fut == nil {
				continue
			}
			out = append(out, model.FnoScript{
				InstrumentToken: fut.InstrumentToken,
				Tradingsymbol:   fut.Tradingsymbol,
				Underlying:      underlying,
				Expiry:          expiry,
				ExpiryType:      "monthly",
				OptionType:      model.OptionTypeFuture,
				Strike:          model.FutureStrike,
			})
		}
	}
	return out
}

// Underlyers flattens the NSE equity and NSE index underlyer lists into
// script rows.
func (mc *Metacache) Underlyers() []model.Script {
	var out []model.Script
	for _, group := range []string{groupNSE, groupNSEIndices} {
		segment := mc.UnderlyerList[exchangeNSE][group][segmentEQ]
		for _, symbol := range sortedKeys(segment) {
			u := segment[symbol]
			out = append(out, model.Script{
				InstrumentToken: u.InstrumentToken,
				IsNonFno:        u.IsNonFno,
				Name:            u.Name,
				Tradingsymbol:   u.Tradingsymbol,
				TickSize:        u.TickSize,
				Underlying:      symbol,
				LotSize:         u.LotSize,
			})
		}
	}
	return out
}

// Bars converts the date-keyed chart payload into date-ordered rows.
func (ch *IVChart) Bars() []model.IVBar {
	out := make([]model.IVBar, 0, len(ch.Data))
	for _, date := range sortedKeys(ch.Data) {
		d := ch.Data[date]
		out = append(out, model.IVBar{
			Script: ch.Symbol,
			Date:   date,
			Open:   d.Open,
			High:   d.High,
			Low:    d.Low,
			Close:  d.Close,
			IV:     d.IV,
		})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
