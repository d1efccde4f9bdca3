package sensibull

// Metacache is the combined reference document. Derivatives are keyed by
// underlying, then expiry date; options nest further by strike (as a JSON
// object key, so a string) and option type. The underlyer list nests
// exchange → exchange group → segment → symbol.
type Metacache struct {
	Derivatives   map[string]UnderlyingDerivatives                      `json:"derivatives"`
	UnderlyerList map[string]map[string]map[string]map[string]Underlyer `json:"underlyer_list"`
}

// UnderlyingDerivatives holds every listed expiry for one underlying.
type UnderlyingDerivatives struct {
	Derivatives map[string]Expiry `json:"derivatives"`
}

// Expiry is one expiry bucket: an option grid and at most one future.
type Expiry struct {
	Options map[string]map[string]Contract `json:"options"`
	Future  *Contract                      `json:"FUT"`
}

// Contract is one listed option or future.
type Contract struct {
	InstrumentToken int64  `json:"instrument_token"`
	Tradingsymbol   string `json:"tradingsymbol"`
	ExpiryType      string `json:"expiry_type"`
}

// Underlyer is one FnO-eligible equity or index.
type Underlyer struct {
	InstrumentToken int64   `json:"instrument_token"`
	IsNonFno        bool    `json:"is_non_fno"`
	Name            string  `json:"name"`
	Tradingsymbol   string  `json:"tradingsymbol"`
	TickSize        float64 `json:"tick_size"`
	LotSize         float64 `json:"lot_size"`
}

// OHLCIV is one day of the iv_chart feed.
type OHLCIV struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
	IV    float64 `json:"iv"`
}

// IVChart is the daily history for one symbol, keyed by YYYY-MM-DD date.
type IVChart struct {
	Symbol string
	Data   map[string]OHLCIV
}

type ivChartResponse struct {
	Payload struct {
		IVOHLCData map[string]OHLCIV `json:"iv_ohlc_data"`
	} `json:"payload"`
}
