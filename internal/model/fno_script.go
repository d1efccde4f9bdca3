package model

// Option types as they appear in the metacache.
const (
	OptionTypeCall   = "CE"
	OptionTypePut    = "PE"
	OptionTypeFuture = "FUT"
)

// FutureStrike is the sentinel strike stored for futures rows.
const FutureStrike = -1

// FnoScript is one derivative contract (option or future). The composite
// natural key (underlying, expiry, expiry_type, option_type, strike) is
// unique; re-ingestion overwrites the row bearing the same key.
type FnoScript struct {
	InstrumentToken int64   `gorm:"column:instrument_token;primaryKey" json:"instrument_token"`
	Tradingsymbol   string  `gorm:"column:tradingsymbol;uniqueIndex:idx_fno_symbol" json:"tradingsymbol"`
	Underlying      string  `gorm:"column:underlying;uniqueIndex:idx_fno_key,priority:1;index:idx_fno_underlying_expiry,priority:1" json:"underlying"`
	Expiry          string  `gorm:"column:expiry;uniqueIndex:idx_fno_key,priority:2;index:idx_fno_underlying_expiry,priority:2" json:"expiry"`
	ExpiryType      string  `gorm:"column:expiry_type;uniqueIndex:idx_fno_key,priority:3" json:"expiry_type"`
	OptionType      string  `gorm:"column:option_type;uniqueIndex:idx_fno_key,priority:4;index:idx_fno_option_strike,priority:1" json:"option_type"`
	Strike          float64 `gorm:"column:strike;uniqueIndex:idx_fno_key,priority:5;index:idx_fno_option_strike,priority:2" json:"strike"`
}

func (FnoScript) TableName() string { return "fno_scripts" }
