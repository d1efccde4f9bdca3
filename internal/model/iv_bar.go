package model

// IVBar is one daily OHLC + implied-volatility observation for a symbol.
// Dates are stored as YYYY-MM-DD text so lexicographic order is date order.
// Dùng chung cho store, export và serialization (json, parquet).
type IVBar struct {
	Script string  `gorm:"column:script;uniqueIndex:idx_iv_script_date,priority:1" json:"script" parquet:"script"`
	Date   string  `gorm:"column:date;uniqueIndex:idx_iv_script_date,priority:2" json:"date" parquet:"date"`
	Open   float64 `gorm:"column:open" json:"open" parquet:"open"`
	High   float64 `gorm:"column:high" json:"high" parquet:"high"`
	Low    float64 `gorm:"column:low" json:"low" parquet:"low"`
	Close  float64 `gorm:"column:close" json:"close" parquet:"close"`
	IV     float64 `gorm:"column:iv" json:"iv" parquet:"iv"`
}

func (IVBar) TableName() string { return "iv" }
