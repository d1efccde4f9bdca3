package model

// Script is one FnO-eligible underlying (equity or index) from the
// instrument metacache. Replaced wholesale on every ingestion run.
type Script struct {
	InstrumentToken int64   `gorm:"column:instrument_token;primaryKey" json:"instrument_token"`
	IsNonFno        bool    `gorm:"column:is_non_fno" json:"is_non_fno"`
	Name            string  `gorm:"column:name" json:"name"`
	Tradingsymbol   string  `gorm:"column:tradingsymbol;uniqueIndex:idx_scripts_tradingsymbol" json:"tradingsymbol"`
	TickSize        float64 `gorm:"column:tick_size" json:"tick_size"`
	Underlying      string  `gorm:"column:underlying;index:idx_scripts_underlying" json:"underlying"`
	LotSize         float64 `gorm:"column:lot_size" json:"lot_size"`
}

func (Script) TableName() string { return "scripts" }
