package export

import (
	"encoding/json"
	"io"

	"iv-data/internal/model"
)

// JSONSaver lưu packet dưới dạng JSON (array, indent).
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Encode(w io.Writer, bars []model.IVBar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bars)
}
