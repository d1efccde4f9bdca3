package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"iv-data/internal/model"
)

// CSVSaver lưu packet dưới dạng CSV (header: script,date,open,high,low,close,iv).
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Encode(out io.Writer, bars []model.IVBar) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"script", "date", "open", "high", "low", "close", "iv"}); err != nil {
		return err
	}
	for _, b := range bars {
		if err := w.Write([]string{
			b.Script,
			b.Date,
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			floatStr(b.IV),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
