package export

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"iv-data/internal/model"
)

// ParquetSaver lưu packet dưới dạng Parquet.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Encode(w io.Writer, bars []model.IVBar) error {
	pw := parquet.NewGenericWriter[model.IVBar](w)
	if _, err := pw.Write(bars); err != nil {
		pw.Close()
		return err
	}
	return pw.Close()
}
