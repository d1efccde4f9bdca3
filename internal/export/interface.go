// Package export serializes daily IV observations to csv, json or parquet.
// Used by the fetch pipeline for raw packet dumps and by the dashboard for
// per-symbol downloads.
package export

import (
	"io"
	"os"
	"strings"

	"iv-data/internal/model"
)

// PacketSaver là abstraction cho lưu từng packet bars.
// High-level code injects the implementation; producers depend only on the
// interface.
type PacketSaver interface {
	Encode(w io.Writer, bars []model.IVBar) error
	Extension() string
}

// NewPacketSaver creates an implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewPacketSaver(format string) PacketSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}

// ContentType returns the MIME type for a saver's format.
func ContentType(s PacketSaver) string {
	switch s.Extension() {
	case "csv":
		return "text/csv"
	case "json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// SaveFile encodes bars into a file at path.
func SaveFile(s PacketSaver, bars []model.IVBar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Encode(f, bars)
}
