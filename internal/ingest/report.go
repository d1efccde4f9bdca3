package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"iv-data/internal/export"
	"iv-data/internal/model"
)

// ErrorLogName is the plain-text per-symbol failure log, one
// "symbol: reason" line per failure, rewritten every run.
const ErrorLogName = "download_errors.txt"

type failedEntry struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

func writeRunReport(dataDir string, successList []string, failedList []failedEntry) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	if len(successList) > 0 {
		p := filepath.Join(dataDir, ".lastrun.success.json")
		data, err := json.MarshalIndent(successList, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote success", "path", p, "symbols", len(successList))
	}
	if len(failedList) > 0 {
		p := filepath.Join(dataDir, ".lastrun.failed.json")
		data, err := json.MarshalIndent(failedList, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote failed", "path", p, "count", len(failedList))
	}
	return nil
}

func writeErrorLog(dataDir string, failedList []failedEntry) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	var b strings.Builder
	for _, f := range failedList {
		b.WriteString(f.Symbol)
		b.WriteString(": ")
		b.WriteString(f.Reason)
		b.WriteString("\n")
	}
	p := filepath.Join(dataDir, ErrorLogName)
	return os.WriteFile(p, []byte(b.String()), 0644)
}

func appendSuccess(list []string, symbol string) []string {
	for _, s := range list {
		if s == symbol {
			return list
		}
	}
	return append(list, symbol)
}

func joinFailedReasons(failedList []failedEntry) string {
	if len(failedList) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failedList {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Symbol)
		b.WriteString(": ")
		b.WriteString(f.Reason)
		if i >= 4 && len(failedList) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failedList)-5))
			break
		}
	}
	return b.String()
}

// savePacket writes one symbol's bars to exportDir/{symbol}/{symbol}.{ext}.
func savePacket(s export.PacketSaver, exportDir, symbol string, bars []model.IVBar) error {
	symbolDir := filepath.Join(exportDir, symbol)
	if err := os.MkdirAll(symbolDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(symbolDir, fmt.Sprintf("%s.%s", symbol, s.Extension()))
	return export.SaveFile(s, bars, path)
}
