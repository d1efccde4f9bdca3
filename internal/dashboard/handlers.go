package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iv-data/internal/export"
	"iv-data/internal/ivstats"
	"iv-data/internal/model"
)

// summaries recomputes the volatility rollup for the trailing window. Not
// cached: staleness is bounded by ingestion frequency, not by this process.
func (s *Server) summaries(ctx context.Context) ([]ivstats.Summary, error) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -windowDays).Format("2006-01-02")
	rows, err := s.st.JoinedIVSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return ivstats.Summarize(rows, now), nil
}

func (s *Server) bars(ctx context.Context, symbol string) ([]model.IVBar, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays).Format("2006-01-02")
	return s.st.BarsSince(ctx, symbol, cutoff)
}

func (s *Server) indexPage(c *gin.Context) {
	sums, err := s.summaries(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "summary query failed: %v", err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Summaries":  sums,
		"WindowDays": windowDays,
	})
}

func (s *Server) chartPage(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, err := s.bars(c.Request.Context(), symbol)
	if err != nil {
		c.String(http.StatusInternalServerError, "chart query failed: %v", err)
		return
	}
	barsJSON, err := json.Marshal(bars)
	if err != nil {
		c.String(http.StatusInternalServerError, "encode failed: %v", err)
		return
	}
	c.HTML(http.StatusOK, "chart.html", gin.H{
		"Symbol":     symbol,
		"HasData":    len(bars) > 0,
		"WindowDays": windowDays,
		"BarsJSON":   template.JS(barsJSON),
	})
}

func (s *Server) apiSummary(c *gin.Context) {
	sums, err := s.summaries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sums == nil {
		sums = []ivstats.Summary{}
	}
	c.JSON(http.StatusOK, sums)
}

func (s *Server) apiOHLC(c *gin.Context) {
	bars, err := s.bars(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if bars == nil {
		bars = []model.IVBar{}
	}
	c.JSON(http.StatusOK, bars)
}

func (s *Server) apiOHLCExport(c *gin.Context) {
	symbol := c.Param("symbol")
	format := c.DefaultQuery("format", "csv")
	saver := export.NewPacketSaver(format)
	if saver == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q (use: csv, parquet, json)", format)})
		return
	}
	bars, err := s.bars(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	filename := fmt.Sprintf("%s.%s", symbol, saver.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", export.ContentType(saver))
	if err := saver.Encode(c.Writer, bars); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
