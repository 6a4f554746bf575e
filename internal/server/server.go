// Package server exposes scans over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"CryptoSentinel/internal/calculator"
	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/recorder"
)

// Scanner runs a ranked scan over symbols.
type Scanner interface {
	Scan(ctx context.Context, symbols []string, rsiPeriod int) ([]model.AnalysisResult, error)
}

// Handler serves the scan API.
type Handler struct {
	scanner          Scanner
	recorder         recorder.Recorder
	source           string
	popular          []string
	scanTimeout      time.Duration
	defaultRSIPeriod int
}

// New creates a Handler. source names the data provider in /health.
func New(scanner Scanner, rec recorder.Recorder, source string, popular []string) *Handler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Handler{
		scanner:          scanner,
		recorder:         rec,
		source:           source,
		popular:          popular,
		scanTimeout:      2 * time.Minute,
		defaultRSIPeriod: calculator.DefaultRSIPeriod,
	}
}

// NewEngine builds the gin engine with all routes registered.
func (h *Handler) NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/scan", h.Scan)
	r.GET("/api/popular", h.Popular)
	r.GET("/api/history/:symbol", h.History)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "source": h.source})
}

type scanRequest struct {
	Symbols   []string `json:"symbols"`
	RSIPeriod *int     `json:"rsi_period"`
}

func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	symbols := collector.NormalizeSymbols(req.Symbols)
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No symbols provided"})
		return
	}
	period := h.defaultRSIPeriod
	if req.RSIPeriod != nil {
		period = *req.RSIPeriod
	}
	if period < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rsi_period must be at least 2"})
		return
	}
	h.runScan(c, symbols, period)
}

func (h *Handler) Popular(c *gin.Context) {
	h.runScan(c, h.popular, h.defaultRSIPeriod)
}

func (h *Handler) History(c *gin.Context) {
	results, err := h.recorder.RecentResults(c.Param("symbol"), 20)
	if err != nil {
		log.Printf("[ERROR] load history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}
	if results == nil {
		results = []model.AnalysisResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) runScan(c *gin.Context, symbols []string, period int) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.scanTimeout)
	defer cancel()

	results, err := h.scanner.Scan(ctx, symbols, period)
	if err != nil {
		log.Printf("[ERROR] api scan: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, collector.ErrInvalidPeriod) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if err := h.recorder.RecordScan(&recorder.ScanRecord{
		Source:  "api",
		Symbols: symbols,
		Results: results,
		At:      time.Now(),
	}); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}
	if results == nil {
		results = []model.AnalysisResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
