package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"signal-engine/internal/cache"
	"signal-engine/internal/engine"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"symbols": s.runner.Symbols(),
	})
}

// handleAnalyze runs one decision pass for the posted request and returns
// either the emitted signal or the rejection outcome.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req engine.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	if req.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	signal, rejection, err := s.runner.Analyze(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, engine.ErrInsufficientData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient data", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "message": err.Error()})
		return
	}

	if rejection != nil {
		c.JSON(http.StatusOK, gin.H{
			"signal":    nil,
			"rejection": rejection,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"signal":    signal,
		"rejection": nil,
	})
}

// handleLatestSignal serves the cached latest signal, falling back to the
// database when the cache is cold or unavailable.
func (s *Server) handleLatestSignal(c *gin.Context) {
	symbol := c.Param("symbol")

	if s.signalCache != nil {
		signal, err := s.signalCache.GetLatest(c.Request.Context(), symbol)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"signal": signal, "source": "cache"})
			return
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("cache read failed, falling back to database")
		}
	}

	if s.repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no signal found", "symbol": symbol})
		return
	}

	records, err := s.repo.GetRecentSignals(c.Request.Context(), symbol, 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load signal", "message": err.Error()})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no signal found", "symbol": symbol})
		return
	}

	c.JSON(http.StatusOK, gin.H{"signal": records[0], "source": "database"})
}

func (s *Server) handleSignalHistory(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
		return
	}

	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := s.repo.GetRecentSignals(c.Request.Context(), symbol, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load signals", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "signals": records})
}

func (s *Server) handleRejectionHistory(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
		return
	}

	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := s.repo.GetRecentRejections(c.Request.Context(), symbol, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rejections", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "rejections": records})
}
