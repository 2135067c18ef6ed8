package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/internal/services"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

type ForecastHandler struct {
	roster       *services.RosterService
	cache        *services.CacheService
	calc         *engine.CalculatorConfig
	planningYear int
	cacheTTL     time.Duration
	logger       *logrus.Logger
}

func NewForecastHandler(roster *services.RosterService, cache *services.CacheService, calc *engine.CalculatorConfig, planningYear int, cacheTTL time.Duration, logger *logrus.Logger) *ForecastHandler {
	return &ForecastHandler{
		roster:       roster,
		cache:        cache,
		calc:         calc,
		planningYear: planningYear,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// GetForecast returns the multi-year projection. The as_of_year query
// parameter overrides the configured planning year.
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	asOfYear := h.planningYear
	if raw := c.Query("as_of_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 2000 || year > 2100 {
			utils.SendValidationError(c, "Invalid as_of_year", raw)
			return
		}
		asOfYear = year
	}

	version, err := h.roster.Version()
	if err != nil {
		utils.SendInternalError(c, "Failed to resolve roster version")
		return
	}

	cacheKey := services.ForecastCacheKey(version, asOfYear)
	var cached []engine.ForecastYear
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, gin.H{"as_of_year": asOfYear, "years": cached})
		return
	}

	roster, err := h.roster.Snapshot()
	if err != nil {
		utils.SendInternalError(c, "Failed to load roster")
		return
	}

	forecast, err := engine.ComputeForecast(roster, h.calc, asOfYear)
	if err != nil {
		sendEngineError(c, err)
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, forecast, h.cacheTTL); err != nil {
		h.logger.Warnf("Failed to cache forecast: %v", err)
	}

	utils.SendSuccess(c, gin.H{"as_of_year": asOfYear, "years": forecast})
}
