package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/internal/services"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

type BudgetHandler struct {
	roster   *services.RosterService
	cache    *services.CacheService
	calc     *engine.CalculatorConfig
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewBudgetHandler(roster *services.RosterService, cache *services.CacheService, calc *engine.CalculatorConfig, cacheTTL time.Duration, logger *logrus.Logger) *BudgetHandler {
	return &BudgetHandler{
		roster:   roster,
		cache:    cache,
		calc:     calc,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// GetAllocation returns the budget allocation for the current roster. Results
// are cached per roster version; a roster write bumps the version so the next
// read recomputes.
func (h *BudgetHandler) GetAllocation(c *gin.Context) {
	version, err := h.roster.Version()
	if err != nil {
		utils.SendInternalError(c, "Failed to resolve roster version")
		return
	}

	cacheKey := services.AllocationCacheKey(version)
	var cached engine.BudgetAllocationResult
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, &cached)
		return
	}

	roster, err := h.roster.Snapshot()
	if err != nil {
		utils.SendInternalError(c, "Failed to load roster")
		return
	}

	result, err := engine.ComputeAllocation(roster, h.calc)
	if err != nil {
		sendEngineError(c, err)
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, result, h.cacheTTL); err != nil {
		h.logger.Warnf("Failed to cache allocation: %v", err)
	}

	utils.SendSuccess(c, result)
}

// GetHeatmap returns the position-group risk heatmap for the current roster.
func (h *BudgetHandler) GetHeatmap(c *gin.Context) {
	version, err := h.roster.Version()
	if err != nil {
		utils.SendInternalError(c, "Failed to resolve roster version")
		return
	}

	cacheKey := services.HeatmapCacheKey(version)
	var cached engine.RiskHeatmap
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
		utils.SendSuccess(c, &cached)
		return
	}

	roster, err := h.roster.Snapshot()
	if err != nil {
		utils.SendInternalError(c, "Failed to load roster")
		return
	}

	heatmap, err := engine.ComputeRiskHeatmap(roster, h.calc)
	if err != nil {
		sendEngineError(c, err)
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, heatmap, h.cacheTTL); err != nil {
		h.logger.Warnf("Failed to cache heatmap: %v", err)
	}

	utils.SendSuccess(c, heatmap)
}
