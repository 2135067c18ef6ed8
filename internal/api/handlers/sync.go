package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/services"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

type SyncHandler struct {
	portal *services.PortalSyncService
	logger *logrus.Logger
}

func NewSyncHandler(portal *services.PortalSyncService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		portal: portal,
		logger: logger,
	}
}

// TriggerPortalSync runs one portal sync on demand, outside the scheduled
// cadence. The circuit breaker and rate limiter still apply.
func (h *SyncHandler) TriggerPortalSync(c *gin.Context) {
	applied, err := h.portal.Sync(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Manual portal sync failed: %v", err)
		utils.SendUnavailable(c, "Portal sync failed")
		return
	}

	utils.SendSuccess(c, gin.H{"players_updated": applied})
}
