package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

type ConfigHandler struct {
	calc         *engine.CalculatorConfig
	planningYear int
}

func NewConfigHandler(calc *engine.CalculatorConfig, planningYear int) *ConfigHandler {
	return &ConfigHandler{
		calc:         calc,
		planningYear: planningYear,
	}
}

// GetCalculatorConfig exposes the active policy so clients render the same
// bands, weights and thresholds the engine computes with.
func (h *ConfigHandler) GetCalculatorConfig(c *gin.Context) {
	utils.SendSuccess(c, gin.H{
		"planning_year": h.planningYear,
		"policy":        h.calc,
	})
}
