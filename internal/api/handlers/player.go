package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/internal/models"
	"github.com/gridironhq/recruiting-ops/internal/services"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

type PlayerHandler struct {
	roster *services.RosterService
	calc   *engine.CalculatorConfig
}

func NewPlayerHandler(roster *services.RosterService, calc *engine.CalculatorConfig) *PlayerHandler {
	return &PlayerHandler{
		roster: roster,
		calc:   calc,
	}
}

// PlayerRequest is the create/update payload.
type PlayerRequest struct {
	ExternalRef          string   `json:"external_ref" binding:"required"`
	Name                 string   `json:"name" binding:"required"`
	Position             string   `json:"position"`
	PositionGroup        string   `json:"position_group" binding:"required"`
	ClassYear            string   `json:"class_year"`
	GradYear             int      `json:"grad_year" binding:"required"`
	EligibilityRemaining int      `json:"eligibility_remaining"`
	NILBand              string   `json:"nil_band" binding:"required"`
	EstimatedCost        *float64 `json:"estimated_cost,omitempty"`
	Role                 string   `json:"role" binding:"required"`
	SnapsShare           float64  `json:"snaps_share"`
	PerformanceGrade     float64  `json:"performance_grade"`
	InjuryRisk           float64  `json:"injury_risk"`
	TransferRisk         float64  `json:"transfer_risk"`
	AcademicsRisk        float64  `json:"academics_risk"`
	IsRecruit            bool     `json:"is_recruit"`
}

func (r *PlayerRequest) toModel() *models.Player {
	return &models.Player{
		ExternalRef:          r.ExternalRef,
		Name:                 r.Name,
		Position:             r.Position,
		PositionGroup:        r.PositionGroup,
		ClassYear:            r.ClassYear,
		GradYear:             r.GradYear,
		EligibilityRemaining: r.EligibilityRemaining,
		NILBand:              r.NILBand,
		EstimatedCost:        r.EstimatedCost,
		Role:                 r.Role,
		SnapsShare:           r.SnapsShare,
		PerformanceGrade:     r.PerformanceGrade,
		InjuryRisk:           r.InjuryRisk,
		TransferRisk:         r.TransferRisk,
		AcademicsRisk:        r.AcademicsRisk,
		IsRecruit:            r.IsRecruit,
	}
}

// ListPlayers returns the roster, optionally including recruit records.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	includeRecruits, _ := strconv.ParseBool(c.DefaultQuery("include_recruits", "false"))

	players, err := h.roster.List(includeRecruits)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch players")
		return
	}

	utils.SendSuccess(c, players)
}

// GetPlayer returns one player by external ref, with the engine's computed
// cost and risk attached.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	ref := c.Param("ref")

	player, err := h.roster.GetByRef(ref)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch player")
		return
	}

	ep := player.ToEngine()
	cost, err := engine.EstimateCost(ep, h.calc)
	if err != nil {
		sendEngineError(c, err)
		return
	}
	risk, err := engine.ScoreRisk(ep.RiskFactors, h.calc)
	if err != nil {
		sendEngineError(c, err)
		return
	}

	utils.SendSuccess(c, gin.H{
		"player":         player,
		"estimated_cost": cost,
		"risk":           risk,
	})
}

// CreatePlayer adds a roster player or recruit record.
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	player := req.toModel()
	if err := engine.ValidateRoster([]engine.RosterPlayer{player.ToEngine()}); err != nil {
		sendEngineError(c, err)
		return
	}

	if _, err := h.roster.GetByRef(req.ExternalRef); err == nil {
		utils.SendConflict(c, "Player with this external_ref already exists")
		return
	}

	if err := h.roster.Create(player); err != nil {
		utils.SendInternalError(c, "Failed to create player")
		return
	}

	utils.SendSuccess(c, player)
}

// UpdatePlayer replaces a player's mutable fields.
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	ref := c.Param("ref")

	existing, err := h.roster.GetByRef(ref)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch player")
		return
	}

	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if req.ExternalRef != ref {
		utils.SendValidationError(c, "external_ref cannot be changed", "")
		return
	}

	updated := req.toModel()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := engine.ValidateRoster([]engine.RosterPlayer{updated.ToEngine()}); err != nil {
		sendEngineError(c, err)
		return
	}

	if err := h.roster.Update(updated); err != nil {
		utils.SendInternalError(c, "Failed to update player")
		return
	}

	utils.SendSuccess(c, updated)
}

// DeletePlayer removes a player record.
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	ref := c.Param("ref")

	if err := h.roster.Delete(ref); err != nil {
		utils.SendNotFound(c, "Player not found")
		return
	}

	utils.SendSuccess(c, gin.H{"deleted": ref})
}
