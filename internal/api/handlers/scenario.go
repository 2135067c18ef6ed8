package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/internal/models"
	"github.com/gridironhq/recruiting-ops/internal/services"
	"github.com/gridironhq/recruiting-ops/pkg/database"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

type ScenarioHandler struct {
	db           *database.DB
	roster       *services.RosterService
	cache        *services.CacheService
	hub          *services.WebSocketHub
	calc         *engine.CalculatorConfig
	planningYear int
	logger       *logrus.Logger
}

func NewScenarioHandler(db *database.DB, roster *services.RosterService, cache *services.CacheService, hub *services.WebSocketHub, calc *engine.CalculatorConfig, planningYear int, logger *logrus.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		db:           db,
		roster:       roster,
		cache:        cache,
		hub:          hub,
		calc:         calc,
		planningYear: planningYear,
		logger:       logger,
	}
}

// ScenarioRequest identifies the recruit to simulate. The recruit must already
// exist as a player record flagged is_recruit; inline recruit definitions go
// through the player endpoints first.
type ScenarioRequest struct {
	RecruitRef          string `json:"recruit_ref" binding:"required"`
	AssumedRecruitRole  string `json:"assumed_recruit_role,omitempty"`
	TargetPositionGroup string `json:"target_position_group,omitempty"`
	AsOfYear            int    `json:"as_of_year,omitempty"`
}

// ScenarioResponse wraps the engine delta with the persisted run id.
type ScenarioResponse struct {
	RunID string                `json:"run_id"`
	Delta *engine.ScenarioDelta `json:"delta"`
}

// RunScenario simulates adding one recruit and returns the before/after
// report. The run is persisted for the audit trail and its events are pushed
// to connected dashboards; the roster itself is never touched.
func (h *ScenarioHandler) RunScenario(c *gin.Context) {
	var req ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	h.runAndRespond(c, req)
}

// RunWowScenario executes the canned demo scenario from the calculator
// policy.
func (h *ScenarioHandler) RunWowScenario(c *gin.Context) {
	wow := h.calc.WowScenario
	if wow.RecruitPlayerID == "" {
		utils.SendNotFound(c, "No demo scenario configured")
		return
	}

	h.runAndRespond(c, ScenarioRequest{
		RecruitRef:          wow.RecruitPlayerID,
		AssumedRecruitRole:  string(wow.AssumedRecruitRole),
		TargetPositionGroup: string(wow.TargetPositionGroup),
	})
}

func (h *ScenarioHandler) runAndRespond(c *gin.Context, req ScenarioRequest) {
	recruit, err := h.roster.GetByRef(req.RecruitRef)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.SendNotFound(c, "Recruit not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch recruit")
		return
	}
	if !recruit.IsRecruit {
		utils.SendValidationError(c, "Player is not a recruit record", req.RecruitRef)
		return
	}

	roster, err := h.roster.Snapshot()
	if err != nil {
		utils.SendInternalError(c, "Failed to load roster")
		return
	}

	asOfYear := req.AsOfYear
	if asOfYear == 0 {
		asOfYear = h.planningYear
	}

	spec := engine.ScenarioSpec{
		Recruit:             recruit.ToEngine(),
		AssumedRecruitRole:  engine.Role(req.AssumedRecruitRole),
		TargetPositionGroup: engine.PositionGroup(req.TargetPositionGroup),
	}

	delta, err := engine.RunScenario(roster, spec, h.calc, asOfYear)
	if err != nil {
		sendEngineError(c, err)
		return
	}

	runID := uuid.New().String()

	deltaJSON, err := json.Marshal(delta)
	if err != nil {
		utils.SendInternalError(c, "Failed to serialize scenario result")
		return
	}

	run := &models.ScenarioRun{
		RunID:        runID,
		RecruitRef:   req.RecruitRef,
		Verdict:      string(delta.Verdict),
		StatusBefore: string(delta.StatusBefore),
		StatusAfter:  string(delta.StatusAfter),
		Delta:        deltaJSON,
		AuditEvents:  delta.AuditEvents,
	}
	if delta.Replacement != nil {
		run.ReplacementRef = delta.Replacement.PlayerID
	}

	if err := h.db.Create(run).Error; err != nil {
		h.logger.Errorf("Failed to persist scenario run %s: %v", runID, err)
		utils.SendInternalError(c, "Failed to persist scenario run")
		return
	}

	if err := h.cache.Set(c.Request.Context(), services.ScenarioCacheKey(runID), delta, 24*time.Hour); err != nil {
		h.logger.Warnf("Failed to cache scenario run %s: %v", runID, err)
	}

	h.hub.BroadcastAuditEvents(runID, delta.AuditEvents)

	h.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"recruit": req.RecruitRef,
		"verdict": delta.Verdict,
	}).Info("Scenario run completed")

	utils.SendSuccess(c, ScenarioResponse{RunID: runID, Delta: delta})
}

// GetScenarioRun returns one persisted run, preferring the cached full delta.
func (h *ScenarioHandler) GetScenarioRun(c *gin.Context) {
	runID := c.Param("run_id")

	var cached engine.ScenarioDelta
	if err := h.cache.Get(c.Request.Context(), services.ScenarioCacheKey(runID), &cached); err == nil {
		utils.SendSuccess(c, ScenarioResponse{RunID: runID, Delta: &cached})
		return
	}

	var run models.ScenarioRun
	if err := h.db.Where("run_id = ?", runID).First(&run).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.SendNotFound(c, "Scenario run not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch scenario run")
		return
	}

	utils.SendSuccess(c, run)
}

// ListScenarioRuns returns the persisted audit trail, newest first.
func (h *ScenarioHandler) ListScenarioRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	h.db.Model(&models.ScenarioRun{}).Count(&total)

	var runs []models.ScenarioRun
	offset := (page - 1) * perPage
	if err := h.db.Order("created_at DESC").Offset(offset).Limit(perPage).Find(&runs).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch scenario runs")
		return
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	utils.SendSuccessWithMeta(c, runs, &utils.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}
