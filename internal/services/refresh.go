package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/internal/models"
	"github.com/gridironhq/recruiting-ops/pkg/database"
)

// RefreshService runs the scheduled background jobs: portal sync, nightly
// budget recompute (cache warm + guardrail sweep), and scenario-run cleanup.
type RefreshService struct {
	db              *database.DB
	roster          *RosterService
	cache           *CacheService
	alerts          *GuardrailAlertService
	portalSync      *PortalSyncService
	hub             *WebSocketHub
	calcCfg         *engine.CalculatorConfig
	planningYear    int
	cacheExpiration time.Duration
	retentionDays   int
	syncInterval    time.Duration
	logger          *logrus.Logger

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewRefreshService(
	db *database.DB,
	roster *RosterService,
	cache *CacheService,
	alerts *GuardrailAlertService,
	portalSync *PortalSyncService,
	hub *WebSocketHub,
	calcCfg *engine.CalculatorConfig,
	planningYear int,
	cacheExpiration time.Duration,
	retentionDays int,
	syncInterval time.Duration,
	logger *logrus.Logger,
) *RefreshService {
	return &RefreshService{
		db:              db,
		roster:          roster,
		cache:           cache,
		alerts:          alerts,
		portalSync:      portalSync,
		hub:             hub,
		calcCfg:         calcCfg,
		planningYear:    planningYear,
		cacheExpiration: cacheExpiration,
		retentionDays:   retentionDays,
		syncInterval:    syncInterval,
		logger:          logger,
		cron:            cron.New(),
	}
}

// Start schedules the background jobs.
func (s *RefreshService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresh service is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.syncInterval.String())
	if _, err := s.cron.AddFunc(schedule, s.runPortalSync); err != nil {
		return fmt.Errorf("failed to schedule portal sync: %w", err)
	}

	// Nightly recompute after the portal feed has settled
	if _, err := s.cron.AddFunc("0 4 * * *", s.recomputeBudget); err != nil {
		return fmt.Errorf("failed to schedule budget recompute: %w", err)
	}

	if _, err := s.cron.AddFunc("0 3 * * *", s.cleanupScenarioRuns); err != nil {
		return fmt.Errorf("failed to schedule scenario cleanup: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Refresh service started")
	return nil
}

// Stop halts the scheduled jobs, waiting for any in-flight run to finish.
func (s *RefreshService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Refresh service stopped")
}

func (s *RefreshService) runPortalSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := s.portalSync.Sync(ctx)
	if err != nil {
		s.logger.Errorf("Scheduled portal sync failed: %v", err)
		return
	}
	if applied > 0 {
		// Risk inputs changed; re-evaluate guardrails right away.
		s.recomputeBudget()
	}
}

// recomputeBudget recomputes the allocation against the current roster, warms
// the cache, and runs the guardrail alert check.
func (s *RefreshService) recomputeBudget() {
	roster, err := s.roster.Snapshot()
	if err != nil {
		s.logger.Errorf("Budget recompute: failed to load roster: %v", err)
		return
	}

	result, err := engine.ComputeAllocation(roster, s.calcCfg)
	if err != nil {
		s.logger.Errorf("Budget recompute failed: %v", err)
		return
	}

	version, err := s.roster.Version()
	if err != nil {
		s.logger.Warnf("Budget recompute: failed to read roster version: %v", err)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, AllocationCacheKey(version), result, s.cacheExpiration); err != nil {
			s.logger.Warnf("Budget recompute: failed to warm cache: %v", err)
		}
	}

	s.alerts.CheckAndNotify(result)
	s.hub.BroadcastGuardrailStatus(string(result.Status))

	s.logger.Infof("Budget recompute complete: status=%s allocated=%.0f remaining=%.0f",
		result.Status, result.TotalAllocated, result.Remaining)
}

func (s *RefreshService) cleanupScenarioRuns() {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.ScenarioRun{})
	if result.Error != nil {
		s.logger.Errorf("Scenario cleanup failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		s.logger.Infof("Scenario cleanup removed %d old runs", result.RowsAffected)
	}
}
