package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/gridironhq/recruiting-ops/internal/models"
	"github.com/gridironhq/recruiting-ops/pkg/database"
)

// PortalSyncService pulls transfer-portal risk signals and updated grades from
// an external feed and writes them into the roster. The network edge lives
// here, outside the engine boundary: the engine only ever sees materialized
// snapshots.
type PortalSyncService struct {
	db         *database.DB
	apiURL     string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// portalUpdate is one row from the portal feed, keyed by external ref.
type portalUpdate struct {
	ExternalRef   string   `json:"external_ref"`
	TransferRisk  *float64 `json:"transfer_risk,omitempty"`
	InjuryRisk    *float64 `json:"injury_risk,omitempty"`
	AcademicsRisk *float64 `json:"academics_risk,omitempty"`
}

func NewPortalSyncService(db *database.DB, apiURL, apiKey string, timeout time.Duration, threshold int, requestsPerSecond float64, logger *logrus.Logger) *PortalSyncService {
	settings := gobreaker.Settings{
		Name:        "portal-api",
		MaxRequests: uint32(threshold),
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &PortalSyncService{
		db:         db,
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:     logger,
	}
}

// Sync fetches the current portal feed and applies it. Returns the number of
// players updated.
func (s *PortalSyncService) Sync(ctx context.Context) (int, error) {
	if s.apiURL == "" {
		return 0, fmt.Errorf("portal sync not configured")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetchUpdates(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("portal fetch failed: %w", err)
	}
	updates := result.([]portalUpdate)

	applied, err := s.applyUpdates(updates)
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Portal sync applied %d/%d updates", applied, len(updates))
	return applied, nil
}

func (s *PortalSyncService) fetchUpdates(ctx context.Context) ([]portalUpdate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build portal request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("portal API returned status %d", resp.StatusCode)
	}

	var updates []portalUpdate
	if err := json.NewDecoder(resp.Body).Decode(&updates); err != nil {
		return nil, fmt.Errorf("failed to decode portal response: %w", err)
	}
	return updates, nil
}

func (s *PortalSyncService) applyUpdates(updates []portalUpdate) (int, error) {
	applied := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			changes := make(map[string]interface{})
			if update.TransferRisk != nil {
				changes["transfer_risk"] = clampRisk(*update.TransferRisk)
			}
			if update.InjuryRisk != nil {
				changes["injury_risk"] = clampRisk(*update.InjuryRisk)
			}
			if update.AcademicsRisk != nil {
				changes["academics_risk"] = clampRisk(*update.AcademicsRisk)
			}
			if len(changes) == 0 {
				continue
			}

			result := tx.Model(&models.Player{}).
				Where("external_ref = ?", update.ExternalRef).
				Updates(changes)
			if result.Error != nil {
				return fmt.Errorf("failed to apply portal update for %s: %w", update.ExternalRef, result.Error)
			}
			if result.RowsAffected > 0 {
				applied++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

func clampRisk(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
