package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/internal/models"
	"github.com/gridironhq/recruiting-ops/pkg/database"
)

// RosterService owns roster persistence. The engine never touches storage: it
// receives an already-materialized snapshot from here.
type RosterService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewRosterService(db *database.DB, logger *logrus.Logger) *RosterService {
	return &RosterService{db: db, logger: logger}
}

// Snapshot loads the active roster (recruits excluded) as an engine snapshot.
func (s *RosterService) Snapshot() ([]engine.RosterPlayer, error) {
	var players []models.Player
	if err := s.db.Where("is_recruit = ?", false).Order("external_ref").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return models.ToEngineRoster(players), nil
}

// Version identifies the current roster state for cache keying. Any write
// changes the count or the newest updated_at, so stale cache entries are
// simply never read again.
func (s *RosterService) Version() (string, error) {
	var count int64
	if err := s.db.Model(&models.Player{}).Where("is_recruit = ?", false).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count roster: %w", err)
	}

	var newest time.Time
	row := s.db.Model(&models.Player{}).Where("is_recruit = ?", false).Select("COALESCE(MAX(updated_at), '0001-01-01')").Row()
	if err := row.Scan(&newest); err != nil {
		return "", fmt.Errorf("failed to read roster version: %w", err)
	}

	return fmt.Sprintf("%d-%d", count, newest.UnixNano()), nil
}

func (s *RosterService) List(includeRecruits bool) ([]models.Player, error) {
	var players []models.Player
	query := s.db.Order("position_group, name")
	if !includeRecruits {
		query = query.Where("is_recruit = ?", false)
	}
	if err := query.Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *RosterService) GetByRef(externalRef string) (*models.Player, error) {
	var player models.Player
	if err := s.db.Where("external_ref = ?", externalRef).First(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *RosterService) Create(player *models.Player) error {
	if err := s.db.Create(player).Error; err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	s.logger.Infof("Created player %s (%s)", player.Name, player.ExternalRef)
	return nil
}

func (s *RosterService) Update(player *models.Player) error {
	if err := s.db.Save(player).Error; err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}

func (s *RosterService) Delete(externalRef string) error {
	result := s.db.Where("external_ref = ?", externalRef).Delete(&models.Player{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete player: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("player %s not found", externalRef)
	}
	return nil
}
