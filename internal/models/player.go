package models

import (
	"time"

	"github.com/gridironhq/recruiting-ops/internal/engine"
)

// Player is one roster athlete as persisted. ExternalRef is the stable id the
// engine and upstream data feeds key on; the numeric primary key stays
// internal to storage.
type Player struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	ExternalRef          string    `gorm:"uniqueIndex;not null" json:"external_ref"`
	Name                 string    `gorm:"not null" json:"name"`
	Position             string    `gorm:"not null" json:"position"`
	PositionGroup        string    `gorm:"not null;index" json:"position_group"`
	ClassYear            string    `json:"class_year"`
	GradYear             int       `gorm:"not null" json:"grad_year"`
	EligibilityRemaining int       `json:"eligibility_remaining"`
	NILBand              string    `gorm:"not null" json:"nil_band"`
	EstimatedCost        *float64  `json:"estimated_cost,omitempty"`
	Role                 string    `gorm:"not null" json:"role"`
	SnapsShare           float64   `json:"snaps_share"`
	PerformanceGrade     float64   `json:"performance_grade"`
	InjuryRisk           float64   `json:"injury_risk"`
	TransferRisk         float64   `json:"transfer_risk"`
	AcademicsRisk        float64   `json:"academics_risk"`
	IsRecruit            bool      `gorm:"default:false;index" json:"is_recruit"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Player) TableName() string {
	return "players"
}

// ToEngine converts the row into the engine's value object.
func (p *Player) ToEngine() engine.RosterPlayer {
	player := engine.RosterPlayer{
		ID:                   p.ExternalRef,
		Name:                 p.Name,
		Position:             p.Position,
		PositionGroup:        engine.PositionGroup(p.PositionGroup),
		ClassYear:            p.ClassYear,
		GradYear:             p.GradYear,
		EligibilityRemaining: p.EligibilityRemaining,
		NILBand:              engine.NILBand(p.NILBand),
		Role:                 engine.Role(p.Role),
		SnapsShare:           p.SnapsShare,
		PerformanceGrade:     p.PerformanceGrade,
		RiskFactors: engine.RiskFactors{
			Injury:    p.InjuryRisk,
			Transfer:  p.TransferRisk,
			Academics: p.AcademicsRisk,
		},
	}
	if p.EstimatedCost != nil {
		v := *p.EstimatedCost
		player.CostOverride = &v
	}
	return player
}

// ToEngineRoster converts a result set into an engine snapshot.
func ToEngineRoster(players []Player) []engine.RosterPlayer {
	roster := make([]engine.RosterPlayer, len(players))
	for i := range players {
		roster[i] = players[i].ToEngine()
	}
	return roster
}
