package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ScenarioRun is one persisted before/after simulation, kept for the audit
// trail. Simulations never mutate the roster; these rows are the only durable
// trace a run leaves.
type ScenarioRun struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RunID          string         `gorm:"uniqueIndex;not null" json:"run_id"`
	RecruitRef     string         `gorm:"not null;index" json:"recruit_ref"`
	ReplacementRef string         `json:"replacement_ref,omitempty"`
	Verdict        string         `gorm:"not null" json:"verdict"`
	StatusBefore   string         `json:"status_before"`
	StatusAfter    string         `json:"status_after"`
	Delta          datatypes.JSON `json:"delta"`
	AuditEvents    pq.StringArray `gorm:"type:text[]" json:"audit_events"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ScenarioRun) TableName() string {
	return "scenario_runs"
}
