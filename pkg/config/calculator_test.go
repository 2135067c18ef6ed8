package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/recruiting-ops/internal/engine"
)

func TestLoadCalculatorConfigDefaults(t *testing.T) {
	cfg, err := LoadCalculatorConfig("")
	require.NoError(t, err)
	assert.Equal(t, 1800000.0, cfg.BudgetTotals.TotalRevShareBudget)
	assert.Equal(t, engine.RoleRotation, cfg.WowScenario.AssumedRecruitRole)
}

func TestLoadCalculatorConfigMissingFile(t *testing.T) {
	_, err := LoadCalculatorConfig("/nonexistent/policy.yaml")
	assert.Error(t, err)
}

func TestLoadCalculatorConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	overlay := `
budget_totals:
  total_rev_share_budget: 2500000
  contingency_reserve: 200000
  treat_reserve_as_locked: true
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	cfg, err := LoadCalculatorConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2500000.0, cfg.BudgetTotals.TotalRevShareBudget)
	assert.Equal(t, 200000.0, cfg.BudgetTotals.ContingencyReserve)
	// Sections absent from the overlay keep their seed values.
	assert.Equal(t, 0.45, cfg.Risk.Weights.Injury)
}

func TestLoadCalculatorConfigRejectsInvalidOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	overlay := `
budget_guardrails:
  warn_position_percent: 0.40
  max_position_percent: 0.25
  max_per_player: 250000
  min_remaining_buffer: 50000
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	_, err := LoadCalculatorConfig(path)
	assert.Error(t, err)
}
