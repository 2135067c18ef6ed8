package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlayer(id string, group PositionGroup, band NILBand, role Role) RosterPlayer {
	return RosterPlayer{
		ID:                   id,
		Name:                 "Player " + id,
		Position:             string(group),
		PositionGroup:        group,
		GradYear:             2028,
		EligibilityRemaining: 2,
		NILBand:              band,
		Role:                 role,
		SnapsShare:           0.5,
		PerformanceGrade:     70,
		RiskFactors:          RiskFactors{Injury: 10, Transfer: 10, Academics: 10},
	}
}

func TestEstimateCostBandMid(t *testing.T) {
	cfg := DefaultConfig()

	// MED mid 45000, starter 1.15, OL weight 1.15 -> 59512.5 -> 60000
	cost, err := EstimateCost(testPlayer("p1", GroupOL, BandMed, RoleStarter), cfg)
	require.NoError(t, err)
	assert.Equal(t, 60000.0, cost)

	// LOW mid 15000, developmental 0.5, ST weight 0.6 -> 4500 -> 5000
	cost, err = EstimateCost(testPlayer("p2", GroupST, BandLow, RoleDevelopmental), cfg)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, cost)

	// HIGH mid 110000, starter 1.15, QB weight 1.35 -> 170775 -> 171000
	cost, err = EstimateCost(testPlayer("p3", GroupQB, BandHigh, RoleStarter), cfg)
	require.NoError(t, err)
	assert.Equal(t, 171000.0, cost)
}

func TestEstimateCostOverrideWins(t *testing.T) {
	cfg := DefaultConfig()

	p := testPlayer("p1", GroupOL, BandMed, RoleStarter)
	override := 42317.0
	p.CostOverride = &override

	cost, err := EstimateCost(p, cfg)
	require.NoError(t, err)
	// The override is returned untouched, no rounding.
	assert.Equal(t, 42317.0, cost)
}

func TestEstimateCostMissingConfig(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.RevShareBands, BandMed)

	_, err := EstimateCost(testPlayer("p1", GroupOL, BandMed, RoleStarter), cfg)
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "rev_share_bands", configErr.Key)
}

func TestEstimateCostUnsupportedRounding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllocationAlgorithm.Rounding.Method = "banker"

	_, err := EstimateCost(testPlayer("p1", GroupOL, BandMed, RoleStarter), cfg)
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestEstimateCostDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	p := testPlayer("p1", GroupDL, BandHigh, RoleRotation)

	first, err := EstimateCost(p, cfg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := EstimateCost(p, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
