package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func riskyPlayer(id string, name string, group PositionGroup, injury, transfer, academics float64) RosterPlayer {
	p := testPlayer(id, group, BandMed, RoleRotation)
	p.Name = name
	p.RiskFactors = RiskFactors{Injury: injury, Transfer: transfer, Academics: academics}
	return p
}

func TestComputeRiskHeatmapBuckets(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		riskyPlayer("qb1", "Quinn Abel", GroupQB, 10, 10, 10),  // score 10, GREEN
		riskyPlayer("qb2", "Quinn Baker", GroupQB, 70, 10, 5),  // score 37, YELLOW
		riskyPlayer("ol1", "Owen Cole", GroupOL, 90, 80, 50),   // score 82, RED
		riskyPlayer("ol2", "Owen Drake", GroupOL, 20, 20, 20),  // score 20, GREEN
		riskyPlayer("ol3", "Owen Ellis", GroupOL, 80, 70, 100), // score 78, RED
	}

	heatmap, err := ComputeRiskHeatmap(roster, cfg)
	require.NoError(t, err)

	// Only groups with players appear, in canonical order.
	require.Len(t, heatmap.ByPositionGroup, 2)
	qb := heatmap.ByPositionGroup[0]
	assert.Equal(t, GroupQB, qb.PositionGroup)
	assert.Equal(t, 1, qb.Green)
	assert.Equal(t, 1, qb.Yellow)
	assert.Equal(t, 0, qb.Red)

	ol := heatmap.ByPositionGroup[1]
	assert.Equal(t, GroupOL, ol.PositionGroup)
	assert.Equal(t, 1, ol.Green)
	assert.Equal(t, 0, ol.Yellow)
	assert.Equal(t, 2, ol.Red)
}

func TestComputeRiskHeatmapKeyRisks(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		riskyPlayer("p1", "Calm Player", GroupQB, 5, 5, 5),
		riskyPlayer("p2", "Yellow Player", GroupRB, 70, 10, 5),
		riskyPlayer("p3", "Red Beta", GroupOL, 90, 80, 50),
		riskyPlayer("p4", "Red Alpha", GroupDL, 90, 80, 50),
	}

	heatmap, err := ComputeRiskHeatmap(roster, cfg)
	require.NoError(t, err)

	// GREEN players never surface; ties on score break by name ascending.
	require.Len(t, heatmap.KeyRisks, 3)
	assert.Equal(t, "Red Alpha", heatmap.KeyRisks[0].Name)
	assert.Equal(t, "Red Beta", heatmap.KeyRisks[1].Name)
	assert.Equal(t, "Yellow Player", heatmap.KeyRisks[2].Name)

	assert.Equal(t, RiskRed, heatmap.KeyRisks[0].RiskColor)
	assert.Equal(t, RiskYellow, heatmap.KeyRisks[2].RiskColor)

	// Drivers carry factor names at or above the display threshold, strongest
	// first.
	assert.Equal(t, []string{"injury", "transfer", "academics"}, heatmap.KeyRisks[0].Drivers)
	assert.Equal(t, []string{"injury"}, heatmap.KeyRisks[2].Drivers)
}

func TestComputeRiskHeatmapEmptyRoster(t *testing.T) {
	cfg := DefaultConfig()

	heatmap, err := ComputeRiskHeatmap(nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, heatmap.ByPositionGroup)
	assert.Empty(t, heatmap.KeyRisks)
}

func TestComputeRiskHeatmapDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		riskyPlayer("p1", "A", GroupQB, 70, 10, 5),
		riskyPlayer("p2", "B", GroupOL, 90, 80, 50),
		riskyPlayer("p3", "C", GroupDB, 40, 40, 40),
	}

	first, err := ComputeRiskHeatmap(roster, cfg)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ComputeRiskHeatmap(roster, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
