package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forecastPlayer(id, name string, group PositionGroup, role Role, gradYear int, cost float64) RosterPlayer {
	p := testPlayer(id, group, BandMed, role)
	p.Name = name
	p.GradYear = gradYear
	p.CostOverride = &cost
	// Low factors keep the transfer expectation below the threshold.
	p.RiskFactors = RiskFactors{Injury: 5, Transfer: 5, Academics: 5}
	return p
}

func TestComputeForecastGraduationCompounds(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		forecastPlayer("p1", "Senior", GroupOL, RoleStarter, 2026, 10000),
		forecastPlayer("p2", "Junior", GroupOL, RoleStarter, 2027, 20000),
		forecastPlayer("p3", "Freshman", GroupOL, RoleStarter, 2030, 30000),
	}

	years, err := ComputeForecast(roster, cfg, 2025)
	require.NoError(t, err)
	require.Len(t, years, 3)

	year1 := years[0]
	assert.Equal(t, 2026, year1.CalendarYear)
	require.Len(t, year1.ExpectedDepartures, 1)
	assert.Equal(t, "p1", year1.ExpectedDepartures[0].PlayerID)
	assert.Equal(t, ReasonGraduation, year1.ExpectedDepartures[0].Reason)
	// Starter boost is 1.0, so the freed cost equals the player's cost.
	assert.Equal(t, 10000.0, year1.ExpectedDepartures[0].FreedCost)
	assert.Equal(t, 2, year1.ReturningCount)
	assert.InDelta(t, 50000*1.05, year1.ProjectedSpend, 1e-9)

	// A departed player stays departed: year 2 starts from year 1's survivors.
	year2 := years[1]
	require.Len(t, year2.ExpectedDepartures, 1)
	assert.Equal(t, "p2", year2.ExpectedDepartures[0].PlayerID)
	assert.Equal(t, 1, year2.ReturningCount)
	assert.InDelta(t, 30000*1.05*1.05, year2.ProjectedSpend, 1e-9)

	year3 := years[2]
	assert.Empty(t, year3.ExpectedDepartures)
	assert.Equal(t, 1, year3.ReturningCount)
	assert.InDelta(t, 30000*math.Pow(1.05, 3), year3.ProjectedSpend, 1e-9)
}

func TestComputeForecastTransferThreshold(t *testing.T) {
	cfg := DefaultConfig()

	redDepth := forecastPlayer("p1", "Risky Depth", GroupWR, RoleDepth, 2030, 10000)
	redDepth.RiskFactors = RiskFactors{Injury: 90, Transfer: 80, Academics: 50} // RED

	redStarter := forecastPlayer("p2", "Risky Starter", GroupWR, RoleStarter, 2030, 10000)
	redStarter.RiskFactors = RiskFactors{Injury: 90, Transfer: 80, Academics: 50} // RED

	yellowRotation := forecastPlayer("p3", "Mid Rotation", GroupWR, RoleRotation, 2030, 10000)
	yellowRotation.RiskFactors = RiskFactors{Injury: 70, Transfer: 10, Academics: 5} // YELLOW

	years, err := ComputeForecast([]RosterPlayer{redDepth, redStarter, yellowRotation}, cfg, 2025)
	require.NoError(t, err)

	// RED depth: 0.45 * 1.25 = 0.5625, over the 0.35 expectation threshold.
	// RED starter (0.225) and YELLOW rotation (0.18) stay.
	year1 := years[0]
	require.Len(t, year1.ExpectedDepartures, 1)
	d := year1.ExpectedDepartures[0]
	assert.Equal(t, "p1", d.PlayerID)
	assert.Equal(t, ReasonTransferRisk, d.Reason)
	assert.InDelta(t, 0.5625, d.TransferProbability, 1e-12)
	assert.Equal(t, 2, year1.ReturningCount)
}

func TestComputeForecastDepartureOrdering(t *testing.T) {
	cfg := DefaultConfig()

	gradB := forecastPlayer("g1", "Beta Grad", GroupLB, RoleStarter, 2026, 10000)
	gradA := forecastPlayer("g2", "Alpha Grad", GroupLB, RoleStarter, 2026, 10000)
	transferB := forecastPlayer("t1", "Beta Transfer", GroupLB, RoleDepth, 2030, 10000)
	transferB.RiskFactors = RiskFactors{Injury: 90, Transfer: 80, Academics: 50}
	transferA := forecastPlayer("t2", "Alpha Transfer", GroupLB, RoleDepth, 2030, 10000)
	transferA.RiskFactors = RiskFactors{Injury: 90, Transfer: 80, Academics: 50}

	years, err := ComputeForecast([]RosterPlayer{transferB, gradB, transferA, gradA}, cfg, 2025)
	require.NoError(t, err)

	// Graduations first, then transfers, each block sorted by name.
	departures := years[0].ExpectedDepartures
	require.Len(t, departures, 4)
	assert.Equal(t, "Alpha Grad", departures[0].Name)
	assert.Equal(t, "Beta Grad", departures[1].Name)
	assert.Equal(t, "Alpha Transfer", departures[2].Name)
	assert.Equal(t, "Beta Transfer", departures[3].Name)
}

func TestComputeForecastGaps(t *testing.T) {
	cfg := DefaultConfig()
	// Two QBs against a target of 4; one graduates in year 1.
	roster := []RosterPlayer{
		forecastPlayer("qb1", "QB One", GroupQB, RoleStarter, 2026, 10000),
		forecastPlayer("qb2", "QB Two", GroupQB, RoleStarter, 2030, 10000),
	}

	years, err := ComputeForecast(roster, cfg, 2025)
	require.NoError(t, err)

	year1 := years[0]
	assert.Equal(t, 1, year1.ReturningByGroup[GroupQB])
	assert.Equal(t, 3, year1.GapsByGroup[GroupQB])

	// Groups with no shortfall never appear in the gap map, but every
	// configured target with a shortfall does, even with zero players.
	for group, target := range cfg.Forecasting.TargetHeadcountByGroup {
		if group == GroupQB {
			continue
		}
		assert.Equal(t, target, year1.GapsByGroup[group])
	}
}

func TestComputeForecastReturningMonotone(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		forecastPlayer("p1", "A", GroupDB, RoleStarter, 2026, 10000),
		forecastPlayer("p2", "B", GroupDB, RoleStarter, 2027, 10000),
		forecastPlayer("p3", "C", GroupDB, RoleStarter, 2028, 10000),
		forecastPlayer("p4", "D", GroupDB, RoleStarter, 2031, 10000),
	}

	years, err := ComputeForecast(roster, cfg, 2025)
	require.NoError(t, err)

	previous := len(roster)
	for _, year := range years {
		assert.LessOrEqual(t, year.ReturningCount, previous)
		previous = year.ReturningCount
	}
}

func TestComputeForecastAutoReplacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Forecasting.Replacement.AutoReplaceDepartures = true

	roster := []RosterPlayer{
		forecastPlayer("p1", "Leaves", GroupTE, RoleStarter, 2026, 10000),
		forecastPlayer("p2", "Stays", GroupTE, RoleStarter, 2030, 30000),
	}

	years, err := ComputeForecast(roster, cfg, 2025)
	require.NoError(t, err)

	// Replacement slot: LOW mid 15000 * developmental 0.5 = 7500 -> 8000.
	// Year 1: (30000 + 1*8000) * 1.05.
	assert.InDelta(t, 38000*1.05, years[0].ProjectedSpend, 1e-9)
}

func TestComputeForecastDoesNotMutateRoster(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		forecastPlayer("p1", "A", GroupRB, RoleStarter, 2026, 10000),
		forecastPlayer("p2", "B", GroupRB, RoleDepth, 2030, 20000),
	}
	snapshot := CloneRoster(roster)

	_, err := ComputeForecast(roster, cfg, 2025)
	require.NoError(t, err)
	assert.Equal(t, snapshot, roster)
}
