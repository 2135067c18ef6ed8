package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRoster() []RosterPlayer {
	anchor := forecastPlayer("ol-starter", "Anchor Starter", GroupOL, RoleStarter, 2028, 60000)
	leaving := forecastPlayer("ol-depth", "Leaving Depth", GroupOL, RoleDepth, 2026, 13000)
	qb := forecastPlayer("qb-starter", "Franchise QB", GroupQB, RoleStarter, 2028, 171000)
	return []RosterPlayer{anchor, leaving, qb}
}

func demoRecruit(cost float64) RosterPlayer {
	p := forecastPlayer("recruit-1", "New Recruit", GroupOL, RoleRotation, 2030, cost)
	return p
}

func TestRunScenarioBeforeAfter(t *testing.T) {
	cfg := DefaultConfig()
	roster := scenarioRoster()
	snapshot := CloneRoster(roster)

	delta, err := RunScenario(roster, ScenarioSpec{Recruit: demoRecruit(52000)}, cfg, 2025)
	require.NoError(t, err)

	// The graduating depth player is swapped out for the recruit.
	require.NotNil(t, delta.Replacement)
	assert.Equal(t, "ol-depth", delta.Replacement.PlayerID)
	assert.Equal(t, PriorityGraduatingSoon, delta.Replacement.Rule)

	assert.Equal(t, 244000.0, delta.TotalAllocated.Before)
	assert.Equal(t, 283000.0, delta.TotalAllocated.After)
	assert.Equal(t, 39000.0, delta.TotalAllocated.Delta)
	assert.Equal(t, -39000.0, delta.Remaining.Delta)

	assert.Equal(t, StatusWithin, delta.StatusBefore)
	assert.Equal(t, StatusWithin, delta.StatusAfter)
	assert.Equal(t, VerdictProceed, delta.Verdict)

	// Fixed audit trail, in order, regardless of outcome.
	assert.Equal(t, []string{
		"WOW_SIMULATION_RUN",
		"RECRUIT_SIM_ADDED",
		"SIM_REPLACEMENT_SUGGESTED",
		"BEFORE_AFTER_COMPUTED",
	}, delta.AuditEvents)

	// The input roster is never touched.
	assert.Equal(t, snapshot, roster)
}

func TestRunScenarioAssumedRoleAndTargetGroup(t *testing.T) {
	cfg := DefaultConfig()
	roster := scenarioRoster()

	recruit := demoRecruit(40000)
	recruit.Role = RoleDepth
	recruit.PositionGroup = GroupTE

	delta, err := RunScenario(roster, ScenarioSpec{
		Recruit:             recruit,
		AssumedRecruitRole:  RoleRotation,
		TargetPositionGroup: GroupOL,
	}, cfg, 2025)
	require.NoError(t, err)

	// The replacement is searched in the target group, not the recruit's own.
	require.NotNil(t, delta.Replacement)
	assert.Equal(t, GroupOL, delta.Replacement.PositionGroup)
}

func TestRunScenarioNoReplacementWhenOnlyStarters(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		forecastPlayer("ol1", "Starter One", GroupOL, RoleStarter, 2028, 60000),
		forecastPlayer("ol2", "Starter Two", GroupOL, RoleStarter, 2028, 60000),
	}

	delta, err := RunScenario(roster, ScenarioSpec{Recruit: demoRecruit(40000)}, cfg, 2025)
	require.NoError(t, err)
	assert.Nil(t, delta.Replacement)
	// Audit trail still includes the suggestion event.
	assert.Contains(t, delta.AuditEvents, "SIM_REPLACEMENT_SUGGESTED")
}

func TestRunScenarioVerdictBlockOnNewOverMax(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		forecastPlayer("ol1", "Starter", GroupOL, RoleStarter, 2028, 60000),
	}

	delta, err := RunScenario(roster, ScenarioSpec{Recruit: demoRecruit(300000)}, cfg, 2025)
	require.NoError(t, err)
	assert.Equal(t, VerdictBlock, delta.Verdict)
}

func TestRunScenarioVerdictBlockOnNegativeRemaining(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BudgetTotals.TotalRevShareBudget = 200000
	cfg.BudgetTotals.TreatReserveAsLocked = false

	roster := []RosterPlayer{
		forecastPlayer("qb1", "Starter", GroupQB, RoleStarter, 2028, 150000),
	}

	// 100000 keeps the recruit under the per-player max, but remaining flips
	// from +50000 to -50000.
	recruit := forecastPlayer("qb-recruit", "Pricey Recruit", GroupQB, RoleRotation, 2030, 100000)
	delta, err := RunScenario(roster, ScenarioSpec{Recruit: recruit}, cfg, 2025)
	require.NoError(t, err)
	assert.Equal(t, VerdictBlock, delta.Verdict)
	assert.Less(t, delta.Remaining.After, 0.0)
	assert.GreaterOrEqual(t, delta.Remaining.Before, 0.0)
}

func TestRunScenarioVerdictCautionOnNewNearWarn(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		forecastPlayer("qb1", "Starter", GroupQB, RoleStarter, 2028, 171000),
	}

	// 200000 pushes the QB group from 10.2% to 22.1% of the available budget:
	// past the 20% warn line, still under the 25% ceiling.
	recruit := forecastPlayer("qb-recruit", "QB Recruit", GroupQB, RoleRotation, 2030, 200000)
	delta, err := RunScenario(roster, ScenarioSpec{Recruit: recruit}, cfg, 2025)
	require.NoError(t, err)
	assert.Equal(t, VerdictCaution, delta.Verdict)
	assert.Equal(t, StatusNear, delta.StatusAfter)
}

func TestRunScenarioVerdictCautionOnNewRedRisk(t *testing.T) {
	cfg := DefaultConfig()
	roster := []RosterPlayer{
		forecastPlayer("ol1", "Starter", GroupOL, RoleStarter, 2028, 60000),
	}

	recruit := demoRecruit(10000)
	recruit.RiskFactors = RiskFactors{Injury: 90, Transfer: 80, Academics: 50} // RED

	delta, err := RunScenario(roster, ScenarioSpec{Recruit: recruit}, cfg, 2025)
	require.NoError(t, err)
	assert.Equal(t, VerdictCaution, delta.Verdict)
	assert.Equal(t, 1.0, delta.RedRiskCount.Delta)
}

func TestRunScenarioRejectsInvalidRecruit(t *testing.T) {
	cfg := DefaultConfig()
	roster := scenarioRoster()

	recruit := demoRecruit(40000)
	recruit.NILBand = "ULTRA"

	_, err := RunScenario(roster, ScenarioSpec{Recruit: recruit}, cfg, 2025)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSuggestReplacementRulePriority(t *testing.T) {
	cfg := DefaultConfig()

	graduating := forecastPlayer("g1", "Graduating", GroupWR, RoleRotation, 2026, 10000)
	lowDepth := forecastPlayer("d1", "Weak Depth", GroupWR, RoleDepth, 2030, 10000)
	lowDepth.PerformanceGrade = 50

	// GRADUATING_SOON outranks LOW_GRADE_DEPTH when both match.
	candidate := suggestReplacement([]RosterPlayer{graduating, lowDepth}, GroupWR, cfg, 2025)
	require.NotNil(t, candidate)
	assert.Equal(t, "g1", candidate.PlayerID)
	assert.Equal(t, PriorityGraduatingSoon, candidate.Rule)

	// Without a graduating candidate, the low-grade depth rule fires.
	candidate = suggestReplacement([]RosterPlayer{lowDepth}, GroupWR, cfg, 2025)
	require.NotNil(t, candidate)
	assert.Equal(t, "d1", candidate.PlayerID)
	assert.Equal(t, PriorityLowGradeDepth, candidate.Rule)

	// A solid rotation player only matches the final catch-all rule.
	solid := forecastPlayer("r1", "Solid Rotation", GroupWR, RoleRotation, 2030, 10000)
	solid.PerformanceGrade = 80
	candidate = suggestReplacement([]RosterPlayer{solid}, GroupWR, cfg, 2025)
	require.NotNil(t, candidate)
	assert.Equal(t, PriorityLowestGradeInGroup, candidate.Rule)
}

func TestSuggestReplacementTieBreakers(t *testing.T) {
	cfg := DefaultConfig()

	a := forecastPlayer("a", "Aaron", GroupDB, RoleRotation, 2030, 20000)
	a.PerformanceGrade = 60
	a.SnapsShare = 0.4
	b := forecastPlayer("b", "Blake", GroupDB, RoleRotation, 2030, 30000)
	b.PerformanceGrade = 60
	b.SnapsShare = 0.4
	c := forecastPlayer("c", "Casey", GroupDB, RoleRotation, 2030, 30000)
	c.PerformanceGrade = 60
	c.SnapsShare = 0.6

	// Grades tie; Casey drops on snaps; Aaron and Blake tie on snaps and the
	// higher-cost Blake is preferred for removal.
	candidate := suggestReplacement([]RosterPlayer{a, b, c}, GroupDB, cfg, 2025)
	require.NotNil(t, candidate)
	assert.Equal(t, "b", candidate.PlayerID)
}

func TestSuggestReplacementNameFallback(t *testing.T) {
	cfg := DefaultConfig()

	x := forecastPlayer("x", "Zeta", GroupTE, RoleDepth, 2030, 10000)
	y := forecastPlayer("y", "Alpha", GroupTE, RoleDepth, 2030, 10000)
	x.PerformanceGrade = 60
	y.PerformanceGrade = 60
	x.SnapsShare = 0.3
	y.SnapsShare = 0.3

	candidate := suggestReplacement([]RosterPlayer{x, y}, GroupTE, cfg, 2025)
	require.NotNil(t, candidate)
	assert.Equal(t, "Alpha", candidate.Name)
}

func TestRunScenarioDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	roster := scenarioRoster()
	spec := ScenarioSpec{Recruit: demoRecruit(52000)}

	first, err := RunScenario(roster, spec, cfg, 2025)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := RunScenario(roster, spec, cfg, 2025)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
