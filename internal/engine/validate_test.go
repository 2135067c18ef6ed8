package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRosterAcceptsValidPlayers(t *testing.T) {
	roster := []RosterPlayer{
		testPlayer("p1", GroupQB, BandHigh, RoleStarter),
		testPlayer("p2", GroupOL, BandMed, RoleRotation),
	}
	assert.NoError(t, ValidateRoster(roster))
}

func TestValidateRosterRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RosterPlayer)
		field  string
	}{
		{"missing id", func(p *RosterPlayer) { p.ID = "" }, "id"},
		{"missing name", func(p *RosterPlayer) { p.Name = "" }, "name"},
		{"bad group", func(p *RosterPlayer) { p.PositionGroup = "FB" }, "position_group"},
		{"bad role", func(p *RosterPlayer) { p.Role = "BENCH" }, "role"},
		{"bad band", func(p *RosterPlayer) { p.NILBand = "ULTRA" }, "nil_band"},
		{"bad grad year", func(p *RosterPlayer) { p.GradYear = 0 }, "grad_year"},
		{"negative eligibility", func(p *RosterPlayer) { p.EligibilityRemaining = -1 }, "eligibility_remaining"},
		{"snaps over one", func(p *RosterPlayer) { p.SnapsShare = 1.2 }, "snaps_share"},
		{"grade over hundred", func(p *RosterPlayer) { p.PerformanceGrade = 101 }, "performance_grade"},
		{"injury out of range", func(p *RosterPlayer) { p.RiskFactors.Injury = 150 }, "risk_factors.injury"},
		{"negative override", func(p *RosterPlayer) { v := -1.0; p.CostOverride = &v }, "estimated_cost"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testPlayer("p1", GroupQB, BandHigh, RoleStarter)
			tc.mutate(&p)

			err := ValidateRoster([]RosterPlayer{p})
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestValidateRosterAllOrNothing(t *testing.T) {
	good := testPlayer("p1", GroupQB, BandHigh, RoleStarter)
	bad := testPlayer("p2", GroupOL, BandMed, RoleRotation)
	bad.SnapsShare = 2.0

	assert.Error(t, ValidateRoster([]RosterPlayer{good, bad}))
}
