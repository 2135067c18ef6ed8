package engine

// PositionGroup is the coarse position bucket used for budget and depth aggregation.
type PositionGroup string

const (
	GroupQB PositionGroup = "QB"
	GroupRB PositionGroup = "RB"
	GroupWR PositionGroup = "WR"
	GroupTE PositionGroup = "TE"
	GroupOL PositionGroup = "OL"
	GroupDL PositionGroup = "DL"
	GroupLB PositionGroup = "LB"
	GroupDB PositionGroup = "DB"
	GroupST PositionGroup = "ST"
)

// GroupOrder is the canonical display order for position groups. All per-group
// output slices are emitted in this order so results are deterministic.
var GroupOrder = []PositionGroup{
	GroupQB, GroupRB, GroupWR, GroupTE, GroupOL, GroupDL, GroupLB, GroupDB, GroupST,
}

// Role classifies a player's depth-chart usage tier.
type Role string

const (
	RoleStarter       Role = "STARTER"
	RoleRotation      Role = "ROTATION"
	RoleDepth         Role = "DEPTH"
	RoleDevelopmental Role = "DEVELOPMENTAL"
)

// NILBand is the coarse name-image-likeness compensation tier.
type NILBand string

const (
	BandHigh NILBand = "HIGH"
	BandMed  NILBand = "MED"
	BandLow  NILBand = "LOW"
)

// RiskColor classifies departure risk derived from the weighted risk score.
type RiskColor string

const (
	RiskGreen  RiskColor = "GREEN"
	RiskYellow RiskColor = "YELLOW"
	RiskRed    RiskColor = "RED"
)

// RiskFactors holds the three raw risk inputs, each on a 0-100 scale.
type RiskFactors struct {
	Injury    float64 `json:"injury" mapstructure:"injury"`
	Transfer  float64 `json:"transfer" mapstructure:"transfer"`
	Academics float64 `json:"academics" mapstructure:"academics"`
}

// RosterPlayer is one scholarship athlete in a roster snapshot. The snapshot is
// owned by the caller; the engine never mutates it.
//
// CostOverride, when non-nil, is an explicit monetary estimate that always wins
// over the band/role/weight computation.
type RosterPlayer struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Position             string        `json:"position"`
	PositionGroup        PositionGroup `json:"position_group"`
	ClassYear            string        `json:"class_year"`
	GradYear             int           `json:"grad_year"`
	EligibilityRemaining int           `json:"eligibility_remaining"`
	NILBand              NILBand       `json:"nil_band"`
	CostOverride         *float64      `json:"estimated_cost,omitempty"`
	Role                 Role          `json:"role"`
	SnapsShare           float64       `json:"snaps_share"`
	PerformanceGrade     float64       `json:"performance_grade"`
	RiskFactors          RiskFactors   `json:"risk_factors"`
}

// Clone returns a structural copy of the player, including the cost override.
func (p RosterPlayer) Clone() RosterPlayer {
	clone := p
	if p.CostOverride != nil {
		v := *p.CostOverride
		clone.CostOverride = &v
	}
	return clone
}

// CloneRoster returns a structural copy of the snapshot. Scenario runs operate
// on a clone so concurrent invocations over the same snapshot are safe.
func CloneRoster(roster []RosterPlayer) []RosterPlayer {
	clone := make([]RosterPlayer, len(roster))
	for i, p := range roster {
		clone[i] = p.Clone()
	}
	return clone
}

var validGroups = map[PositionGroup]bool{
	GroupQB: true, GroupRB: true, GroupWR: true, GroupTE: true, GroupOL: true,
	GroupDL: true, GroupLB: true, GroupDB: true, GroupST: true,
}

var validRoles = map[Role]bool{
	RoleStarter: true, RoleRotation: true, RoleDepth: true, RoleDevelopmental: true,
}

var validBands = map[NILBand]bool{
	BandHigh: true, BandMed: true, BandLow: true,
}
