package engine

import "fmt"

// CostMethod selects how a player's cost is derived when no override is set.
// Unsupported methods are a startup-time error, not a silent no-op.
type CostMethod string

const CostMethodBandMid CostMethod = "band_mid"

// RoundingMethod selects how computed costs are rounded.
type RoundingMethod string

const RoundNearest RoundingMethod = "nearest"

// Band is a revenue-share compensation band for one NIL tier.
type Band struct {
	Min float64 `json:"min" mapstructure:"min"`
	Mid float64 `json:"mid" mapstructure:"mid"`
	Max float64 `json:"max" mapstructure:"max"`
}

// Rounding describes the rounding rule applied to computed costs.
type Rounding struct {
	Method RoundingMethod `json:"method" mapstructure:"method"`
	Value  float64        `json:"value" mapstructure:"value"`
}

// AllocationAlgorithm holds the cost derivation policy.
type AllocationAlgorithm struct {
	CostMethod CostMethod `json:"cost_method" mapstructure:"cost_method"`
	Rounding   Rounding   `json:"rounding" mapstructure:"rounding"`
}

// BudgetGuardrails are the configured budget ceilings. Breaches are surfaced,
// never silently clamped.
type BudgetGuardrails struct {
	MaxPerPlayer        float64 `json:"max_per_player" mapstructure:"max_per_player"`
	MaxPositionPercent  float64 `json:"max_position_percent" mapstructure:"max_position_percent"`
	WarnPositionPercent float64 `json:"warn_position_percent" mapstructure:"warn_position_percent"`
	MinRemainingBuffer  float64 `json:"min_remaining_buffer" mapstructure:"min_remaining_buffer"`
}

// BudgetTotals describe the planning-cycle budget envelope.
type BudgetTotals struct {
	TotalRevShareBudget  float64 `json:"total_rev_share_budget" mapstructure:"total_rev_share_budget"`
	ContingencyReserve   float64 `json:"contingency_reserve" mapstructure:"contingency_reserve"`
	TreatReserveAsLocked bool    `json:"treat_reserve_as_locked" mapstructure:"treat_reserve_as_locked"`
}

// RiskWeights weight the three raw risk factors into a single score.
type RiskWeights struct {
	Injury    float64 `json:"injury" mapstructure:"injury"`
	Transfer  float64 `json:"transfer" mapstructure:"transfer"`
	Academics float64 `json:"academics" mapstructure:"academics"`
}

// ScoreRange is the inclusive bound for risk scores.
type ScoreRange struct {
	Min int `json:"min" mapstructure:"min"`
	Max int `json:"max" mapstructure:"max"`
}

// ColorThreshold maps an inclusive score band to a risk color. Thresholds are
// checked in configured order and must partition the score range with no gaps.
type ColorThreshold struct {
	Color RiskColor `json:"color" mapstructure:"color"`
	Min   int       `json:"min" mapstructure:"min"`
	Max   int       `json:"max" mapstructure:"max"`
}

// RiskConfig is the risk-scoring policy.
type RiskConfig struct {
	Weights             RiskWeights      `json:"weights" mapstructure:"weights"`
	ScoreRange          ScoreRange       `json:"score_range" mapstructure:"score_range"`
	ColorThresholds     []ColorThreshold `json:"color_thresholds" mapstructure:"color_thresholds"`
	DriversMinToDisplay float64          `json:"drivers_min_to_display" mapstructure:"drivers_min_to_display"`
}

// GraduationRules configure graduation-departure cost attribution.
type GraduationRules struct {
	GraduatingRoleBoost map[Role]float64 `json:"graduating_role_boost" mapstructure:"graduating_role_boost"`
}

// TransferRules configure transfer-departure expectations. Probabilities are
// used as deterministic expected values, never as stochastic draws: projections
// must be reproducible.
type TransferRules struct {
	UseRiskColor         bool                  `json:"use_risk_color" mapstructure:"use_risk_color"`
	BaseProbByRiskColor  map[RiskColor]float64 `json:"base_prob_by_risk_color" mapstructure:"base_prob_by_risk_color"`
	RoleMultiplier       map[Role]float64      `json:"role_multiplier" mapstructure:"role_multiplier"`
	ExpectationThreshold float64               `json:"expectation_threshold" mapstructure:"expectation_threshold"`
}

// DepartureRules group graduation and transfer departure policy.
type DepartureRules struct {
	Graduation GraduationRules `json:"graduation" mapstructure:"graduation"`
	Transfer   TransferRules   `json:"transfer" mapstructure:"transfer"`
}

// ReplacementModel configures the optional modeled replacement of departures.
type ReplacementModel struct {
	AutoReplaceDepartures  bool    `json:"auto_replace_departures" mapstructure:"auto_replace_departures"`
	DefaultReplacementRole Role    `json:"default_replacement_role" mapstructure:"default_replacement_role"`
	DefaultReplacementBand NILBand `json:"default_replacement_band" mapstructure:"default_replacement_band"`
}

// ForecastingConfig is the multi-year projection policy.
type ForecastingConfig struct {
	Years                  []int                 `json:"years" mapstructure:"years"`
	InflationRateYoY       float64               `json:"inflation_rate_yoy" mapstructure:"inflation_rate_yoy"`
	Departures             DepartureRules        `json:"departures" mapstructure:"departures"`
	TargetHeadcountByGroup map[PositionGroup]int `json:"target_headcount_by_group" mapstructure:"target_headcount_by_group"`
	Replacement            ReplacementModel      `json:"replacement" mapstructure:"replacement"`
}

// PriorityRule names one replacement-candidate selection rule. Rules run in
// configured order; the first rule yielding a non-empty candidate set wins.
type PriorityRule string

const (
	PriorityGraduatingSoon     PriorityRule = "GRADUATING_SOON"
	PriorityLowGradeDepth      PriorityRule = "LOW_GRADE_DEPTH"
	PriorityLowestGradeInGroup PriorityRule = "LOWEST_GRADE_IN_GROUP"
)

// TieBreaker names one replacement tie-break rule. The first tie-break that
// discriminates wins.
type TieBreaker string

const (
	TieLowestGrade TieBreaker = "LOWEST_GRADE"
	TieLowestSnaps TieBreaker = "LOWEST_SNAPS"
	TieHighestCost TieBreaker = "HIGHEST_COST"
)

// ReplacementSuggestion configures scenario replacement-candidate selection.
type ReplacementSuggestion struct {
	PriorityOrder         []PriorityRule `json:"priority_order" mapstructure:"priority_order"`
	GraduationWindowYears int            `json:"graduation_window_years" mapstructure:"graduation_window_years"`
	DepthGradeThreshold   float64        `json:"depth_grade_threshold" mapstructure:"depth_grade_threshold"`
	ExcludeRoles          []Role         `json:"exclude_roles" mapstructure:"exclude_roles"`
	TieBreakers           []TieBreaker   `json:"tie_breakers" mapstructure:"tie_breakers"`
}

// WowScenario is the canned what-if demo scenario definition.
type WowScenario struct {
	RecruitPlayerID     string        `json:"recruit_player_id" mapstructure:"recruit_player_id"`
	AssumedRecruitRole  Role          `json:"assumed_recruit_role" mapstructure:"assumed_recruit_role"`
	TargetPositionGroup PositionGroup `json:"target_position_group" mapstructure:"target_position_group"`
	Mode                string        `json:"mode" mapstructure:"mode"`
	AuditEvents         []string      `json:"audit_events" mapstructure:"audit_events"`
}

// Audit event names emitted by a scenario run, in their fixed order.
const (
	EventSimulationRun        = "WOW_SIMULATION_RUN"
	EventRecruitSimAdded      = "RECRUIT_SIM_ADDED"
	EventReplacementSuggested = "SIM_REPLACEMENT_SUGGESTED"
	EventBeforeAfterComputed  = "BEFORE_AFTER_COMPUTED"
)

// ScenarioModeSimulationOnly is the only supported scenario mode: the real
// roster is never mutated.
const ScenarioModeSimulationOnly = "simulation_only"

// CalculatorConfig is the immutable policy singleton for a planning cycle.
// It is loaded once at startup, validated, and read-only thereafter; the engine
// never mutates it.
type CalculatorConfig struct {
	RevShareBands              map[NILBand]Band          `json:"rev_share_bands" mapstructure:"rev_share_bands"`
	RoleCostMultipliers        map[Role]float64          `json:"role_cost_multipliers" mapstructure:"role_cost_multipliers"`
	PositionGroupBudgetWeights map[PositionGroup]float64 `json:"position_group_budget_weights" mapstructure:"position_group_budget_weights"`
	BudgetGuardrails           BudgetGuardrails          `json:"budget_guardrails" mapstructure:"budget_guardrails"`
	BudgetTotals               BudgetTotals              `json:"budget_totals" mapstructure:"budget_totals"`
	AllocationAlgorithm        AllocationAlgorithm       `json:"allocation_algorithm" mapstructure:"allocation_algorithm"`
	Forecasting                ForecastingConfig         `json:"forecasting" mapstructure:"forecasting"`
	Risk                       RiskConfig                `json:"risk" mapstructure:"risk"`
	ReplacementSuggestion      ReplacementSuggestion     `json:"replacement_suggestion" mapstructure:"replacement_suggestion"`
	WowScenario                WowScenario               `json:"wow_scenario" mapstructure:"wow_scenario"`
}

// DefaultConfig returns the seed demo policy for a planning cycle.
func DefaultConfig() *CalculatorConfig {
	return &CalculatorConfig{
		RevShareBands: map[NILBand]Band{
			BandLow:  {Min: 5000, Mid: 15000, Max: 25000},
			BandMed:  {Min: 30000, Mid: 45000, Max: 60000},
			BandHigh: {Min: 70000, Mid: 110000, Max: 150000},
		},
		RoleCostMultipliers: map[Role]float64{
			RoleStarter:       1.15,
			RoleRotation:      1.0,
			RoleDepth:         0.75,
			RoleDevelopmental: 0.5,
		},
		PositionGroupBudgetWeights: map[PositionGroup]float64{
			GroupQB: 1.35,
			GroupOL: 1.15,
			GroupDL: 1.15,
			GroupDB: 1.05,
			GroupWR: 1.05,
			GroupLB: 1.0,
			GroupRB: 0.9,
			GroupTE: 0.9,
			GroupST: 0.6,
		},
		BudgetGuardrails: BudgetGuardrails{
			MaxPerPlayer:        250000,
			MaxPositionPercent:  0.25,
			WarnPositionPercent: 0.20,
			MinRemainingBuffer:  50000,
		},
		BudgetTotals: BudgetTotals{
			TotalRevShareBudget:  1800000,
			ContingencyReserve:   120000,
			TreatReserveAsLocked: true,
		},
		AllocationAlgorithm: AllocationAlgorithm{
			CostMethod: CostMethodBandMid,
			Rounding:   Rounding{Method: RoundNearest, Value: 1000},
		},
		Forecasting: ForecastingConfig{
			Years:            []int{1, 2, 3},
			InflationRateYoY: 0.05,
			Departures: DepartureRules{
				Graduation: GraduationRules{
					GraduatingRoleBoost: map[Role]float64{
						RoleStarter:       1.0,
						RoleRotation:      0.9,
						RoleDepth:         0.8,
						RoleDevelopmental: 0.7,
					},
				},
				Transfer: TransferRules{
					UseRiskColor: true,
					BaseProbByRiskColor: map[RiskColor]float64{
						RiskGreen:  0.05,
						RiskYellow: 0.20,
						RiskRed:    0.45,
					},
					RoleMultiplier: map[Role]float64{
						RoleStarter:       0.5,
						RoleRotation:      0.9,
						RoleDepth:         1.25,
						RoleDevelopmental: 1.5,
					},
					ExpectationThreshold: 0.35,
				},
			},
			TargetHeadcountByGroup: map[PositionGroup]int{
				GroupQB: 4,
				GroupRB: 6,
				GroupWR: 10,
				GroupTE: 5,
				GroupOL: 16,
				GroupDL: 14,
				GroupLB: 10,
				GroupDB: 14,
				GroupST: 3,
			},
			Replacement: ReplacementModel{
				AutoReplaceDepartures:  false,
				DefaultReplacementRole: RoleDevelopmental,
				DefaultReplacementBand: BandLow,
			},
		},
		Risk: RiskConfig{
			Weights:    RiskWeights{Injury: 0.45, Transfer: 0.45, Academics: 0.10},
			ScoreRange: ScoreRange{Min: 0, Max: 100},
			ColorThresholds: []ColorThreshold{
				{Color: RiskGreen, Min: 0, Max: 29},
				{Color: RiskYellow, Min: 30, Max: 59},
				{Color: RiskRed, Min: 60, Max: 100},
			},
			DriversMinToDisplay: 40,
		},
		ReplacementSuggestion: ReplacementSuggestion{
			PriorityOrder: []PriorityRule{
				PriorityGraduatingSoon,
				PriorityLowGradeDepth,
				PriorityLowestGradeInGroup,
			},
			GraduationWindowYears: 1,
			DepthGradeThreshold:   55,
			ExcludeRoles:          []Role{RoleStarter},
			TieBreakers: []TieBreaker{
				TieLowestGrade,
				TieLowestSnaps,
				TieHighestCost,
			},
		},
		WowScenario: WowScenario{
			RecruitPlayerID:     "recruit-ol-demo",
			AssumedRecruitRole:  RoleRotation,
			TargetPositionGroup: GroupOL,
			Mode:                ScenarioModeSimulationOnly,
			AuditEvents: []string{
				EventSimulationRun,
				EventRecruitSimAdded,
				EventReplacementSuggested,
				EventBeforeAfterComputed,
			},
		},
	}
}

// Validate checks the config for internal consistency. It is called once at
// startup; a config that fails validation must never reach the engine.
func (c *CalculatorConfig) Validate() error {
	for _, band := range []NILBand{BandLow, BandMed, BandHigh} {
		b, ok := c.RevShareBands[band]
		if !ok {
			return newConfigError("rev_share_bands", string(band), "missing band")
		}
		if b.Min > b.Mid || b.Mid > b.Max {
			return newConfigError("rev_share_bands", string(band), "band values must satisfy min <= mid <= max")
		}
	}

	for _, role := range []Role{RoleStarter, RoleRotation, RoleDepth, RoleDevelopmental} {
		if _, ok := c.RoleCostMultipliers[role]; !ok {
			return newConfigError("role_cost_multipliers", string(role), "missing multiplier")
		}
	}

	for _, group := range GroupOrder {
		if _, ok := c.PositionGroupBudgetWeights[group]; !ok {
			return newConfigError("position_group_budget_weights", string(group), "missing weight")
		}
	}

	if c.AllocationAlgorithm.CostMethod != CostMethodBandMid {
		return newConfigError("allocation_algorithm.cost_method", string(c.AllocationAlgorithm.CostMethod), "unsupported cost method")
	}
	if c.AllocationAlgorithm.Rounding.Method != RoundNearest {
		return newConfigError("allocation_algorithm.rounding.method", string(c.AllocationAlgorithm.Rounding.Method), "unsupported rounding method")
	}
	if c.AllocationAlgorithm.Rounding.Value <= 0 {
		return newConfigError("allocation_algorithm.rounding.value",
			fmt.Sprintf("%v", c.AllocationAlgorithm.Rounding.Value), "rounding unit must be positive")
	}

	if c.BudgetGuardrails.WarnPositionPercent > c.BudgetGuardrails.MaxPositionPercent {
		return newConfigError("budget_guardrails", "", "warn_position_percent must not exceed max_position_percent")
	}

	if err := c.validateRiskThresholds(); err != nil {
		return err
	}

	if len(c.Forecasting.Years) == 0 {
		return newConfigError("forecasting.years", "", "at least one forecast year is required")
	}
	for i := 1; i < len(c.Forecasting.Years); i++ {
		if c.Forecasting.Years[i] <= c.Forecasting.Years[i-1] {
			return newConfigError("forecasting.years", "", "years must be strictly increasing")
		}
	}

	return nil
}

// validateRiskThresholds verifies the color thresholds partition the score
// range with no gaps or overlaps.
func (c *CalculatorConfig) validateRiskThresholds() error {
	rng := c.Risk.ScoreRange
	if rng.Min > rng.Max {
		return newConfigError("risk.score_range", "", "min must not exceed max")
	}
	if len(c.Risk.ColorThresholds) == 0 {
		return newConfigError("risk.color_thresholds", "", "no thresholds configured")
	}

	next := rng.Min
	for _, t := range c.Risk.ColorThresholds {
		if t.Min != next {
			return newConfigError("risk.color_thresholds", string(t.Color),
				fmt.Sprintf("threshold starts at %d, expected %d (gap or overlap)", t.Min, next))
		}
		if t.Max < t.Min {
			return newConfigError("risk.color_thresholds", string(t.Color), "threshold max below min")
		}
		next = t.Max + 1
	}
	if next != rng.Max+1 {
		return newConfigError("risk.color_thresholds", "",
			fmt.Sprintf("thresholds end at %d, expected %d", next-1, rng.Max))
	}
	return nil
}
