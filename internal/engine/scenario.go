package engine

import "sort"

// Verdict is the scenario recommendation derived from guardrail checks.
type Verdict string

const (
	VerdictProceed Verdict = "PROCEED"
	VerdictCaution Verdict = "CAUTION"
	VerdictBlock   Verdict = "BLOCK"
)

// ScenarioSpec describes one hypothetical recruit addition. The recruit is an
// already-materialized player record; resolving a recruit id against storage
// is the caller's concern.
type ScenarioSpec struct {
	Recruit             RosterPlayer  `json:"recruit"`
	AssumedRecruitRole  Role          `json:"assumed_recruit_role,omitempty"`
	TargetPositionGroup PositionGroup `json:"target_position_group,omitempty"`
}

// PipelineResult is one full computation over a roster snapshot.
type PipelineResult struct {
	Allocation *BudgetAllocationResult `json:"allocation"`
	Heatmap    *RiskHeatmap            `json:"heatmap"`
	Forecast   []ForecastYear          `json:"forecast"`
}

// MetricDelta pairs one metric before and after the roster mutation.
type MetricDelta struct {
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Delta  float64 `json:"delta"`
}

// ReplacementCandidate is the player suggested for removal, with the rule that
// selected them.
type ReplacementCandidate struct {
	PlayerID      string        `json:"player_id"`
	Name          string        `json:"name"`
	PositionGroup PositionGroup `json:"position_group"`
	Role          Role          `json:"role"`
	Rule          PriorityRule  `json:"rule"`
}

// ScenarioDelta is the before/after report for one simulated recruit addition.
type ScenarioDelta struct {
	Before         PipelineResult        `json:"before"`
	After          PipelineResult        `json:"after"`
	Replacement    *ReplacementCandidate `json:"replacement,omitempty"`
	TotalAllocated MetricDelta           `json:"total_allocated"`
	Remaining      MetricDelta           `json:"remaining"`
	RedRiskCount   MetricDelta           `json:"red_risk_count"`
	StatusBefore   BadgeStatus           `json:"status_before"`
	StatusAfter    BadgeStatus           `json:"status_after"`
	Verdict        Verdict               `json:"verdict"`
	AuditEvents    []string              `json:"audit_events"`
}

// RunScenario computes the full pipeline before and after adding the recruit
// (and removing the suggested replacement, when one exists) to a structural
// clone of the roster. The input roster and its players are never mutated.
//
// The audit-event list is emitted exactly once per event, in fixed order,
// regardless of whether a replacement candidate was found.
func RunScenario(roster []RosterPlayer, spec ScenarioSpec, cfg *CalculatorConfig, asOfYear int) (*ScenarioDelta, error) {
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}

	before, err := computePipeline(roster, cfg, asOfYear)
	if err != nil {
		return nil, err
	}

	recruit := spec.Recruit.Clone()
	if spec.AssumedRecruitRole != "" {
		recruit.Role = spec.AssumedRecruitRole
	}
	if err := ValidateRoster([]RosterPlayer{recruit}); err != nil {
		return nil, err
	}

	targetGroup := spec.TargetPositionGroup
	if targetGroup == "" {
		targetGroup = recruit.PositionGroup
	}

	simulated := CloneRoster(roster)
	simulated = append(simulated, recruit)

	replacement := suggestReplacement(roster, targetGroup, cfg, asOfYear)
	if replacement != nil {
		kept := make([]RosterPlayer, 0, len(simulated)-1)
		for _, p := range simulated {
			if p.ID != replacement.PlayerID {
				kept = append(kept, p)
			}
		}
		simulated = kept
	}

	after, err := computePipeline(simulated, cfg, asOfYear)
	if err != nil {
		return nil, err
	}

	delta := &ScenarioDelta{
		Before:      before,
		After:       after,
		Replacement: replacement,
		TotalAllocated: metricDelta(before.Allocation.TotalAllocated, after.Allocation.TotalAllocated),
		Remaining:      metricDelta(before.Allocation.Remaining, after.Allocation.Remaining),
		RedRiskCount:   metricDelta(float64(redCount(before.Heatmap)), float64(redCount(after.Heatmap))),
		StatusBefore:   before.Allocation.Status,
		StatusAfter:    after.Allocation.Status,
		AuditEvents: []string{
			EventSimulationRun,
			EventRecruitSimAdded,
			EventReplacementSuggested,
			EventBeforeAfterComputed,
		},
	}
	delta.Verdict = scenarioVerdict(before, after)

	return delta, nil
}

func computePipeline(roster []RosterPlayer, cfg *CalculatorConfig, asOfYear int) (PipelineResult, error) {
	allocation, err := ComputeAllocation(roster, cfg)
	if err != nil {
		return PipelineResult{}, err
	}
	heatmap, err := ComputeRiskHeatmap(roster, cfg)
	if err != nil {
		return PipelineResult{}, err
	}
	forecast, err := ComputeForecast(roster, cfg, asOfYear)
	if err != nil {
		return PipelineResult{}, err
	}
	return PipelineResult{Allocation: allocation, Heatmap: heatmap, Forecast: forecast}, nil
}

// suggestReplacement selects the removal candidate for the target group. The
// first priority rule yielding a non-empty candidate set wins; excluded roles
// (a starter, by default) are never suggested. Returns nil when no candidate
// survives the filters.
func suggestReplacement(roster []RosterPlayer, group PositionGroup, cfg *CalculatorConfig, asOfYear int) *ReplacementCandidate {
	rules := cfg.ReplacementSuggestion

	excluded := make(map[Role]bool, len(rules.ExcludeRoles))
	for _, r := range rules.ExcludeRoles {
		excluded[r] = true
	}

	var eligible []RosterPlayer
	for _, p := range roster {
		if p.PositionGroup == group && !excluded[p.Role] {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	for _, rule := range rules.PriorityOrder {
		var candidates []RosterPlayer
		switch rule {
		case PriorityGraduatingSoon:
			for _, p := range eligible {
				if p.GradYear <= asOfYear+rules.GraduationWindowYears {
					candidates = append(candidates, p)
				}
			}
		case PriorityLowGradeDepth:
			for _, p := range eligible {
				if (p.Role == RoleDepth || p.Role == RoleDevelopmental) && p.PerformanceGrade < rules.DepthGradeThreshold {
					candidates = append(candidates, p)
				}
			}
		case PriorityLowestGradeInGroup:
			candidates = eligible
		}

		if len(candidates) == 0 {
			continue
		}

		selected := breakTies(candidates, rules.TieBreakers, cfg)
		return &ReplacementCandidate{
			PlayerID:      selected.ID,
			Name:          selected.Name,
			PositionGroup: selected.PositionGroup,
			Role:          selected.Role,
			Rule:          rule,
		}
	}

	return nil
}

// breakTies narrows the candidate set through the configured tie-breakers in
// order; the first tie-break that discriminates wins. Name ascending is the
// final fallback so selection is always deterministic.
func breakTies(candidates []RosterPlayer, breakers []TieBreaker, cfg *CalculatorConfig) RosterPlayer {
	remaining := candidates

	for _, breaker := range breakers {
		if len(remaining) == 1 {
			break
		}
		var keyOf func(RosterPlayer) float64
		switch breaker {
		case TieLowestGrade:
			keyOf = func(p RosterPlayer) float64 { return p.PerformanceGrade }
		case TieLowestSnaps:
			keyOf = func(p RosterPlayer) float64 { return p.SnapsShare }
		case TieHighestCost:
			keyOf = func(p RosterPlayer) float64 {
				cost, err := EstimateCost(p, cfg)
				if err != nil {
					return 0
				}
				return -cost
			}
		default:
			continue
		}

		best := keyOf(remaining[0])
		for _, p := range remaining[1:] {
			if k := keyOf(p); k < best {
				best = k
			}
		}
		var narrowed []RosterPlayer
		for _, p := range remaining {
			if keyOf(p) == best {
				narrowed = append(narrowed, p)
			}
		}
		remaining = narrowed
	}

	sort.Slice(remaining, func(i, j int) bool { return remaining[i].Name < remaining[j].Name })
	return remaining[0]
}

// scenarioVerdict derives the recommendation: BLOCK on a newly introduced
// OVER_MAX violation or a remaining budget that flips negative, CAUTION on a
// new or worsened NEAR_WARN or a newly introduced RED risk, else PROCEED.
func scenarioVerdict(before, after PipelineResult) Verdict {
	beforeOverMax := violationSet(before.Allocation, ViolationOverMax)
	for key := range violationSet(after.Allocation, ViolationOverMax) {
		if !beforeOverMax[key] {
			return VerdictBlock
		}
	}
	if after.Allocation.Remaining < 0 && before.Allocation.Remaining >= 0 {
		return VerdictBlock
	}

	beforeNearWarn := violationValues(before.Allocation, ViolationNearWarn)
	for key, value := range violationValues(after.Allocation, ViolationNearWarn) {
		prior, existed := beforeNearWarn[key]
		if !existed || value > prior {
			return VerdictCaution
		}
	}
	if redCount(after.Heatmap) > redCount(before.Heatmap) {
		return VerdictCaution
	}

	return VerdictProceed
}

func violationSet(r *BudgetAllocationResult, kind GuardrailKind) map[string]bool {
	set := make(map[string]bool)
	for key := range violationValues(r, kind) {
		set[key] = true
	}
	return set
}

func violationValues(r *BudgetAllocationResult, kind GuardrailKind) map[string]float64 {
	values := make(map[string]float64)
	for _, v := range r.Violations {
		if v.Kind != kind {
			continue
		}
		if v.PlayerID != "" {
			values["player:"+v.PlayerID] = v.Value
		} else {
			values["group:"+string(v.PositionGroup)] = v.Value
		}
	}
	return values
}

func redCount(h *RiskHeatmap) int {
	total := 0
	for _, row := range h.ByPositionGroup {
		total += row.Red
	}
	return total
}

func metricDelta(before, after float64) MetricDelta {
	return MetricDelta{Before: before, After: after, Delta: after - before}
}
