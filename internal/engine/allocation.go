package engine

import "sort"

// GuardrailKind classifies a budget guardrail violation.
type GuardrailKind string

const (
	ViolationOverMax  GuardrailKind = "OVER_MAX"
	ViolationNearWarn GuardrailKind = "NEAR_WARN"
)

// BadgeStatus is the three-way guardrail status rendered by the UI badge.
// Precedence is over > near > within and must be preserved exactly.
type BadgeStatus string

const (
	StatusOver   BadgeStatus = "over"
	StatusNear   BadgeStatus = "near"
	StatusWithin BadgeStatus = "within"
)

// GuardrailViolation is one breached ceiling, scoped either to a position
// group (percent guardrails) or to a single player (max-per-player).
type GuardrailViolation struct {
	Kind          GuardrailKind `json:"kind"`
	PositionGroup PositionGroup `json:"position_group,omitempty"`
	PlayerID      string        `json:"player_id,omitempty"`
	PlayerName    string        `json:"player_name,omitempty"`
	Value         float64       `json:"value"`
	Threshold     float64       `json:"threshold"`
}

// GroupAllocation is one position group's share of the budget.
type GroupAllocation struct {
	PositionGroup   PositionGroup `json:"position_group"`
	Amount          float64       `json:"amount"`
	PercentOfBudget float64       `json:"percent_of_budget"`
	PlayerCount     int           `json:"player_count"`
}

// BudgetAllocationResult is the full allocation output for one roster snapshot.
type BudgetAllocationResult struct {
	TotalAllocated  float64              `json:"total_allocated"`
	AvailableBudget float64              `json:"available_budget"`
	Remaining       float64              `json:"remaining"`
	ByPositionGroup []GroupAllocation    `json:"by_position_group"`
	Violations      []GuardrailViolation `json:"violations"`
	Status          BadgeStatus          `json:"status"`
}

// ComputeAllocation sums player costs into per-group allocations, computes
// each group's percent of the available budget, and evaluates guardrails.
//
// A negative remaining is a guardrail signal, not an error. A player whose
// cost breaches max-per-player is flagged but the cost still counts toward
// totals and percentages; only the flag changes.
func ComputeAllocation(roster []RosterPlayer, cfg *CalculatorConfig) (*BudgetAllocationResult, error) {
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}

	availableBudget := cfg.BudgetTotals.TotalRevShareBudget
	if cfg.BudgetTotals.TreatReserveAsLocked {
		availableBudget -= cfg.BudgetTotals.ContingencyReserve
	}

	groupSums := make(map[PositionGroup]float64)
	groupCounts := make(map[PositionGroup]int)
	var playerViolations []GuardrailViolation
	totalAllocated := 0.0

	for _, p := range roster {
		cost, err := EstimateCost(p, cfg)
		if err != nil {
			return nil, err
		}
		groupSums[p.PositionGroup] += cost
		groupCounts[p.PositionGroup]++
		totalAllocated += cost

		if cost > cfg.BudgetGuardrails.MaxPerPlayer {
			playerViolations = append(playerViolations, GuardrailViolation{
				Kind:       ViolationOverMax,
				PlayerID:   p.ID,
				PlayerName: p.Name,
				Value:      cost,
				Threshold:  cfg.BudgetGuardrails.MaxPerPlayer,
			})
		}
	}

	result := &BudgetAllocationResult{
		TotalAllocated:  totalAllocated,
		AvailableBudget: availableBudget,
		Remaining:       availableBudget - totalAllocated,
	}

	for _, group := range GroupOrder {
		sum, ok := groupSums[group]
		if !ok {
			continue
		}
		percent := 0.0
		if availableBudget > 0 {
			percent = sum / availableBudget
		}
		result.ByPositionGroup = append(result.ByPositionGroup, GroupAllocation{
			PositionGroup:   group,
			Amount:          sum,
			PercentOfBudget: percent,
			PlayerCount:     groupCounts[group],
		})

		// OVER_MAX and NEAR_WARN are mutually exclusive per group; OVER_MAX
		// takes precedence.
		switch {
		case percent > cfg.BudgetGuardrails.MaxPositionPercent:
			result.Violations = append(result.Violations, GuardrailViolation{
				Kind:          ViolationOverMax,
				PositionGroup: group,
				Value:         percent,
				Threshold:     cfg.BudgetGuardrails.MaxPositionPercent,
			})
		case percent > cfg.BudgetGuardrails.WarnPositionPercent:
			result.Violations = append(result.Violations, GuardrailViolation{
				Kind:          ViolationNearWarn,
				PositionGroup: group,
				Value:         percent,
				Threshold:     cfg.BudgetGuardrails.WarnPositionPercent,
			})
		}
	}

	sort.Slice(playerViolations, func(i, j int) bool {
		return playerViolations[i].PlayerName < playerViolations[j].PlayerName
	})
	result.Violations = append(result.Violations, playerViolations...)

	result.Status = badgeStatus(result, cfg)
	return result, nil
}

// badgeStatus derives the three-way badge from the violations and the
// remaining-buffer check: over beats near beats within.
func badgeStatus(r *BudgetAllocationResult, cfg *CalculatorConfig) BadgeStatus {
	hasNearWarn := false
	for _, v := range r.Violations {
		switch v.Kind {
		case ViolationOverMax:
			return StatusOver
		case ViolationNearWarn:
			hasNearWarn = true
		}
	}
	if hasNearWarn || r.Remaining < cfg.BudgetGuardrails.MinRemainingBuffer {
		return StatusNear
	}
	return StatusWithin
}
