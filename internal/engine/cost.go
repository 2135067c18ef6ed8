package engine

import "math"

// EstimateCost computes the deterministic monetary cost for one player.
//
// An explicit cost override always wins. Otherwise the player's NIL band mid
// value is scaled by the role multiplier and the position-group weight, then
// rounded per the configured rounding rule. A band, role, or group with no
// config entry is a ConfigError, never a silent default.
func EstimateCost(p RosterPlayer, cfg *CalculatorConfig) (float64, error) {
	if p.CostOverride != nil {
		return *p.CostOverride, nil
	}

	band, ok := cfg.RevShareBands[p.NILBand]
	if !ok {
		return 0, newConfigError("rev_share_bands", string(p.NILBand), "no band configured")
	}
	mult, ok := cfg.RoleCostMultipliers[p.Role]
	if !ok {
		return 0, newConfigError("role_cost_multipliers", string(p.Role), "no multiplier configured")
	}
	weight, ok := cfg.PositionGroupBudgetWeights[p.PositionGroup]
	if !ok {
		return 0, newConfigError("position_group_budget_weights", string(p.PositionGroup), "no weight configured")
	}

	return roundCost(band.Mid*mult*weight, cfg.AllocationAlgorithm.Rounding)
}

func roundCost(v float64, r Rounding) (float64, error) {
	switch r.Method {
	case RoundNearest:
		return math.Round(v/r.Value) * r.Value, nil
	default:
		return 0, newConfigError("allocation_algorithm.rounding.method", string(r.Method), "unsupported rounding method")
	}
}
