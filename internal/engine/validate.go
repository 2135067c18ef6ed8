package engine

// ValidateRoster rejects a structurally invalid snapshot before any computation
// begins. Validation is all-or-nothing: a batch containing one invalid entry
// produces no results at all.
func ValidateRoster(roster []RosterPlayer) error {
	for _, p := range roster {
		if p.ID == "" {
			return newValidationError("", "id", "missing player id")
		}
		if p.Name == "" {
			return newValidationError(p.ID, "name", "missing player name")
		}
		if !validGroups[p.PositionGroup] {
			return newValidationError(p.ID, "position_group", "unknown position group "+string(p.PositionGroup))
		}
		if !validRoles[p.Role] {
			return newValidationError(p.ID, "role", "unknown role "+string(p.Role))
		}
		if !validBands[p.NILBand] {
			return newValidationError(p.ID, "nil_band", "unknown NIL band "+string(p.NILBand))
		}
		if p.GradYear <= 0 {
			return newValidationError(p.ID, "grad_year", "grad year must be positive")
		}
		if p.EligibilityRemaining < 0 {
			return newValidationError(p.ID, "eligibility_remaining", "eligibility must not be negative")
		}
		if p.SnapsShare < 0 || p.SnapsShare > 1 {
			return newValidationError(p.ID, "snaps_share", "snaps share must be within [0,1]")
		}
		if p.PerformanceGrade < 0 || p.PerformanceGrade > 100 {
			return newValidationError(p.ID, "performance_grade", "performance grade must be within [0,100]")
		}
		if err := validateFactor(p.ID, "risk_factors.injury", p.RiskFactors.Injury); err != nil {
			return err
		}
		if err := validateFactor(p.ID, "risk_factors.transfer", p.RiskFactors.Transfer); err != nil {
			return err
		}
		if err := validateFactor(p.ID, "risk_factors.academics", p.RiskFactors.Academics); err != nil {
			return err
		}
		if p.CostOverride != nil && *p.CostOverride < 0 {
			return newValidationError(p.ID, "estimated_cost", "cost override must not be negative")
		}
	}
	return nil
}

func validateFactor(playerID, field string, value float64) error {
	if value < 0 || value > 100 {
		return newValidationError(playerID, field, "risk factor must be within [0,100]")
	}
	return nil
}
