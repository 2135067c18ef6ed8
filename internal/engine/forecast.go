package engine

import (
	"fmt"
	"math"
	"sort"
)

// DepartureReason classifies why a player is projected to leave.
type DepartureReason string

const (
	ReasonGraduation   DepartureReason = "GRADUATION"
	ReasonTransferRisk DepartureReason = "TRANSFER_RISK"
)

// Departure is one projected roster exit.
type Departure struct {
	PlayerID            string          `json:"player_id"`
	Name                string          `json:"name"`
	PositionGroup       PositionGroup   `json:"position_group"`
	Reason              DepartureReason `json:"reason"`
	FreedCost           float64         `json:"freed_cost"`
	TransferProbability float64         `json:"transfer_probability,omitempty"`
}

// ForecastYear is the projection for one future year.
type ForecastYear struct {
	YearIndex          int                   `json:"year_index"`
	CalendarYear       int                   `json:"calendar_year"`
	ProjectedSpend     float64               `json:"projected_spend"`
	ReturningCount     int                   `json:"returning_count"`
	ReturningByGroup   map[PositionGroup]int `json:"returning_by_group"`
	ExpectedDepartures []Departure           `json:"expected_departures"`
	GapsByGroup        map[PositionGroup]int `json:"gaps_by_group"`
	Notes              []string              `json:"notes"`
}

// ComputeForecast projects spend, departures, and headcount gaps for each
// configured forecast year. Departures compound: each year starts from the
// previous year's post-departure roster, so returning counts only shrink.
//
// Transfer probabilities are deterministic expected values, never stochastic
// draws; a player is an expected transfer departure when their probability
// meets the configured expectation threshold.
func ComputeForecast(roster []RosterPlayer, cfg *CalculatorConfig, asOfYear int) ([]ForecastYear, error) {
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}

	remaining := CloneRoster(roster)
	originalCount := len(roster)
	years := make([]ForecastYear, 0, len(cfg.Forecasting.Years))

	for _, i := range cfg.Forecasting.Years {
		year := ForecastYear{
			YearIndex:        i,
			CalendarYear:     asOfYear + i,
			ReturningByGroup: make(map[PositionGroup]int),
			GapsByGroup:      make(map[PositionGroup]int),
		}

		var graduating, transferring []Departure
		var survivors []RosterPlayer

		for _, p := range remaining {
			if p.GradYear <= asOfYear+i {
				d, err := graduationDeparture(p, cfg)
				if err != nil {
					return nil, err
				}
				graduating = append(graduating, d)
				continue
			}
			survivors = append(survivors, p)
		}

		if cfg.Forecasting.Departures.Transfer.UseRiskColor {
			kept := survivors[:0]
			for _, p := range survivors {
				prob, err := transferProbability(p, cfg)
				if err != nil {
					return nil, err
				}
				if prob >= cfg.Forecasting.Departures.Transfer.ExpectationThreshold {
					cost, err := EstimateCost(p, cfg)
					if err != nil {
						return nil, err
					}
					transferring = append(transferring, Departure{
						PlayerID:            p.ID,
						Name:                p.Name,
						PositionGroup:       p.PositionGroup,
						Reason:              ReasonTransferRisk,
						FreedCost:           cost,
						TransferProbability: prob,
					})
					continue
				}
				kept = append(kept, p)
			}
			survivors = kept
		}

		// Graduation departures are listed before transfer departures, each
		// sorted by player name.
		sortDeparturesByName(graduating)
		sortDeparturesByName(transferring)
		year.ExpectedDepartures = append(graduating, transferring...)

		remaining = survivors
		year.ReturningCount = len(remaining)
		for _, p := range remaining {
			year.ReturningByGroup[p.PositionGroup]++
		}

		for _, group := range GroupOrder {
			target, ok := cfg.Forecasting.TargetHeadcountByGroup[group]
			if !ok {
				continue
			}
			if gap := target - year.ReturningByGroup[group]; gap > 0 {
				year.GapsByGroup[group] = gap
			}
		}

		spend, err := projectedSpend(remaining, originalCount, i, cfg)
		if err != nil {
			return nil, err
		}
		year.ProjectedSpend = spend
		year.Notes = forecastNotes(graduating, transferring, cfg)

		years = append(years, year)
	}

	return years, nil
}

func graduationDeparture(p RosterPlayer, cfg *CalculatorConfig) (Departure, error) {
	cost, err := EstimateCost(p, cfg)
	if err != nil {
		return Departure{}, err
	}
	boost, ok := cfg.Forecasting.Departures.Graduation.GraduatingRoleBoost[p.Role]
	if !ok {
		return Departure{}, newConfigError("forecasting.departures.graduation.graduating_role_boost",
			string(p.Role), "no boost configured")
	}
	return Departure{
		PlayerID:      p.ID,
		Name:          p.Name,
		PositionGroup: p.PositionGroup,
		Reason:        ReasonGraduation,
		FreedCost:     cost * boost,
	}, nil
}

// transferProbability is the deterministic per-year transfer expectation for
// one surviving player.
func transferProbability(p RosterPlayer, cfg *CalculatorConfig) (float64, error) {
	assessment, err := ScoreRisk(p.RiskFactors, cfg)
	if err != nil {
		return 0, err
	}
	base, ok := cfg.Forecasting.Departures.Transfer.BaseProbByRiskColor[assessment.Color]
	if !ok {
		return 0, newConfigError("forecasting.departures.transfer.base_prob_by_risk_color",
			string(assessment.Color), "no base probability configured")
	}
	mult, ok := cfg.Forecasting.Departures.Transfer.RoleMultiplier[p.Role]
	if !ok {
		return 0, newConfigError("forecasting.departures.transfer.role_multiplier",
			string(p.Role), "no multiplier configured")
	}
	return base * mult, nil
}

// projectedSpend sums the remaining players' costs at year-i inflation, plus
// the modeled replacement cost per departure slot when auto-replacement is on.
// When off (the seed default), departures reduce spend and surface purely as
// headcount gaps.
func projectedSpend(remaining []RosterPlayer, originalCount, yearIndex int, cfg *CalculatorConfig) (float64, error) {
	total := 0.0
	for _, p := range remaining {
		cost, err := EstimateCost(p, cfg)
		if err != nil {
			return 0, err
		}
		total += cost
	}

	if cfg.Forecasting.Replacement.AutoReplaceDepartures {
		slots := originalCount - len(remaining)
		if slots > 0 {
			replacementCost, err := replacementSlotCost(cfg)
			if err != nil {
				return 0, err
			}
			total += float64(slots) * replacementCost
		}
	}

	inflation := math.Pow(1+cfg.Forecasting.InflationRateYoY, float64(yearIndex))
	return total * inflation, nil
}

func replacementSlotCost(cfg *CalculatorConfig) (float64, error) {
	model := cfg.Forecasting.Replacement
	band, ok := cfg.RevShareBands[model.DefaultReplacementBand]
	if !ok {
		return 0, newConfigError("forecasting.replacement.default_replacement_band",
			string(model.DefaultReplacementBand), "no band configured")
	}
	mult, ok := cfg.RoleCostMultipliers[model.DefaultReplacementRole]
	if !ok {
		return 0, newConfigError("forecasting.replacement.default_replacement_role",
			string(model.DefaultReplacementRole), "no multiplier configured")
	}
	return roundCost(band.Mid*mult, cfg.AllocationAlgorithm.Rounding)
}

func sortDeparturesByName(departures []Departure) {
	sort.Slice(departures, func(i, j int) bool {
		return departures[i].Name < departures[j].Name
	})
}

func forecastNotes(graduating, transferring []Departure, cfg *CalculatorConfig) []string {
	var notes []string
	if len(graduating) > 0 {
		notes = append(notes, fmt.Sprintf("%d graduation departure(s)", len(graduating)))
	}
	if len(transferring) > 0 {
		notes = append(notes, fmt.Sprintf("%d transfer-risk departure(s) at or above the %.0f%% expectation threshold",
			len(transferring), cfg.Forecasting.Departures.Transfer.ExpectationThreshold*100))
	}
	if !cfg.Forecasting.Replacement.AutoReplaceDepartures && (len(graduating) > 0 || len(transferring) > 0) {
		notes = append(notes, "replacement modeling disabled; departures surface as headcount gaps")
	}
	return notes
}
