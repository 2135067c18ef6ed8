package engine

import (
	"math"
	"sort"
	"strconv"
)

// RiskAssessment is the scored risk for one player.
type RiskAssessment struct {
	Score   int          `json:"score"`
	Color   RiskColor    `json:"color"`
	Drivers []RiskDriver `json:"drivers"`
}

// RiskDriver is one risk factor strong enough to display as a driver.
type RiskDriver struct {
	Factor string  `json:"factor"`
	Value  float64 `json:"value"`
}

// ScoreRisk computes the weighted 0-100 risk score, its color classification,
// and the display drivers for one set of risk factors.
func ScoreRisk(f RiskFactors, cfg *CalculatorConfig) (RiskAssessment, error) {
	w := cfg.Risk.Weights
	raw := f.Injury*w.Injury + f.Transfer*w.Transfer + f.Academics*w.Academics

	score := int(math.Round(raw))
	if score < cfg.Risk.ScoreRange.Min {
		score = cfg.Risk.ScoreRange.Min
	}
	if score > cfg.Risk.ScoreRange.Max {
		score = cfg.Risk.ScoreRange.Max
	}

	color, err := colorForScore(score, cfg)
	if err != nil {
		return RiskAssessment{}, err
	}

	return RiskAssessment{
		Score:   score,
		Color:   color,
		Drivers: riskDrivers(f, cfg.Risk.DriversMinToDisplay),
	}, nil
}

// colorForScore returns the first configured threshold band containing the
// score. A score falling in a gap is a configuration bug and fails loudly
// rather than guessing a color.
func colorForScore(score int, cfg *CalculatorConfig) (RiskColor, error) {
	for _, t := range cfg.Risk.ColorThresholds {
		if score >= t.Min && score <= t.Max {
			return t.Color, nil
		}
	}
	return "", newConfigError("risk.color_thresholds", "",
		"no threshold band contains score "+strconv.Itoa(score))
}

// riskDrivers returns the factors at or above the display threshold, sorted
// descending by value. Factor order breaks value ties so output is stable.
func riskDrivers(f RiskFactors, min float64) []RiskDriver {
	candidates := []RiskDriver{
		{Factor: "injury", Value: f.Injury},
		{Factor: "transfer", Value: f.Transfer},
		{Factor: "academics", Value: f.Academics},
	}

	drivers := make([]RiskDriver, 0, len(candidates))
	for _, d := range candidates {
		if d.Value >= min {
			drivers = append(drivers, d)
		}
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Value > drivers[j].Value
	})
	return drivers
}
