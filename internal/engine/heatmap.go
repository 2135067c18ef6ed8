package engine

import "sort"

// HeatmapRow buckets one position group's players by risk color. Groups with
// no players are omitted; empty rows are never synthesized.
type HeatmapRow struct {
	PositionGroup PositionGroup `json:"position_group"`
	Green         int           `json:"green"`
	Yellow        int           `json:"yellow"`
	Red           int           `json:"red"`
}

// KeyRisk is one elevated-risk player surfaced with its drivers.
type KeyRisk struct {
	PlayerID  string    `json:"player_id"`
	Name      string    `json:"name"`
	RiskScore int       `json:"risk_score"`
	RiskColor RiskColor `json:"risk_color"`
	Drivers   []string  `json:"drivers"`
}

// RiskHeatmap is the position-group x risk-color aggregation for one snapshot.
type RiskHeatmap struct {
	ByPositionGroup []HeatmapRow `json:"by_position_group"`
	KeyRisks        []KeyRisk    `json:"key_risks"`
}

// ComputeRiskHeatmap buckets players by position group and risk color and
// surfaces YELLOW/RED players as key risks. No cap is imposed on the key-risk
// list; truncation for display is a UI concern.
func ComputeRiskHeatmap(roster []RosterPlayer, cfg *CalculatorConfig) (*RiskHeatmap, error) {
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}

	rows := make(map[PositionGroup]*HeatmapRow)
	var keyRisks []KeyRisk

	for _, p := range roster {
		assessment, err := ScoreRisk(p.RiskFactors, cfg)
		if err != nil {
			return nil, err
		}

		row, ok := rows[p.PositionGroup]
		if !ok {
			row = &HeatmapRow{PositionGroup: p.PositionGroup}
			rows[p.PositionGroup] = row
		}
		switch assessment.Color {
		case RiskGreen:
			row.Green++
		case RiskYellow:
			row.Yellow++
		case RiskRed:
			row.Red++
		}

		if assessment.Color == RiskYellow || assessment.Color == RiskRed {
			drivers := make([]string, len(assessment.Drivers))
			for i, d := range assessment.Drivers {
				drivers[i] = d.Factor
			}
			keyRisks = append(keyRisks, KeyRisk{
				PlayerID:  p.ID,
				Name:      p.Name,
				RiskScore: assessment.Score,
				RiskColor: assessment.Color,
				Drivers:   drivers,
			})
		}
	}

	heatmap := &RiskHeatmap{}
	for _, group := range GroupOrder {
		if row, ok := rows[group]; ok {
			heatmap.ByPositionGroup = append(heatmap.ByPositionGroup, *row)
		}
	}

	// Score descending, ties broken by name ascending for determinism.
	sort.Slice(keyRisks, func(i, j int) bool {
		if keyRisks[i].RiskScore != keyRisks[j].RiskScore {
			return keyRisks[i].RiskScore > keyRisks[j].RiskScore
		}
		return keyRisks[i].Name < keyRisks[j].Name
	})
	heatmap.KeyRisks = keyRisks

	return heatmap, nil
}
