package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gridironhq/recruiting-ops/internal/models"
	"github.com/gridironhq/recruiting-ops/pkg/database"
)

// GradeImportService ingests external grading sheets: CSV rows keyed by
// external_ref carrying partial player updates. Parsing is independent of the
// engine; the engine only ever sees the resulting roster snapshot.
type GradeImportService struct {
	db     *database.DB
	logger *logrus.Logger
}

// GradeRow is one parsed update. Only the columns present in the file are
// applied; a nil field leaves the stored value untouched.
type GradeRow struct {
	ExternalRef      string
	PerformanceGrade *float64
	SnapsShare       *float64
	InjuryRisk       *float64
	TransferRisk     *float64
	AcademicsRisk    *float64
}

// ImportReport summarizes one applied import.
type ImportReport struct {
	RowsParsed  int      `json:"rows_parsed"`
	RowsApplied int      `json:"rows_applied"`
	NotFound    []string `json:"not_found,omitempty"`
}

var gradeColumns = map[string]bool{
	"performance_grade": true,
	"snaps_share":       true,
	"injury_risk":       true,
	"transfer_risk":     true,
	"academics_risk":    true,
}

func NewGradeImportService(db *database.DB, logger *logrus.Logger) *GradeImportService {
	return &GradeImportService{db: db, logger: logger}
}

// Parse reads and validates the full CSV before anything is applied. A single
// malformed row fails the whole file: a partially imported sheet would be
// indistinguishable from a complete one.
func (s *GradeImportService) Parse(r io.Reader) ([]GradeRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	refIndex := -1
	columns := make(map[int]string)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "external_ref" {
			refIndex = i
			continue
		}
		if gradeColumns[name] {
			columns[i] = name
		}
	}
	if refIndex < 0 {
		return nil, fmt.Errorf("CSV header missing required external_ref column")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("CSV header contains no recognized grade columns")
	}

	var rows []GradeRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		row := GradeRow{ExternalRef: strings.TrimSpace(record[refIndex])}
		if row.ExternalRef == "" {
			return nil, fmt.Errorf("CSV line %d: empty external_ref", line)
		}

		for i, column := range columns {
			raw := strings.TrimSpace(record[i])
			if raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("CSV line %d: column %s: invalid number %q", line, column, raw)
			}
			if err := validateGradeValue(column, value); err != nil {
				return nil, fmt.Errorf("CSV line %d: %w", line, err)
			}
			v := value
			switch column {
			case "performance_grade":
				row.PerformanceGrade = &v
			case "snaps_share":
				row.SnapsShare = &v
			case "injury_risk":
				row.InjuryRisk = &v
			case "transfer_risk":
				row.TransferRisk = &v
			case "academics_risk":
				row.AcademicsRisk = &v
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// Apply writes the parsed rows inside one transaction. Unknown refs are
// reported, not fatal: grading sheets routinely include players who have
// already left the roster.
func (s *GradeImportService) Apply(rows []GradeRow) (*ImportReport, error) {
	report := &ImportReport{RowsParsed: len(rows)}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var player models.Player
			if err := tx.Where("external_ref = ?", row.ExternalRef).First(&player).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					report.NotFound = append(report.NotFound, row.ExternalRef)
					continue
				}
				return fmt.Errorf("failed to look up %s: %w", row.ExternalRef, err)
			}

			updates := make(map[string]interface{})
			if row.PerformanceGrade != nil {
				updates["performance_grade"] = *row.PerformanceGrade
			}
			if row.SnapsShare != nil {
				updates["snaps_share"] = *row.SnapsShare
			}
			if row.InjuryRisk != nil {
				updates["injury_risk"] = *row.InjuryRisk
			}
			if row.TransferRisk != nil {
				updates["transfer_risk"] = *row.TransferRisk
			}
			if row.AcademicsRisk != nil {
				updates["academics_risk"] = *row.AcademicsRisk
			}
			if len(updates) == 0 {
				continue
			}

			if err := tx.Model(&player).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update %s: %w", row.ExternalRef, err)
			}
			report.RowsApplied++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Grade import applied: %d/%d rows, %d unknown refs",
		report.RowsApplied, report.RowsParsed, len(report.NotFound))
	return report, nil
}

func validateGradeValue(column string, value float64) error {
	if column == "snaps_share" {
		if value < 0 || value > 1 {
			return fmt.Errorf("column snaps_share: value %v outside [0,1]", value)
		}
		return nil
	}
	if value < 0 || value > 100 {
		return fmt.Errorf("column %s: value %v outside [0,100]", column, value)
	}
	return nil
}
