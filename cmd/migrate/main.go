package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/models"
	"github.com/gridironhq/recruiting-ops/pkg/config"
	"github.com/gridironhq/recruiting-ops/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.AutoMigrate(
		&models.Player{},
		&models.ScenarioRun{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_players_group_role ON players(position_group, role)",
		"CREATE INDEX IF NOT EXISTS idx_players_grad_year ON players(grad_year)",
		"CREATE INDEX IF NOT EXISTS idx_scenario_runs_created ON scenario_runs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	tables := []string{
		"scenario_runs",
		"players",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

// seedData loads the demo roster used by the default calculator policy,
// including the canned demo recruit.
func seedData(db *database.DB) error {
	players := []models.Player{
		// Quarterbacks
		seedPlayer("qb-001", "Marcus Vaughn", "QB", "QB", "JR", 2027, 2, "HIGH", "STARTER", 0.92, 88, 15, 10, 5),
		seedPlayer("qb-002", "Trey Caldwell", "QB", "QB", "SO", 2028, 3, "MED", "ROTATION", 0.08, 71, 10, 35, 10),
		seedPlayer("qb-003", "Eli Burrows", "QB", "QB", "FR", 2029, 4, "LOW", "DEPTH", 0.0, 58, 5, 40, 20),

		// Running backs
		seedPlayer("rb-001", "Dante Pryor", "RB", "RB", "SR", 2026, 1, "MED", "STARTER", 0.68, 84, 45, 10, 5),
		seedPlayer("rb-002", "Kai Thornton", "RB", "RB", "SO", 2028, 3, "MED", "ROTATION", 0.32, 76, 25, 20, 10),
		seedPlayer("rb-003", "Jalen Moss", "RB", "RB", "FR", 2029, 4, "LOW", "DEPTH", 0.05, 61, 10, 30, 15),

		// Wide receivers
		seedPlayer("wr-001", "Donte Whitfield", "WR", "WR", "JR", 2027, 2, "HIGH", "STARTER", 0.85, 90, 20, 25, 5),
		seedPlayer("wr-002", "Cole Ramsey", "WR", "WR", "SO", 2028, 3, "MED", "STARTER", 0.74, 81, 15, 15, 10),
		seedPlayer("wr-003", "Isaiah Frost", "WR", "WR", "SO", 2028, 3, "LOW", "ROTATION", 0.41, 68, 30, 45, 20),
		seedPlayer("wr-004", "Quentin Bell", "WR", "WR", "FR", 2029, 4, "LOW", "DEPTH", 0.10, 55, 10, 50, 30),

		// Tight ends
		seedPlayer("te-001", "Griffin Lowe", "TE", "TE", "SR", 2026, 1, "MED", "STARTER", 0.78, 79, 35, 5, 5),
		seedPlayer("te-002", "Beckett Shaw", "TE", "TE", "FR", 2029, 4, "LOW", "DEPTH", 0.12, 60, 15, 25, 40),

		// Offensive line. ol-001 is the reference cost example: MED band at a
		// starter OL lands on 60000 after rounding.
		seedPlayer("ol-001", "Sam Whitaker", "LT", "OL", "JR", 2027, 2, "MED", "STARTER", 0.95, 83, 70, 10, 5),
		seedPlayer("ol-002", "Roman Teague", "LG", "OL", "SR", 2026, 1, "MED", "STARTER", 0.91, 80, 30, 5, 10),
		seedPlayer("ol-003", "Hank Osei", "C", "OL", "JR", 2027, 2, "MED", "STARTER", 0.93, 82, 20, 10, 5),
		seedPlayer("ol-004", "Wade Kimbrough", "RG", "OL", "SO", 2028, 3, "LOW", "ROTATION", 0.45, 66, 15, 30, 15),
		seedPlayer("ol-005", "Tobias Granger", "RT", "OL", "SR", 2026, 1, "LOW", "DEPTH", 0.22, 58, 25, 20, 35),

		// Defensive line
		seedPlayer("dl-001", "Zeke Harmon", "DE", "DL", "JR", 2027, 2, "HIGH", "STARTER", 0.82, 87, 40, 15, 5),
		seedPlayer("dl-002", "Omar Castellanos", "DT", "DL", "SO", 2028, 3, "MED", "ROTATION", 0.55, 74, 20, 25, 10),
		seedPlayer("dl-003", "Bryce Holt", "DE", "DL", "FR", 2029, 4, "LOW", "DEPTH", 0.08, 57, 10, 35, 25),

		// Linebackers
		seedPlayer("lb-001", "Cassius Reed", "MLB", "LB", "SR", 2026, 1, "MED", "STARTER", 0.88, 85, 30, 5, 5),
		seedPlayer("lb-002", "Jonah Pritchard", "OLB", "LB", "SO", 2028, 3, "LOW", "ROTATION", 0.48, 70, 55, 40, 15),

		// Defensive backs
		seedPlayer("db-001", "Amari Sloan", "CB", "DB", "JR", 2027, 2, "HIGH", "STARTER", 0.89, 89, 25, 30, 5),
		seedPlayer("db-002", "Darius Colby", "S", "DB", "SO", 2028, 3, "MED", "STARTER", 0.80, 78, 15, 20, 10),
		seedPlayer("db-003", "Miles Ashford", "CB", "DB", "FR", 2029, 4, "LOW", "DEPTH", 0.15, 59, 20, 60, 20),

		// Special teams
		seedPlayer("st-001", "Hudson Clarke", "K", "ST", "SO", 2028, 3, "LOW", "STARTER", 0.99, 75, 5, 10, 5),
		seedPlayer("st-002", "Finn Delaney", "P", "ST", "FR", 2029, 4, "LOW", "ROTATION", 0.98, 67, 5, 15, 10),
	}

	// Demo recruit for the canned scenario. Excluded from the active roster by
	// the is_recruit flag.
	recruit := seedPlayer("recruit-ol-demo", "JudahAn", "OT", "OL", "FR", 2030, 4, "HIGH", "ROTATION", 0.0, 86, 10, 20, 10)
	recruit.IsRecruit = true
	players = append(players, recruit)

	if err := db.Create(&players).Error; err != nil {
		return fmt.Errorf("failed to create players: %w", err)
	}

	logrus.Infof("Seeded %d players", len(players))
	return nil
}

func seedPlayer(ref, name, position, group, classYear string, gradYear, eligibility int, band, role string, snaps, grade, injury, transfer, academics float64) models.Player {
	return models.Player{
		ExternalRef:          ref,
		Name:                 name,
		Position:             position,
		PositionGroup:        group,
		ClassYear:            classYear,
		GradYear:             gradYear,
		EligibilityRemaining: eligibility,
		NILBand:              band,
		Role:                 role,
		SnapsShare:           snaps,
		PerformanceGrade:     grade,
		InjuryRisk:           injury,
		TransferRisk:         transfer,
		AcademicsRisk:        academics,
	}
}
