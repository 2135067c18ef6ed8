package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/api/handlers"
	"github.com/gridironhq/recruiting-ops/internal/api/middleware"
	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/internal/services"
	"github.com/gridironhq/recruiting-ops/pkg/config"
	"github.com/gridironhq/recruiting-ops/pkg/database"
)

// Deps carries the shared services the route handlers need.
type Deps struct {
	DB           *database.DB
	Cache        *services.CacheService
	Hub          *services.WebSocketHub
	Roster       *services.RosterService
	Importer     *services.GradeImportService
	PortalSync   *services.PortalSyncService
	Calc         *engine.CalculatorConfig
	PlanningYear int
	Logger       *logrus.Logger
}

// SetupRoutes configures all API routes on the given router group. Reads are
// public; anything that writes roster data or triggers external calls
// requires auth.
func SetupRoutes(group *gin.RouterGroup, cfg *config.Config, deps Deps) {
	cacheTTL := time.Duration(cfg.CacheExpiration) * time.Second

	playerHandler := handlers.NewPlayerHandler(deps.Roster, deps.Calc)
	budgetHandler := handlers.NewBudgetHandler(deps.Roster, deps.Cache, deps.Calc, cacheTTL, deps.Logger)
	forecastHandler := handlers.NewForecastHandler(deps.Roster, deps.Cache, deps.Calc, deps.PlanningYear, cacheTTL, deps.Logger)
	scenarioHandler := handlers.NewScenarioHandler(deps.DB, deps.Roster, deps.Cache, deps.Hub, deps.Calc, deps.PlanningYear, deps.Logger)
	importHandler := handlers.NewImportHandler(deps.Importer, deps.Logger)
	configHandler := handlers.NewConfigHandler(deps.Calc, deps.PlanningYear)
	syncHandler := handlers.NewSyncHandler(deps.PortalSync, deps.Logger)

	// Roster reads
	group.GET("/players", playerHandler.ListPlayers)
	group.GET("/players/:ref", playerHandler.GetPlayer)

	// Computed views
	group.GET("/budget/allocation", budgetHandler.GetAllocation)
	group.GET("/risk/heatmap", budgetHandler.GetHeatmap)
	group.GET("/forecast", forecastHandler.GetForecast)

	// Active policy
	group.GET("/config/calculator", configHandler.GetCalculatorConfig)

	// Scenario audit trail reads
	group.GET("/scenarios", scenarioHandler.ListScenarioRuns)
	group.GET("/scenarios/:run_id", scenarioHandler.GetScenarioRun)

	// Authenticated routes
	auth := group.Group("")
	auth.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		auth.POST("/players", playerHandler.CreatePlayer)
		auth.PUT("/players/:ref", playerHandler.UpdatePlayer)
		auth.DELETE("/players/:ref", playerHandler.DeletePlayer)

		auth.POST("/scenarios/run", scenarioHandler.RunScenario)
		auth.POST("/scenarios/wow", scenarioHandler.RunWowScenario)

		auth.POST("/import/grades", importHandler.ImportGrades)
		auth.POST("/sync/portal", syncHandler.TriggerPortalSync)
	}
}
