package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/chughjug/ratings-sub000/internal/config"
	"github.com/chughjug/ratings-sub000/internal/handlers"
	"github.com/chughjug/ratings-sub000/internal/middleware"
)

// HandlerDependencies holds the handlers required to set up the router
type HandlerDependencies struct {
	TournamentHandler *handlers.TournamentHandler
	StandingsHandler  *handlers.StandingsHandler
	PrizeHandler      *handlers.PrizeHandler
	PlayerHandler     *handlers.PlayerHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api/v1")
	{
		// Tournament routes
		tournaments := api.Group("/tournaments")
		{
			tournaments.GET("", deps.TournamentHandler.GetTournaments)
			tournaments.GET("/:id", deps.TournamentHandler.GetTournament)
			tournaments.POST("", deps.TournamentHandler.CreateTournament)
			tournaments.PUT("/:id", deps.TournamentHandler.UpdateTournament)
			tournaments.DELETE("/:id", deps.TournamentHandler.DeleteTournament)

			// Standings routes
			tournaments.GET("/:id/standings", deps.StandingsHandler.GetStandings)
			tournaments.PUT("/:id/standings", deps.StandingsHandler.ReplaceStandings)
			tournaments.GET("/:id/sections", deps.StandingsHandler.GetSections)
			tournaments.POST("/:id/standings/refresh-ratings", deps.StandingsHandler.RefreshRatings)

			// Prize settings and structure routes
			tournaments.GET("/:id/prize-settings", deps.PrizeHandler.GetSettings)
			tournaments.PUT("/:id/prize-settings", deps.PrizeHandler.UpdateSettings)
			tournaments.POST("/:id/prize-structure/generate", deps.PrizeHandler.GenerateStructure)

			// Round completion events
			tournaments.POST("/:id/rounds/complete", deps.PrizeHandler.RoundComplete)

			// Prize distribution routes
			prizes := tournaments.Group("/:id/prizes")
			{
				prizes.GET("", deps.PrizeHandler.GetPrizes)
				prizes.POST("/calculate", deps.PrizeHandler.CalculatePrizes)
				prizes.GET("/winners", deps.PrizeHandler.GetWinners)
				prizes.POST("/manual", deps.PrizeHandler.AddManualPrize)
				prizes.DELETE("/manual/:prizeId", deps.PrizeHandler.DeleteManualPrize)
			}
		}

		// USCF member lookup routes
		uscf := api.Group("/uscf")
		{
			uscf.GET("/search", deps.PlayerHandler.SearchPlayers)
			uscf.GET("/members/:uscfId", deps.PlayerHandler.GetMember)
		}
	}

	return router
}
