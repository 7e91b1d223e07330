package main

import (
	"github.com/haedavja/hahahahgo/internal/api"
	"github.com/haedavja/hahahahgo/internal/catalog"
	"github.com/haedavja/hahahahgo/internal/config"
	"github.com/haedavja/hahahahgo/internal/constants"
	"github.com/haedavja/hahahahgo/internal/storage"

	"github.com/gin-gonic/gin"
)

func newRouter(repo storage.Repository, cat *catalog.Catalog, cfg *config.Config) *gin.Engine {
	battles := api.NewBattleHandler(repo, cat, cfg.ActionTimeout)
	catalogH := api.NewCatalogHandler(cat)
	auth := api.NewAuthHandler(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteCards, catalogH.ListCards)
		apiRoutes.GET(constants.RouteEnemies, catalogH.ListEnemies)
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteHealth, api.Health)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, battles.GetPlayerStats)
		protected.GET(constants.RouteBattles, battles.ListBattles)
		protected.POST(constants.RouteBattles, battles.CreateBattle)
		protected.GET(constants.RouteBattleByID, battles.GetBattle)
		protected.GET(constants.RouteBattleByCode, battles.GetBattleByCode)
		protected.POST(constants.RouteBattleSubmit, battles.SubmitCards)
		protected.POST(constants.RouteBattleReorder, battles.ReorderCards)
		protected.POST(constants.RouteBattleRewind, battles.RewindTurn)
		protected.POST(constants.RouteBattleRedraw, battles.RedrawHand)
		protected.POST(constants.RouteBattleResolve, battles.ResolveTurn)
		protected.POST(constants.RouteBattleStep, battles.StepTurn)
		protected.POST(constants.RouteBattleChoice, battles.ChooseCard)
		protected.POST(constants.RouteBattleConcede, battles.Concede)
		protected.GET(constants.RouteBattleStream, api.StreamBattle(repo))
	}

	router.POST(constants.RouteAuthGoogleCallBack, auth.GoogleOAuthCallback)
	router.POST(constants.RouteAPIPrefix+constants.RouteAuthLogout, auth.Logout)

	return router
}
