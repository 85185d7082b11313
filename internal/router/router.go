package router

import (
	"github.com/thewspl/financialfreedommobile/config"
	"github.com/thewspl/financialfreedommobile/internal/auth"
	"github.com/thewspl/financialfreedommobile/internal/handler"
	"github.com/thewspl/financialfreedommobile/internal/middleware"
	"github.com/thewspl/financialfreedommobile/internal/service"
	"github.com/thewspl/financialfreedommobile/internal/store"
	"github.com/thewspl/financialfreedommobile/pkg/cloudinary"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func Setup(cfg *config.Config, st store.Store, cloud cloudinary.Client, verifier auth.TokenVerifier) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Services
	walletSvc := service.NewWalletService(st, cloud)
	transactionSvc := service.NewTransactionService(st, walletSvc, cloud)
	userSvc := service.NewUserService(st, cloud)

	// Handlers
	walletHandler := handler.NewWalletHandler(walletSvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	statsHandler := handler.NewStatsHandler(transactionSvc)
	meHandler := handler.NewMeHandler(userSvc)

	authMw := middleware.AuthRequired(verifier)
	rateMw := middleware.RateLimit(middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(authMw, rateMw)
	{
		wallets := api.Group("/wallets")
		{
			wallets.POST("", walletHandler.Save)
			wallets.GET("", walletHandler.List)
			wallets.GET("/:id", walletHandler.Get)
			wallets.DELETE("/:id", walletHandler.Delete)
		}

		transactions := api.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Save)
			transactions.GET("", transactionHandler.List)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		api.GET("/categories", transactionHandler.Categories)
		api.GET("/stats/weekly", statsHandler.Weekly)

		me := api.Group("/me")
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
		}
	}

	return r
}
