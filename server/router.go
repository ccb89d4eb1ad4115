package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Priyansh6570/Sanchalan/infrastructure/configuration"
	httpHandler "github.com/Priyansh6570/Sanchalan/interfaces/http"
	"github.com/Priyansh6570/Sanchalan/interfaces/middleware"
)

func InitiateRouter(
	videoHandler httpHandler.IVideoHandler,
	calendarHandler httpHandler.ICalendarHandler,
	dashboardHandler httpHandler.IDashboardHandler,
	youtubeAuthHandler httpHandler.IYouTubeAuthHandler,
	syncHandler httpHandler.ISyncHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/auth/youtube", youtubeAuthHandler.Connect)
	router.GET("/auth/youtube/callback", youtubeAuthHandler.Callback)
	router.GET("/auth/youtube/status", youtubeAuthHandler.Status)
	router.POST("/auth/youtube/disconnect", youtubeAuthHandler.Disconnect)

	api := router.Group("api")
	api.POST("/videos", videoHandler.Ingest)
	api.GET("/videos", videoHandler.List)
	api.GET("/videos/:id", videoHandler.Get)
	api.PATCH("/videos/:id", videoHandler.Patch)
	api.POST("/videos/:id/refresh", videoHandler.Refresh)

	api.GET("/calendar", calendarHandler.Feed)
	api.GET("/dashboard", dashboardHandler.Summary)
	api.GET("/analytics/channel", dashboardHandler.ChannelAnalytics)
	api.GET("/analytics/videos/:id", dashboardHandler.VideoAnalytics)

	cron := api.Group("cron", middleware.CronAuth(configuration.C.Sync.CronSecret))
	cron.POST("/sync-videos", syncHandler.SyncVideos)

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
