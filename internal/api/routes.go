package api

import (
	"net/http"

	"alcyxob/workout-planner/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	scheduleService service.ScheduleService,
	metricsHandler http.Handler, // nil disables /metrics
) {
	authHandler := NewAuthHandler(authService)
	scheduleHandler := NewScheduleHandler(scheduleService)

	authMiddleware := AuthMiddleware(authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Series Routes ---
		seriesGroup := protected.Group("/series")
		{
			seriesGroup.GET("", scheduleHandler.ListSeries)
			seriesGroup.POST("", scheduleHandler.CreateSeries)
			seriesGroup.GET("/:id", scheduleHandler.GetSeries)
			seriesGroup.PATCH("/:id", scheduleHandler.UpdateSeries)
			seriesGroup.DELETE("/:id", scheduleHandler.DeleteSeries)

			// PATCH|DELETE /api/v1/series/{id}/occurrences/{date}?scope=one|forward|all
			seriesGroup.PATCH("/:id/occurrences/:date", scheduleHandler.EditOccurrence)
			seriesGroup.DELETE("/:id/occurrences/:date", scheduleHandler.DeleteOccurrence)

			seriesGroup.POST("/:id/completions/:date/toggle", scheduleHandler.ToggleCompletion)
			seriesGroup.GET("/:id/completions/:date", scheduleHandler.GetCompletion)

			seriesGroup.POST("/:id/image/upload-url", scheduleHandler.RequestImageUploadURL)
			seriesGroup.GET("/:id/image/url", scheduleHandler.GetImageURL)
		}

		protected.POST("/completions/match", scheduleHandler.MatchAndComplete)

		// --- Calendar Routes ---
		protected.GET("/calendar.ics", scheduleHandler.ExportICS)
		calendarGroup := protected.Group("/calendar")
		{
			calendarGroup.GET("/days/:date", scheduleHandler.GetDay)
			calendarGroup.GET("/:year/:month", scheduleHandler.GetMonth)
		}
		protected.GET("/occurrences/upcoming", scheduleHandler.GetUpcoming)
	}
}
