package route

import (
	"evidentia/backend/api/handler"
	"evidentia/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(route *gin.Engine) {
	apiRouter := route.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", handler.GetStatus)

		authRoutes := apiRouter.Group("/auth")
		{
			authRoutes.GET("/session", handler.GetSession)
			authRoutes.POST("/login", middleware.CriticalRateLimit(), handler.Login)
			authRoutes.POST("/register", middleware.CriticalRateLimit(), handler.Register)
			authRoutes.POST("/refresh", middleware.CriticalRateLimit(), handler.RefreshToken)
			authRoutes.POST("/logout", handler.Logout)
		}

		// Every protected route re-runs the session guard; nothing is
		// cached across requests.
		caseRoutes := apiRouter.Group("/cases")
		caseRoutes.Use(middleware.UserAuth())
		{
			caseRoutes.GET("", handler.GetCases)
			caseRoutes.GET("/stats", handler.GetCaseStats)
			caseRoutes.GET("/:id", handler.GetCase)
			caseRoutes.POST("", middleware.CriticalRateLimit(), handler.CreateCase)
		}

		contactRoutes := apiRouter.Group("/contact")
		contactRoutes.Use(middleware.UserAuth())
		{
			contactRoutes.POST("", middleware.CriticalRateLimit(), handler.SubmitContact)
		}

		optionRoutes := apiRouter.Group("/option")
		optionRoutes.Use(middleware.RootAuth())
		{
			optionRoutes.GET("", handler.GetOptions)
			optionRoutes.PUT("", handler.UpdateOption)
		}
	}
}
