package route

import (
	"evidentia/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetRouter(route *gin.Engine) {
	route.Use(middleware.GzipDecodeMiddleware())
	route.Use(middleware.GzipEncodeMiddleware())

	SetApiRouter(route)
	setWebRouter(route)
}
