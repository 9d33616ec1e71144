package route

import (
	"net/http"
	"strings"

	"evidentia/backend/api/middleware"
	"evidentia/backend/common"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

const webRoot = "web/dist"

// setWebRouter serves the built SPA and the public blob files. Unknown
// non-API paths fall through to index.html so the client routes (/login,
// /dashboard, /upload, ...) work on a hard refresh.
func setWebRouter(route *gin.Engine) {
	route.Use(middleware.GlobalWebRateLimit())
	route.Use(static.Serve("/", static.LocalFile(webRoot, false)))
	route.Use(static.Serve("/files", static.LocalFile(common.UploadPath, false)))
	route.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			common.RespErrorStr(c, http.StatusNotFound, "API route not found")
			return
		}
		c.File(webRoot + "/index.html")
	})
}
