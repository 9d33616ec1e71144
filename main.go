package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"evidentia/backend/api/handler"
	"evidentia/backend/api/middleware"
	"evidentia/backend/api/route"
	"evidentia/backend/common"
	"evidentia/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog(common.SystemName + " " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := common.InitConfig(); err != nil {
		common.FatalLog(err)
	}

	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}

	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.FatalLog(err)
		}
	}()

	handler.InitServices()

	server := gin.Default()
	server.Use(middleware.CORS())

	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		store, _ := redis.NewStore(opt.MinIdleConns, opt.Network, opt.Addr, opt.Password, []byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	}

	route.SetRouter(server)

	port := strconv.Itoa(*common.Port)
	common.SysLog("server listening on port: " + port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}
