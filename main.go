package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/condovia/reservation/config"
	"github.com/condovia/reservation/config/db"
	redisconf "github.com/condovia/reservation/config/redis"
	"github.com/condovia/reservation/logger"
	"github.com/condovia/reservation/middlewares/cors"
	"github.com/condovia/reservation/routes"
)

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	db.Connect()
	defer db.Close()
	defer redisconf.CloseRedis()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8086"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())

	routes.RegisterReservationRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	logger.InfoLogger.Infof("Reservation service listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.ErrorLogger.Errorf("Server exited: %v", err)
		os.Exit(1)
	}
}
