package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"kitchen-api/config"
	"kitchen-api/controllers"
	"kitchen-api/routes"
	"kitchen-api/seeders"
	"kitchen-api/utils/dates"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	logger.Info("database connected")

	registerValidators()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	ctl := controllers.New(db, logger, cfg.JWTSecret, cfg.Location)
	routes.RegisterRoutes(r, ctl, cfg.JWTSecret)

	if cfg.Seed {
		seeders.Seed(db, logger, cfg.Location)
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return logger
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dates.Layout, fl.Field().String())
			return err == nil
		})
	}
}
