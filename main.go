package main

import (
	"log"
	"os"
	"strings"

	"fairwayBook/models"
	"fairwayBook/scheduler"
	"fairwayBook/services/settleService"
	"fairwayBook/services/statService"
	"fairwayBook/services/webService"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file")
	}

	setupLogging()

	connString := os.Getenv("MYSQL_URL")
	if connString == "" {
		log.Fatalf("MYSQL_URL not set in environment variables")
	}

	db, err = gorm.Open(mysql.Open(connString+"?charset=utf8mb4&parseTime=True&loc=Local"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Tournament{},
		&models.Matchup{},
		&models.Pick{},
		&models.Parlay{},
		&models.SettlementRecord{},
		&models.ErrorLog{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if os.Getenv("ENV") == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func main() {
	if os.Getenv("GOLF_FEED_TOKEN") == "" {
		log.Fatalf("GOLF_FEED_TOKEN not set in environment variables")
	}

	repo := settleService.NewRepository(db)
	statOrch := statService.NewStatOrch(os.Getenv("GOLF_FEED_URL"))
	parlays := settleService.NewParlayService(repo)

	var cache *statService.StatCache
	var orch *settleService.SettleOrch
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		cache = statService.NewStatCache(redis.NewClient(opts))
		orch = settleService.NewSettleOrch(db, repo, statOrch, parlays, cache)
	} else {
		orch = settleService.NewSettleOrch(db, repo, statOrch, parlays, nil)
	}

	scheduler.SetupCron(db, orch)

	router := webService.NewRouter(webService.NewAdminOrch(orch, cache))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("Settlement service running")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error running server: %v", err)
	}
}
