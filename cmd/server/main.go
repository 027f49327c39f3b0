package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/conjugo/quiz-service/internal/auth"
	"github.com/conjugo/quiz-service/internal/cache"
	"github.com/conjugo/quiz-service/internal/config"
	"github.com/conjugo/quiz-service/internal/content"
	"github.com/conjugo/quiz-service/internal/events"
	"github.com/conjugo/quiz-service/internal/handlers"
	"github.com/conjugo/quiz-service/internal/repositories"
	"github.com/conjugo/quiz-service/internal/repositories/csvfile"
	"github.com/conjugo/quiz-service/internal/repositories/memory"
	"github.com/conjugo/quiz-service/internal/repositories/postgres"
	"github.com/conjugo/quiz-service/internal/services"
	"github.com/conjugo/quiz-service/internal/utils"
	"github.com/conjugo/quiz-service/internal/validator"
	"github.com/conjugo/quiz-service/pkg"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	store, err := content.LoadFile(cfg.QuizzesPath)
	if err != nil {
		return fmt.Errorf("failed to load quiz content: %w", err)
	}
	logger.Info("Quiz content loaded", "path", cfg.QuizzesPath, "weeks", len(store.ListWeeks()))

	resultLog, err := newResultLog(cfg)
	if err != nil {
		return err
	}
	logger.Info("Result log ready", "backend", cfg.ResultBackend)

	sessionCache, err := newSessionCache(cfg, logger)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	v := validator.New()
	grader := services.NewGraderService(cfg.PassThreshold)
	stats := services.NewStatsService(resultLog, logger)
	export := services.NewExportService(resultLog, stats, logger)
	submissions := services.NewSubmissionService(store, resultLog, grader, publisher, logger, v)
	sessions := auth.NewSessionService(sessionCache, cfg.TeacherPassword)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	hm := handlers.NewHandlerManager(store, submissions, stats, export, sessions, logger)
	hm.SetupRoutes(router)

	logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
	return router.Run(":" + cfg.Port)
}

func newResultLog(cfg *config.Config) (repositories.ResultLog, error) {
	switch cfg.ResultBackend {
	case "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return postgres.NewSubmissionPostgreSQL(db), nil
	case "csv":
		return csvfile.NewCSVLog(cfg.ResultsPath), nil
	case "memory":
		return memory.NewMemoryLog(), nil
	default:
		return nil, fmt.Errorf("unknown result backend %q", cfg.ResultBackend)
	}
}

func newSessionCache(cfg *config.Config, logger utils.Logger) (cache.CacheService, error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, sessions are kept in process memory")
		return cache.NewMemoryCache(), nil
	}
	client, err := pkg.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return cache.NewRedisCache(client, logger), nil
}

func newPublisher(cfg *config.Config, logger utils.Logger) (events.EventPublisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, graded events are not published")
		return events.NewMockEventPublisher(utils.ToSlogLogger(logger)), nil
	}
	return events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.KafkaBrokers,
		TopicName:    cfg.KafkaTopic,
		Logger:       utils.ToSlogLogger(logger),
	})
}
