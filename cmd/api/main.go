package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yourusername/trivia-questions/internal/config"
	"github.com/yourusername/trivia-questions/internal/domain/repository"
	"github.com/yourusername/trivia-questions/internal/handler"
	"github.com/yourusername/trivia-questions/internal/logger"
	"github.com/yourusername/trivia-questions/internal/middleware"
	"github.com/yourusername/trivia-questions/internal/repository/memory"
	pgRepo "github.com/yourusername/trivia-questions/internal/repository/postgres"
	"github.com/yourusername/trivia-questions/internal/service"
	"github.com/yourusername/trivia-questions/pkg/database"
)

func main() {
	// .env необязателен: в Docker переменные приходят из окружения
	_ = godotenv.Load()

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		zap.NewExample().Fatal("Failed to load config", zap.String("path", configPath), zap.Error(err))
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		zap.NewExample().Fatal("Failed to init logger", zap.Error(err))
	}
	defer log.Sync()

	gin.SetMode(cfg.Server.Mode)
	log.Info("Configuration loaded",
		zap.String("path", configPath),
		zap.String("env", cfg.Env),
		zap.String("driver", cfg.Database.Driver),
	)

	// Создаем контекст с отменой для корректного завершения работы
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем хранилище
	questionRepo, categoryRepo, db := initStore(cfg, log)
	if db != nil {
		defer func() {
			if err := database.Close(db); err != nil {
				log.Warn("Error closing database", zap.Error(err))
			}
		}()
	}

	// Redis нужен только для rate limiting
	var writeLimit gin.HandlerFunc
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer closeRedis(redisClient, log)
		log.Info("Successfully connected to Redis", zap.String("mode", cfg.Redis.Mode))

		if cfg.RateLimit.Enabled {
			limitCfg := middleware.DefaultWriteRateLimitConfig()
			limitCfg.MaxRequests = cfg.RateLimit.MaxRequests
			limitCfg.Window = cfg.RateLimit.Window
			writeLimit = middleware.NewRateLimiter(redisClient, log).Limit(limitCfg)
		}
	}

	// Инициализируем сервисы
	paginator := service.NewPaginator(cfg.Pagination.QuestionsPerPage)
	rules := service.QuestionRules{
		MinDifficulty: cfg.Quiz.MinDifficulty,
		MaxDifficulty: cfg.Quiz.MaxDifficulty,
	}
	categoryService := service.NewCategoryService(categoryRepo, log)
	questionService := service.NewQuestionService(questionRepo, categoryRepo, paginator, rules, log)
	quizService := service.NewQuizService(questionRepo, categoryRepo, nil, cfg.Quiz.MaxQuestions, log)

	// Инициализируем обработчики и роутер
	handlers := handler.Handlers{
		Category: handler.NewCategoryHandler(categoryService, questionService, log),
		Question: handler.NewQuestionHandler(questionService, log),
		Quiz:     handler.NewQuizHandler(quizService, log),
	}

	// Production: не доверять прокси-заголовкам. Development: доверяем localhost
	var trustedProxies []string
	if !cfg.IsProduction() {
		trustedProxies = []string{"127.0.0.1", "::1"}
	}

	router := handler.NewRouter(handlers, handler.RouterOptions{
		Logger:         log,
		AllowOrigins:   cfg.CORS.AllowOrigins,
		WriteLimit:     writeLimit,
		TrustedProxies: trustedProxies,
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Failed to start server", zap.Error(err))
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited properly")
}

// initStore выбирает хранилище по database.driver.
// Для postgres подключается к БД и применяет миграции; для memory создает хранилище с категориями по умолчанию.
func initStore(cfg *config.Config, log *zap.Logger) (repository.QuestionRepository, repository.CategoryRepository, *gorm.DB) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory store, data will be lost on restart")
		store := memory.NewSeededStore()
		return store.Questions(), store.Categories(), nil
	}

	db, err := database.NewPostgresDB(cfg.Database, !cfg.IsProduction())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.MigrateDB(db, cfg.Database.MigrationsPath, log); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	return pgRepo.NewQuestionRepo(db), pgRepo.NewCategoryRepo(db), db
}

func closeRedis(client redis.UniversalClient, log *zap.Logger) {
	if err := client.Close(); err != nil {
		log.Warn("Error closing Redis client", zap.Error(err))
	}
}
