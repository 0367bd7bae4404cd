package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/middleware"
)

// Ключи параметров пути в контексте Gin
const (
	questionIDKey = "questionID"
	categoryIDKey = "categoryID"
)

// Handlers - набор обработчиков API
type Handlers struct {
	Category *CategoryHandler
	Question *QuestionHandler
	Quiz     *QuizHandler
}

// RouterOptions - настройки роутера
type RouterOptions struct {
	Logger *zap.Logger
	// AllowOrigins - разрешённые источники CORS; "*" разрешает все
	AllowOrigins []string
	// WriteLimit ограничивает изменяющие запросы (nil - без ограничения)
	WriteLimit gin.HandlerFunc
	// TrustedProxies передаются в gin.Engine.SetTrustedProxies
	TrustedProxies []string
}

// NewRouter создает gin.Engine со всеми маршрутами API.
// Маршруты доступны как от корня, так и под префиксом /api.
func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		logger.Warn("failed to set trusted proxies", zap.Error(err))
	}

	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			abortWithError(c, http.StatusInternalServerError)
		}),
		cors.New(corsConfig(opts.AllowOrigins)),
	)

	router.NoRoute(func(c *gin.Context) { abortWithError(c, http.StatusNotFound) })
	router.NoMethod(func(c *gin.Context) { abortWithError(c, http.StatusMethodNotAllowed) })

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerRoutes(&router.RouterGroup, h, opts.WriteLimit)
	registerRoutes(router.Group("/api"), h, opts.WriteLimit)

	return router
}

// registerRoutes регистрирует маршруты API в группе
func registerRoutes(rg *gin.RouterGroup, h Handlers, writeLimit gin.HandlerFunc) {
	withWriteLimit := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		if writeLimit == nil {
			return handlers
		}
		return append([]gin.HandlerFunc{writeLimit}, handlers...)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.Category.ListCategories)
		categoryWithID := categories.Group("/:id", middleware.ExtractUintParam("id", categoryIDKey))
		{
			categoryWithID.GET("", h.Category.GetCategory)
			categoryWithID.GET("/questions", h.Category.GetCategoryQuestions)
		}
	}

	questions := rg.Group("/questions")
	{
		questions.GET("", h.Question.ListQuestions)
		questions.POST("", withWriteLimit(h.Question.CreateOrSearchQuestions)...)
		questions.POST("/search", h.Question.SearchQuestions)
		questions.GET("/export", h.Question.ExportQuestions)

		questionWithID := questions.Group("/:id", middleware.ExtractUintParam("id", questionIDKey))
		{
			questionWithID.GET("", h.Question.GetQuestion)
			questionWithID.DELETE("", withWriteLimit(h.Question.DeleteQuestion)...)
		}
	}

	rg.POST("/quizzes", h.Quiz.NextQuestion)
}

// corsConfig формирует настройки CORS
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
