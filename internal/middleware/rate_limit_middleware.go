package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/handler/dto"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests - максимальное количество запросов за Window
	MaxRequests int
	// Window - временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix - префикс для ключей в Redis
	KeyPrefix string
}

// DefaultWriteRateLimitConfig возвращает конфигурацию по умолчанию для изменяющих запросов
func DefaultWriteRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 30,              // 30 запросов
		Window:      1 * time.Minute, // за 1 минуту
		KeyPrefix:   "rl:write",
	}
}

// RateLimiter создаёт middleware для rate limiting на основе Redis
type RateLimiter struct {
	redisClient redis.UniversalClient
	logger      *zap.Logger
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(redisClient redis.UniversalClient, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		logger:      logger.Named("rate_limiter"),
	}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из IP + метод + маршрут, поэтому /questions и /api/questions считаются отдельно.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		path := c.FullPath() // шаблон маршрута Gin, например "/questions/:id"
		if path == "" {
			path = c.Request.URL.Path
		}

		key := fmt.Sprintf("%s:%s:%s:%s", cfg.KeyPrefix, clientIP, c.Request.Method, path)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Инкрементируем счётчик
		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			// При ошибке Redis пропускаем запрос (fail-open), но логируем
			rl.logger.Warn("redis error, allowing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		// Если это первый запрос в окне - устанавливаем TTL
		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
				rl.logger.Warn("failed to set TTL", zap.String("key", key), zap.Error(err))
			}
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		ttl, _ := rl.redisClient.TTL(ctx, key).Result()
		retryAfter := int(ttl.Seconds())
		if retryAfter < 0 {
			retryAfter = int(cfg.Window.Seconds())
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

		// Проверяем лимит
		if int(count) > cfg.MaxRequests {
			rl.logger.Info("rate limit exceeded",
				zap.String("ip", clientIP),
				zap.String("path", path),
				zap.Int64("count", count),
				zap.Int("limit", cfg.MaxRequests),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(http.StatusTooManyRequests))
			return
		}

		c.Next()
	}
}
