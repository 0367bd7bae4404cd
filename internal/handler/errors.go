package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/handler/dto"
	apperrors "github.com/yourusername/trivia-questions/internal/pkg/errors"
)

// abortWithError отвечает конвертом ошибки и прерывает цепочку обработчиков
func abortWithError(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(status))
}

// handleError сопоставляет ошибку сервиса с HTTP статусом.
// Неизвестные ошибки логируются и отдаются как 500 без деталей.
func handleError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		abortWithError(c, http.StatusNotFound)
	case errors.Is(err, apperrors.ErrUnprocessable):
		logger.Debug("unprocessable request", zap.String("path", c.FullPath()), zap.Error(err))
		abortWithError(c, http.StatusUnprocessableEntity)
	default:
		logger.Error("internal server error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		abortWithError(c, http.StatusInternalServerError)
	}
}

// bindStatus определяет статус для ошибки разбора тела запроса:
// значения неверного типа - 422, отсутствующее или синтаксически неверное тело - 400
func bindStatus(err error) int {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) || errors.Is(err, dto.ErrInvalidID) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
