package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/handler/dto"
	"github.com/yourusername/trivia-questions/internal/service"
)

// QuizHandler обрабатывает шаги викторины
type QuizHandler struct {
	quizService *service.QuizService
	logger      *zap.Logger
}

// NewQuizHandler создает новый обработчик викторины
func NewQuizHandler(quizService *service.QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		logger:      logger.Named("quiz_handler"),
	}
}

// NextQuestion возвращает случайный ещё не показанный вопрос
// POST /quizzes
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	var req dto.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid quiz request", zap.Error(err))
		abortWithError(c, bindStatus(err))
		return
	}

	result, err := h.quizService.NextQuestion(c.Request.Context(), req.ToEntity())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(result))
}
