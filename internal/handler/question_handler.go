package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/handler/dto"
	"github.com/yourusername/trivia-questions/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
	logger          *zap.Logger
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger.Named("question_handler"),
	}
}

// ListQuestions возвращает страницу вопросов вместе с категориями
// GET /questions?page=N
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page := service.ParsePage(c.Query("page"))

	result, err := h.questionService.ListQuestions(c.Request.Context(), page)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	// Пустая первая страница - это пустая база, а не ошибка
	if result.IsEmpty() && result.Page > 1 {
		abortWithError(c, http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuestionsResponse(result))
}

// GetQuestion возвращает вопрос по ID
// GET /questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet(questionIDKey).(uint)

	question, err := h.questionService.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuestionDetailResponse{
		Success:  true,
		Question: dto.NewQuestionResponse(question),
	})
}

// CreateOrSearchQuestions создает вопрос или, если в теле есть searchTerm, выполняет поиск
// POST /questions
func (h *QuestionHandler) CreateOrSearchQuestions(c *gin.Context) {
	var req dto.QuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid questions request", zap.Error(err))
		abortWithError(c, bindStatus(err))
		return
	}

	page := service.ParsePage(c.Query("page"))

	if req.IsSearch() {
		h.search(c, *req.SearchTerm, page)
		return
	}

	created, err := h.questionService.CreateQuestion(c.Request.Context(), req.ToInput(), page)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCreatedQuestionResponse(created))
}

// SearchQuestions ищет вопросы по подстроке
// POST /questions/search
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindStatus(err))
		return
	}

	h.search(c, req.SearchTerm, service.ParsePage(c.Query("page")))
}

func (h *QuestionHandler) search(c *gin.Context, term string, page int) {
	result, err := h.questionService.SearchQuestions(c.Request.Context(), term, page)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSearchQuestionsResponse(result))
}

// DeleteQuestion удаляет вопрос
// DELETE /questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet(questionIDKey).(uint)

	total, err := h.questionService.DeleteQuestion(c.Request.Context(), questionID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeletedQuestionResponse{
		Success:        true,
		Deleted:        questionID,
		TotalQuestions: total,
	})
}
