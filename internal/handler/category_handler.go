package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/handler/dto"
	"github.com/yourusername/trivia-questions/internal/service"
)

// CategoryHandler обрабатывает запросы, связанные с категориями
type CategoryHandler struct {
	categoryService *service.CategoryService
	questionService *service.QuestionService
	logger          *zap.Logger
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(
	categoryService *service.CategoryService,
	questionService *service.QuestionService,
	logger *zap.Logger,
) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		questionService: questionService,
		logger:          logger.Named("category_handler"),
	}
}

// ListCategories возвращает все категории
// GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoriesResponse(categories))
}

// GetCategory возвращает одну категорию
// GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID := c.MustGet(categoryIDKey).(uint)

	category, err := h.categoryService.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryDetailResponse(category))
}

// GetCategoryQuestions возвращает все вопросы категории
// GET /categories/:id/questions
func (h *CategoryHandler) GetCategoryQuestions(c *gin.Context) {
	categoryID := c.MustGet(categoryIDKey).(uint)

	result, err := h.questionService.QuestionsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryQuestionsResponse(result))
}
