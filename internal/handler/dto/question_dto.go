package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
)

// ErrInvalidID возвращается при разборе идентификатора, не являющегося неотрицательным целым
var ErrInvalidID = errors.New("invalid id")

// FlexibleID - идентификатор, который клиент может прислать числом или строкой с числом
// (форма фронтенда отправляет значение <select> как строку)
type FlexibleID uint

// UnmarshalJSON принимает 3 и "3"; отрицательные и дробные значения отклоняются
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidID, data, err)
	}
	*id = FlexibleID(v)
	return nil
}

// Ptr возвращает значение как *uint (nil для nil)
func (id *FlexibleID) Ptr() *uint {
	if id == nil {
		return nil
	}
	v := uint(*id)
	return &v
}

// QuestionsRequest - тело POST /questions.
// Наличие ключа searchTerm (даже пустого) переключает запрос в режим поиска.
type QuestionsRequest struct {
	SearchTerm *string     `json:"searchTerm"`
	Question   *string     `json:"question"`
	Answer     *string     `json:"answer"`
	Category   *FlexibleID `json:"category"`
	Difficulty *int        `json:"difficulty"`
}

// IsSearch сообщает, является ли запрос поиском
func (r *QuestionsRequest) IsSearch() bool {
	return r.SearchTerm != nil
}

// ToInput преобразует запрос в данные для создания вопроса
func (r *QuestionsRequest) ToInput() entity.QuestionInput {
	return entity.QuestionInput{
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   r.Category.Ptr(),
		Difficulty: r.Difficulty,
	}
}

// SearchRequest - тело POST /questions/search
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// QuestionResponse представляет вопрос в формате для ответа клиенту
type QuestionResponse struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   *uint  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// NewQuestionListResponse создает список DTO; пустой вход даёт [], а не null
func NewQuestionListResponse(questions []entity.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, NewQuestionResponse(&questions[i]))
	}
	return out
}

// ListQuestionsResponse - ответ GET /questions
type ListQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int64              `json:"totalQuestions"`
	Categories      entity.CategoryMap `json:"categories"`
	CurrentCategory *string            `json:"currentCategory"`
	Page            int                `json:"page"`
}

// NewListQuestionsResponse создает ответ для страницы списка
func NewListQuestionsResponse(page *entity.QuestionPage) ListQuestionsResponse {
	categories := page.Categories
	if categories == nil {
		categories = entity.CategoryMap{}
	}
	return ListQuestionsResponse{
		Success:        true,
		Questions:      NewQuestionListResponse(page.Questions),
		TotalQuestions: page.Total,
		Categories:     categories,
		Page:           page.Page,
	}
}

// SearchQuestionsResponse - ответ на поиск
type SearchQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int64              `json:"totalQuestions"`
	CurrentCategory *string            `json:"currentCategory"`
	Page            int                `json:"page"`
}

// NewSearchQuestionsResponse создает ответ для страницы поиска
func NewSearchQuestionsResponse(page *entity.QuestionPage) SearchQuestionsResponse {
	return SearchQuestionsResponse{
		Success:        true,
		Questions:      NewQuestionListResponse(page.Questions),
		TotalQuestions: page.Total,
		Page:           page.Page,
	}
}

// CreatedQuestionResponse - ответ на создание вопроса
type CreatedQuestionResponse struct {
	Success        bool               `json:"success"`
	Created        uint               `json:"created"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int64              `json:"totalQuestions"`
}

// NewCreatedQuestionResponse создает ответ на создание
func NewCreatedQuestionResponse(created *entity.CreatedQuestion) CreatedQuestionResponse {
	return CreatedQuestionResponse{
		Success:        true,
		Created:        created.ID,
		Questions:      NewQuestionListResponse(created.Listing.Questions),
		TotalQuestions: created.Listing.Total,
	}
}

// DeletedQuestionResponse - ответ на удаление вопроса
type DeletedQuestionResponse struct {
	Success        bool  `json:"success"`
	Deleted        uint  `json:"deleted"`
	TotalQuestions int64 `json:"totalQuestions"`
}

// QuestionDetailResponse - ответ GET /questions/:id
type QuestionDetailResponse struct {
	Success  bool             `json:"success"`
	Question QuestionResponse `json:"question"`
}

// CategoryQuestionsResponse - ответ GET /categories/:id/questions
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	CurrentCategory string             `json:"currentCategory"`
	TotalQuestions  int                `json:"totalQuestions"`
}

// NewCategoryQuestionsResponse создает ответ для вопросов категории
func NewCategoryQuestionsResponse(result *entity.CategoryQuestions) CategoryQuestionsResponse {
	return CategoryQuestionsResponse{
		Success:         true,
		Questions:       NewQuestionListResponse(result.Questions),
		CurrentCategory: result.CurrentCategory,
		TotalQuestions:  len(result.Questions),
	}
}
