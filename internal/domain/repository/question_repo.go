package repository

import (
	"context"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
)

// QuestionFilter определяет фильтры для подсчёта вопросов
type QuestionFilter struct {
	CategoryID *uint // Только вопросы категории
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	// List возвращает все вопросы, упорядоченные по ID
	List(ctx context.Context) ([]entity.Question, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error)
	// Search возвращает вопросы, текст которых содержит term без учёта регистра, по ID
	Search(ctx context.Context, term string) ([]entity.Question, error)
	Count(ctx context.Context, filter QuestionFilter) (int64, error)
	Create(ctx context.Context, question *entity.Question) error
	// Delete удаляет вопрос и возвращает количество удалённых строк
	Delete(ctx context.Context, id uint) (int64, error)

	// ListCandidates возвращает вопросы категории (или всех категорий при categoryID == nil),
	// ID которых не входят в excludeIDs, упорядоченные по ID
	ListCandidates(ctx context.Context, categoryID *uint, excludeIDs []uint) ([]entity.Question, error)
}
