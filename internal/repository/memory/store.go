// Package memory содержит хранилище вопросов и категорий в памяти процесса.
// Используется при database.driver=memory (локальный запуск без Postgres) и в тестах.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
	"github.com/yourusername/trivia-questions/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-questions/internal/pkg/errors"
)

// Store хранит вопросы и категории. Безопасен для конкурентного использования.
type Store struct {
	mu             sync.RWMutex
	questions      map[uint]entity.Question
	categories     map[uint]entity.Category
	nextQuestionID uint
	nextCategoryID uint
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		questions:      make(map[uint]entity.Question),
		categories:     make(map[uint]entity.Category),
		nextQuestionID: 1,
		nextCategoryID: 1,
	}
}

// AddCategory добавляет категорию и возвращает её с присвоенным ID
func (s *Store) AddCategory(name string) entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := entity.Category{ID: s.nextCategoryID, Type: name}
	s.categories[c.ID] = c
	s.nextCategoryID++
	return c
}

// Questions возвращает репозиторий вопросов поверх хранилища
func (s *Store) Questions() *QuestionRepo {
	return &QuestionRepo{store: s}
}

// Categories возвращает репозиторий категорий поверх хранилища
func (s *Store) Categories() *CategoryRepo {
	return &CategoryRepo{store: s}
}

// sortedQuestions возвращает вопросы, удовлетворяющие match, по возрастанию ID.
// Вызывающий должен удерживать s.mu.
func (s *Store) sortedQuestions(match func(q *entity.Question) bool) []entity.Question {
	out := make([]entity.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if match(&q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// QuestionRepo реализует repository.QuestionRepository в памяти
type QuestionRepo struct {
	store *Store
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q, ok := r.store.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &q, nil
}

// List возвращает все вопросы по возрастанию ID
func (r *QuestionRepo) List(ctx context.Context) ([]entity.Question, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.sortedQuestions(func(*entity.Question) bool { return true }), nil
}

// ListByCategory возвращает вопросы категории по возрастанию ID
func (r *QuestionRepo) ListByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.sortedQuestions(func(q *entity.Question) bool { return q.InCategory(categoryID) }), nil
}

// Search возвращает вопросы, содержащие term без учёта регистра
func (r *QuestionRepo) Search(ctx context.Context, term string) ([]entity.Question, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.sortedQuestions(func(q *entity.Question) bool { return q.ContainsText(term) }), nil
}

// Count возвращает количество вопросов с учётом фильтра
func (r *QuestionRepo) Count(ctx context.Context, filter repository.QuestionFilter) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, q := range r.store.questions {
		if filter.CategoryID != nil && !q.InCategory(*filter.CategoryID) {
			continue
		}
		count++
	}
	return count, nil
}

// Create сохраняет вопрос и присваивает ему ID.
// Ссылка на несуществующую категорию отклоняется, как внешний ключ в Postgres.
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if question.Category != nil {
		if _, ok := r.store.categories[*question.Category]; !ok {
			return fmt.Errorf("%w: category %d does not exist", apperrors.ErrUnprocessable, *question.Category)
		}
	}

	question.ID = r.store.nextQuestionID
	r.store.nextQuestionID++
	r.store.questions[question.ID] = *question
	return nil
}

// Delete удаляет вопрос и возвращает количество удалённых записей
func (r *QuestionRepo) Delete(ctx context.Context, id uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.questions[id]; !ok {
		return 0, nil
	}
	delete(r.store.questions, id)
	return 1, nil
}

// ListCandidates возвращает вопросы в области выбора, за исключением excludeIDs
func (r *QuestionRepo) ListCandidates(ctx context.Context, categoryID *uint, excludeIDs []uint) ([]entity.Question, error) {
	excluded := make(map[uint]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.sortedQuestions(func(q *entity.Question) bool {
		if categoryID != nil && !q.InCategory(*categoryID) {
			return false
		}
		_, skip := excluded[q.ID]
		return !skip
	}), nil
}

// CategoryRepo реализует repository.CategoryRepository в памяти
type CategoryRepo struct {
	store *Store
}

// List возвращает все категории по возрастанию ID
func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]entity.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.categories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}
