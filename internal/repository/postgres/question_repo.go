package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
	"github.com/yourusername/trivia-questions/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-questions/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// List возвращает все вопросы по возрастанию ID
func (r *QuestionRepo) List(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ListByCategory возвращает все вопросы категории по возрастанию ID
func (r *QuestionRepo) ListByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Where("category = ?", categoryID).Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Search возвращает вопросы, содержащие term как подстроку (ILIKE)
func (r *QuestionRepo) Search(ctx context.Context, term string) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Where("question ILIKE ?", likePattern(term)).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Count возвращает количество вопросов с учётом фильтра
func (r *QuestionRepo) Count(ctx context.Context, filter repository.QuestionFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Question{})
	if filter.CategoryID != nil {
		query = query.Where("category = ?", *filter.CategoryID)
	}
	err := query.Count(&count).Error
	return count, err
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: %v", apperrors.ErrUnprocessable, err)
		}
		return err
	}
	return nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, id)
	return result.RowsAffected, result.Error
}

// ListCandidates возвращает кандидатов для выбора вопроса викторины
func (r *QuestionRepo) ListCandidates(ctx context.Context, categoryID *uint, excludeIDs []uint) ([]entity.Question, error) {
	var questions []entity.Question

	query := r.db.WithContext(ctx)
	if categoryID != nil {
		query = query.Where("category = ?", *categoryID)
	}

	// Исключаем уже показанные вопросы
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	err := query.Order("id").Find(&questions).Error
	return questions, err
}

// likeEscaper экранирует спецсимволы LIKE, чтобы term искался буквально
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern формирует шаблон ILIKE для поиска подстроки
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
