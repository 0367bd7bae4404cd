package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
	"github.com/yourusername/trivia-questions/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-questions/internal/pkg/errors"
)

// QuestionRules - ограничения на создаваемые вопросы
type QuestionRules struct {
	MinDifficulty int
	MaxDifficulty int
}

// DefaultQuestionRules возвращает шкалу сложности 1..5
func DefaultQuestionRules() QuestionRules {
	return QuestionRules{
		MinDifficulty: entity.DefaultMinDifficulty,
		MaxDifficulty: entity.DefaultMaxDifficulty,
	}
}

// QuestionService предоставляет методы для работы с вопросами
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	paginator    *Paginator
	rules        QuestionRules
	logger       *zap.Logger
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	paginator *Paginator,
	rules QuestionRules,
	logger *zap.Logger,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		paginator:    paginator,
		rules:        rules,
		logger:       logger.Named("question_service"),
	}
}

// ListQuestions возвращает страницу всех вопросов, общее количество и карту категорий
func (s *QuestionService) ListQuestions(ctx context.Context, page int) (*entity.QuestionPage, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	result := s.page(questions, page)
	result.Categories = entity.NewCategoryMap(categories)
	return result, nil
}

// SearchQuestions возвращает страницу вопросов, содержащих term (без учёта регистра).
// Пустой term является подстрокой любого текста и возвращает все вопросы.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string, page int) (*entity.QuestionPage, error) {
	term = strings.TrimSpace(term)

	questions, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}

	s.logger.Debug("search", zap.String("term", term), zap.Int("matches", len(questions)))
	return s.page(questions, page), nil
}

// QuestionsByCategory возвращает все вопросы категории и её имя.
// Несуществующая категория и категория без вопросов дают apperrors.ErrNotFound.
func (s *QuestionService) QuestionsByCategory(ctx context.Context, categoryID uint) (*entity.CategoryQuestions, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, err)
	}

	questions, err := s.questionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions of category %d: %w", categoryID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("category %d has no questions: %w", categoryID, apperrors.ErrNotFound)
	}

	return &entity.CategoryQuestions{
		Questions:       questions,
		CurrentCategory: category.Type,
	}, nil
}

// GetQuestion возвращает вопрос по ID
func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", id, err)
	}
	return question, nil
}

// DeleteQuestion удаляет вопрос и возвращает оставшееся количество вопросов.
// Отсутствующий вопрос - apperrors.ErrNotFound, сбой удаления - apperrors.ErrUnprocessable.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) (int64, error) {
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		return 0, fmt.Errorf("question %d: %w", id, err)
	}

	affected, err := s.questionRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete question", zap.Uint("question_id", id), zap.Error(err))
		return 0, fmt.Errorf("%w: failed to delete question %d: %w", apperrors.ErrUnprocessable, id, err)
	}
	// Вопрос удалён параллельным запросом между проверкой и удалением
	if affected == 0 {
		return 0, fmt.Errorf("question %d: %w", id, apperrors.ErrNotFound)
	}

	total, err := s.questionRepo.Count(ctx, repository.QuestionFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}

	s.logger.Info("question deleted", zap.Uint("question_id", id), zap.Int64("total", total))
	return total, nil
}

// CreateQuestion проверяет и сохраняет новый вопрос, возвращая его ID и обновлённую страницу списка.
// Любая ошибка проверки или сохранения - apperrors.ErrUnprocessable; хранилище при этом не меняется.
func (s *QuestionService) CreateQuestion(ctx context.Context, input entity.QuestionInput, page int) (*entity.CreatedQuestion, error) {
	question, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(ctx, *question.Category); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrUnprocessable, *question.Category)
		}
		return nil, fmt.Errorf("failed to check category %d: %w", *question.Category, err)
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		s.logger.Error("failed to create question", zap.Error(err))
		if errors.Is(err, apperrors.ErrUnprocessable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to create question: %w", apperrors.ErrUnprocessable, err)
	}

	s.logger.Info("question created",
		zap.Uint("question_id", question.ID),
		zap.Uint("category", *question.Category),
		zap.Int("difficulty", question.Difficulty),
	)

	listing, err := s.ListQuestions(ctx, page)
	if err != nil {
		return nil, err
	}

	return &entity.CreatedQuestion{ID: question.ID, Listing: listing}, nil
}

// validate проверяет наличие и корректность всех полей нового вопроса
func (s *QuestionService) validate(input entity.QuestionInput) (*entity.Question, error) {
	if input.Question == nil || strings.TrimSpace(*input.Question) == "" {
		return nil, fmt.Errorf("%w: question text is required", apperrors.ErrUnprocessable)
	}
	if input.Answer == nil || strings.TrimSpace(*input.Answer) == "" {
		return nil, fmt.Errorf("%w: answer is required", apperrors.ErrUnprocessable)
	}
	if input.Category == nil {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrUnprocessable)
	}
	if input.Difficulty == nil {
		return nil, fmt.Errorf("%w: difficulty is required", apperrors.ErrUnprocessable)
	}
	if *input.Difficulty < s.rules.MinDifficulty || *input.Difficulty > s.rules.MaxDifficulty {
		return nil, fmt.Errorf("%w: difficulty must be between %d and %d, got %d",
			apperrors.ErrUnprocessable, s.rules.MinDifficulty, s.rules.MaxDifficulty, *input.Difficulty)
	}

	category := *input.Category
	return &entity.Question{
		Question:   strings.TrimSpace(*input.Question),
		Answer:     strings.TrimSpace(*input.Answer),
		Category:   &category,
		Difficulty: *input.Difficulty,
	}, nil
}

// ExportQuestions возвращает все вопросы по возрастанию ID и карту категорий для выгрузки
func (s *QuestionService) ExportQuestions(ctx context.Context) ([]entity.Question, entity.CategoryMap, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list questions: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return questions, entity.NewCategoryMap(categories), nil
}

// page нарезает выборку и заполняет метаданные страницы
func (s *QuestionService) page(questions []entity.Question, page int) *entity.QuestionPage {
	page = NormalizePage(page)
	return &entity.QuestionPage{
		Questions: Paginate(questions, page, s.paginator.PageSize()),
		Total:     int64(len(questions)),
		Page:      page,
		PerPage:   s.paginator.PageSize(),
	}
}
