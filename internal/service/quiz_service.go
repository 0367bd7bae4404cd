package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
	"github.com/yourusername/trivia-questions/internal/domain/repository"
)

// RandomSource - источник случайных индексов для выбора вопроса.
// *rand.Rand удовлетворяет интерфейсу.
type RandomSource interface {
	// Intn возвращает равномерно распределённое число из [0, n)
	Intn(n int) int
}

// NewTimeSeededSource создает источник, инициализированный текущим временем
func NewTimeSeededSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// QuizService выбирает случайный ещё не заданный вопрос викторины
type QuizService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	maxQuestions int
	logger       *zap.Logger

	// *rand.Rand не безопасен для конкурентного использования
	mu  sync.Mutex
	rng RandomSource
}

// NewQuizService создает новый сервис викторины.
// rng == nil означает источник, инициализированный временем; maxQuestions == 0 снимает ограничение длины раунда.
func NewQuizService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	rng RandomSource,
	maxQuestions int,
	logger *zap.Logger,
) *QuizService {
	if rng == nil {
		rng = NewTimeSeededSource()
	}
	if maxQuestions < 0 {
		maxQuestions = 0
	}
	return &QuizService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		maxQuestions: maxQuestions,
		logger:       logger.Named("quiz_service"),
		rng:          rng,
	}
}

// NextQuestion возвращает случайный вопрос из области викторины, не входящий в PreviousQuestions.
// Когда таких вопросов нет, возвращается результат с Exhausted = true (это не ошибка).
// Несуществующая категория даёт apperrors.ErrNotFound.
func (s *QuizService) NextQuestion(ctx context.Context, req entity.QuizRequest) (*entity.QuizResult, error) {
	var categoryID *uint
	if !req.AllCategories() {
		id := *req.CategoryID
		if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
			return nil, fmt.Errorf("quiz category %d: %w", id, err)
		}
		categoryID = &id
	}

	excludeIDs := req.ExcludeIDs()
	if s.maxQuestions > 0 && len(excludeIDs) >= s.maxQuestions {
		s.logger.Debug("round limit reached", zap.Int("asked", len(excludeIDs)), zap.Int("max_questions", s.maxQuestions))
		return entity.ExhaustedQuizResult(), nil
	}

	candidates, err := s.questionRepo.ListCandidates(ctx, categoryID, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz candidates: %w", err)
	}

	if len(candidates) == 0 {
		s.logger.Debug("quiz exhausted", zap.Int("asked", len(excludeIDs)))
		return entity.ExhaustedQuizResult(), nil
	}

	question := candidates[s.pick(len(candidates))]
	return &entity.QuizResult{Question: &question}, nil
}

// pick возвращает случайный индекс из [0, n)
func (s *QuizService) pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
