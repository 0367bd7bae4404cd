package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
	"github.com/yourusername/trivia-questions/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-questions/internal/pkg/errors"
	"github.com/yourusername/trivia-questions/internal/repository/memory"
)

// newQuestionServiceWithStore создаёт сервис поверх хранилища в памяти с n вопросами.
// Вопросы распределяются по категориям 1 и 2 по очереди.
func newQuestionServiceWithStore(t *testing.T, n, pageSize int) (*QuestionService, *memory.Store) {
	t.Helper()
	store := memory.NewSeededStore()
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		q := &entity.Question{
			Question:   fmt.Sprintf("Question number %d?", i),
			Answer:     fmt.Sprintf("Answer %d", i),
			Category:   uintPtr(uint(1 + (i-1)%2)),
			Difficulty: 1 + (i-1)%5,
		}
		require.NoError(t, store.Questions().Create(ctx, q))
	}
	svc := NewQuestionService(store.Questions(), store.Categories(), NewPaginator(pageSize), DefaultQuestionRules(), testLogger())
	return svc, store
}

func validInput() entity.QuestionInput {
	return entity.QuestionInput{
		Question:   strPtr("What is the largest lake in Africa?"),
		Answer:     strPtr("Lake Victoria"),
		Category:   uintPtr(3),
		Difficulty: intPtr(2),
	}
}

// ============================================================================
// ListQuestions
// ============================================================================

func TestListQuestions_FirstPage(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 19, 10)

	page, err := svc.ListQuestions(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, page.Questions, 10)
	assert.Equal(t, int64(19), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PerPage)
	assert.Equal(t, uint(1), page.Questions[0].ID)
	assert.Len(t, page.Categories, len(memory.DefaultCategories))
	assert.Equal(t, "Science", page.Categories[1])
}

func TestListQuestions_PagesReconstructWholeSet(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 23, 5)
	ctx := context.Background()

	var ids []uint
	for p := 1; p <= 5; p++ {
		page, err := svc.ListQuestions(ctx, p)
		require.NoError(t, err)
		for _, q := range page.Questions {
			ids = append(ids, q.ID)
		}
	}

	require.Len(t, ids, 23)
	for i, id := range ids {
		assert.Equal(t, uint(i+1), id, "Порядок по ID без пропусков и повторов")
	}
}

func TestListQuestions_PageZeroIsFirstPage(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 12, 10)
	ctx := context.Background()

	first, err := svc.ListQuestions(ctx, 1)
	require.NoError(t, err)
	zero, err := svc.ListQuestions(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, first.Questions, zero.Questions)
	assert.Equal(t, 1, zero.Page)
}

func TestListQuestions_BeyondRangeIsEmpty(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 19, 10)

	page, err := svc.ListQuestions(context.Background(), 1000)

	require.NoError(t, err)
	assert.True(t, page.IsEmpty())
	assert.Equal(t, int64(19), page.Total)
}

func TestListQuestions_StoreFailure(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	questionRepo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewQuestionService(questionRepo, categoryRepo, NewPaginator(10), DefaultQuestionRules(), testLogger())
	_, err := svc.ListQuestions(context.Background(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrUnprocessable)
	categoryRepo.AssertNotCalled(t, "List", mock.Anything)
}

// ============================================================================
// SearchQuestions
// ============================================================================

func TestSearchQuestions(t *testing.T) {
	svc, store := newQuestionServiceWithStore(t, 0, 10)
	ctx := context.Background()
	for _, text := range []string{"What is the capital of France?", "Who painted the Mona Lisa?"} {
		require.NoError(t, store.Questions().Create(ctx, &entity.Question{Question: text, Answer: "x", Category: uintPtr(1), Difficulty: 1}))
	}

	tests := []struct {
		name     string
		term     string
		expected int
	}{
		{"точное совпадение подстроки", "capital", 1},
		{"без учёта регистра", "CAPITAL", 1},
		{"нет совпадений", "zzz", 0},
		{"общая подстрока", "the", 2},
		{"пустая строка возвращает всё", "", 2},
		{"пробелы обрезаются", "   ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.SearchQuestions(ctx, tt.term, 1)

			require.NoError(t, err)
			assert.Len(t, page.Questions, tt.expected)
			assert.Equal(t, int64(tt.expected), page.Total)
			assert.Nil(t, page.Categories)
		})
	}
}

func TestSearchQuestions_TotalCountsAllMatches(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 15, 10)

	page, err := svc.SearchQuestions(context.Background(), "question number", 2)

	require.NoError(t, err)
	assert.Len(t, page.Questions, 5)
	assert.Equal(t, int64(15), page.Total)
}

// ============================================================================
// QuestionsByCategory
// ============================================================================

func TestQuestionsByCategory(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 6, 10)

	result, err := svc.QuestionsByCategory(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "Art", result.CurrentCategory)
	require.Len(t, result.Questions, 3)
	for _, q := range result.Questions {
		assert.True(t, q.InCategory(2))
	}
	assert.Equal(t, uint(2), result.Questions[0].ID)
}

func TestQuestionsByCategory_UnknownCategory(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 6, 10)

	_, err := svc.QuestionsByCategory(context.Background(), 1000)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionsByCategory_EmptyCategory(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 6, 10)

	_, err := svc.QuestionsByCategory(context.Background(), 5)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionsByCategory_AfterDeletingOnlyQuestion(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 0, 10)
	ctx := context.Background()

	created, err := svc.CreateQuestion(ctx, validInput(), 1)
	require.NoError(t, err)

	_, err = svc.QuestionsByCategory(ctx, 3)
	require.NoError(t, err)

	_, err = svc.DeleteQuestion(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.QuestionsByCategory(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// GetQuestion / DeleteQuestion
// ============================================================================

func TestGetQuestion(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 3, 10)
	ctx := context.Background()

	q, err := svc.GetQuestion(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Answer 2", q.Answer)

	_, err = svc.GetQuestion(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteQuestion_ReturnsRemainingTotal(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 5, 10)

	total, err := svc.DeleteQuestion(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestDeleteQuestion_Nonexistent(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 5, 10)

	_, err := svc.DeleteQuestion(context.Background(), 500)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteQuestion_Twice(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 5, 10)
	ctx := context.Background()

	_, err := svc.DeleteQuestion(ctx, 1)
	require.NoError(t, err)

	_, err = svc.DeleteQuestion(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteQuestion_StoreFailureIsUnprocessable(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("GetByID", mock.Anything, uint(7)).Return(&entity.Question{ID: 7}, nil)
	questionRepo.On("Delete", mock.Anything, uint(7)).Return(int64(0), errors.New("deadlock detected"))

	svc := NewQuestionService(questionRepo, new(MockCategoryRepository), NewPaginator(10), DefaultQuestionRules(), testLogger())
	_, err := svc.DeleteQuestion(context.Background(), 7)

	assert.ErrorIs(t, err, apperrors.ErrUnprocessable)
	questionRepo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestDeleteQuestion_ConcurrentlyRemoved(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("GetByID", mock.Anything, uint(7)).Return(&entity.Question{ID: 7}, nil)
	questionRepo.On("Delete", mock.Anything, uint(7)).Return(int64(0), nil)

	svc := NewQuestionService(questionRepo, new(MockCategoryRepository), NewPaginator(10), DefaultQuestionRules(), testLogger())
	_, err := svc.DeleteQuestion(context.Background(), 7)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// CreateQuestion
// ============================================================================

func TestCreateQuestion_Success(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 4, 10)

	created, err := svc.CreateQuestion(context.Background(), validInput(), 1)

	require.NoError(t, err)
	assert.Equal(t, uint(5), created.ID)
	require.NotNil(t, created.Listing)
	assert.Equal(t, int64(5), created.Listing.Total)
	assert.Len(t, created.Listing.Questions, 5)
	assert.Equal(t, "Lake Victoria", created.Listing.Questions[4].Answer)
}

func TestCreateQuestion_TrimsText(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 0, 10)
	ctx := context.Background()
	input := validInput()
	input.Answer = strPtr("  Lake Victoria \n")

	created, err := svc.CreateQuestion(ctx, input, 1)
	require.NoError(t, err)

	q, err := svc.GetQuestion(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lake Victoria", q.Answer)
}

func TestCreateQuestion_ValidationLeavesStoreUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *entity.QuestionInput)
	}{
		{"нет ответа", func(in *entity.QuestionInput) { in.Answer = nil }},
		{"пустой ответ", func(in *entity.QuestionInput) { in.Answer = strPtr("   ") }},
		{"нет вопроса", func(in *entity.QuestionInput) { in.Question = nil }},
		{"пустой вопрос", func(in *entity.QuestionInput) { in.Question = strPtr("") }},
		{"нет категории", func(in *entity.QuestionInput) { in.Category = nil }},
		{"несуществующая категория", func(in *entity.QuestionInput) { in.Category = uintPtr(404) }},
		{"нет сложности", func(in *entity.QuestionInput) { in.Difficulty = nil }},
		{"сложность ниже диапазона", func(in *entity.QuestionInput) { in.Difficulty = intPtr(0) }},
		{"сложность выше диапазона", func(in *entity.QuestionInput) { in.Difficulty = intPtr(6) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newQuestionServiceWithStore(t, 3, 10)
			ctx := context.Background()
			input := validInput()
			tt.mutate(&input)

			_, err := svc.CreateQuestion(ctx, input, 1)

			assert.ErrorIs(t, err, apperrors.ErrUnprocessable)
			count, countErr := store.Questions().Count(ctx, repository.QuestionFilter{})
			require.NoError(t, countErr)
			assert.Equal(t, int64(3), count)
		})
	}
}

func TestCreateQuestion_CustomDifficultyRules(t *testing.T) {
	store := memory.NewSeededStore()
	svc := NewQuestionService(store.Questions(), store.Categories(), NewPaginator(10), QuestionRules{MinDifficulty: 1, MaxDifficulty: 10}, testLogger())
	input := validInput()
	input.Difficulty = intPtr(8)

	_, err := svc.CreateQuestion(context.Background(), input, 1)

	assert.NoError(t, err)
}

func TestCreateQuestion_StoreFailureIsUnprocessable(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("GetByID", mock.Anything, uint(3)).Return(&entity.Category{ID: 3, Type: "Geography"}, nil)
	questionRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Question")).Return(errors.New("connection reset"))

	svc := NewQuestionService(questionRepo, categoryRepo, NewPaginator(10), DefaultQuestionRules(), testLogger())
	_, err := svc.CreateQuestion(context.Background(), validInput(), 1)

	assert.ErrorIs(t, err, apperrors.ErrUnprocessable)
	questionRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestCreateQuestion_CategoryLookupFailure(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	categoryRepo.On("GetByID", mock.Anything, uint(3)).Return(nil, errors.New("timeout"))

	svc := NewQuestionService(new(MockQuestionRepository), categoryRepo, NewPaginator(10), DefaultQuestionRules(), testLogger())
	_, err := svc.CreateQuestion(context.Background(), validInput(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrUnprocessable)
}

func TestExportQuestions(t *testing.T) {
	svc, _ := newQuestionServiceWithStore(t, 12, 5)

	questions, categories, err := svc.ExportQuestions(context.Background())

	require.NoError(t, err)
	assert.Len(t, questions, 12, "Выгрузка не зависит от размера страницы")
	assert.Equal(t, "Art", categories[2])
}
