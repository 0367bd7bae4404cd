package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
	"github.com/yourusername/trivia-questions/internal/domain/repository"
)

// CategoryService предоставляет методы для работы с категориями
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger.Named("category_service"),
	}
}

// ListCategories возвращает карту всех категорий (ID → имя).
// Пустое хранилище даёт пустую карту без ошибки.
func (s *CategoryService) ListCategories(ctx context.Context) (entity.CategoryMap, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return entity.NewCategoryMap(categories), nil
}

// GetCategory возвращает категорию по ID (apperrors.ErrNotFound, если её нет)
func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("category %d: %w", id, err)
	}
	return category, nil
}
