package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-questions/internal/pkg/errors"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List возвращает все категории по возрастанию ID
func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("id").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}
