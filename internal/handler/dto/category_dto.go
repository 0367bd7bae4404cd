package dto

import "github.com/yourusername/trivia-questions/internal/domain/entity"

// CategoryResponse представляет категорию в формате для ответа клиенту
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
}

// CategoriesResponse - ответ GET /categories
type CategoriesResponse struct {
	Success         bool               `json:"success"`
	Categories      entity.CategoryMap `json:"categories"`
	TotalCategories int                `json:"totalCategories"`
}

// NewCategoriesResponse создает ответ со всеми категориями; пустая карта сериализуется как {}
func NewCategoriesResponse(categories entity.CategoryMap) CategoriesResponse {
	if categories == nil {
		categories = entity.CategoryMap{}
	}
	return CategoriesResponse{
		Success:         true,
		Categories:      categories,
		TotalCategories: len(categories),
	}
}

// CategoryDetailResponse - ответ GET /categories/:id
type CategoryDetailResponse struct {
	Success  bool             `json:"success"`
	Category CategoryResponse `json:"category"`
}

// NewCategoryDetailResponse создает ответ для одной категории
func NewCategoryDetailResponse(c *entity.Category) CategoryDetailResponse {
	return CategoryDetailResponse{
		Success:  true,
		Category: CategoryResponse{ID: c.ID, Type: c.Type},
	}
}
