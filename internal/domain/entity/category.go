package entity

// Category представляет категорию вопросов
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"column:type;not null" json:"type"` // Отображаемое имя
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// CategoryMap - отображение ID категории в её имя.
// В JSON сериализуется как объект {"1": "Science", ...}
type CategoryMap map[uint]string

// NewCategoryMap строит CategoryMap из списка категорий
func NewCategoryMap(categories []Category) CategoryMap {
	m := make(CategoryMap, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
