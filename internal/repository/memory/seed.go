package memory

// DefaultCategories - категории, с которыми стартует хранилище (совпадают с миграцией)
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// NewSeededStore создает хранилище с категориями по умолчанию
func NewSeededStore() *Store {
	s := NewStore()
	for _, name := range DefaultCategories {
		s.AddCategory(name)
	}
	return s
}
