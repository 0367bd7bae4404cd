package entity

// QuestionPage - страница списка вопросов вместе с метаданными
type QuestionPage struct {
	Questions  []Question
	Total      int64       // Общее количество (без фильтра для списка, совпадений для поиска)
	Page       int         // Номер страницы (1-based)
	PerPage    int         // Размер страницы
	Categories CategoryMap // Заполняется только в режиме списка
}

// IsEmpty возвращает true, если на странице нет вопросов
func (p *QuestionPage) IsEmpty() bool {
	return len(p.Questions) == 0
}

// CategoryQuestions - вопросы одной категории
type CategoryQuestions struct {
	Questions       []Question
	CurrentCategory string
}

// CreatedQuestion - результат создания вопроса
type CreatedQuestion struct {
	ID      uint
	Listing *QuestionPage
}
