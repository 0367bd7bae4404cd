package entity

import "sort"

// QuizRequest описывает один шаг сессии викторины.
// Сессию хранит клиент: на каждом шаге он передаёт все уже показанные вопросы.
type QuizRequest struct {
	PreviousQuestions []uint
	// CategoryID == nil или 0 означает "все категории"
	CategoryID *uint
}

// AllCategories возвращает true, если выбор не ограничен категорией
func (r QuizRequest) AllCategories() bool {
	return r.CategoryID == nil || *r.CategoryID == 0
}

// ExcludeIDs возвращает уникальные ID показанных вопросов в порядке возрастания
func (r QuizRequest) ExcludeIDs() []uint {
	if len(r.PreviousQuestions) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(r.PreviousQuestions))
	ids := make([]uint, 0, len(r.PreviousQuestions))
	for _, id := range r.PreviousQuestions {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// QuizResult - результат шага викторины: либо вопрос, либо признак исчерпания пула
type QuizResult struct {
	Question  *Question
	Exhausted bool
}

// ExhaustedQuizResult возвращает результат "вопросы закончились"
func ExhaustedQuizResult() *QuizResult {
	return &QuizResult{Exhausted: true}
}
