package entity

import (
	"strings"
)

// Границы шкалы сложности по умолчанию
const (
	DefaultMinDifficulty = 1
	DefaultMaxDifficulty = 5
)

// Question представляет вопрос викторины
type Question struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Question   string `gorm:"column:question;not null" json:"question"`
	Answer     string `gorm:"not null" json:"answer"`
	Category   *uint  `gorm:"index" json:"category"` // NULL - вопрос без категории
	Difficulty int    `gorm:"not null" json:"difficulty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// InCategory проверяет, относится ли вопрос к категории categoryID
func (q *Question) InCategory(categoryID uint) bool {
	return q.Category != nil && *q.Category == categoryID
}

// ContainsText проверяет вхождение term в текст вопроса без учёта регистра.
// Пустой term входит в любой текст.
func (q *Question) ContainsText(term string) bool {
	return strings.Contains(strings.ToLower(q.Question), strings.ToLower(term))
}

// QuestionInput - данные для создания вопроса.
// Поля-указатели позволяют отличить отсутствующее значение от нулевого.
type QuestionInput struct {
	Question   *string
	Answer     *string
	Category   *uint
	Difficulty *int
}
