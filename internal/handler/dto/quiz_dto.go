package dto

import (
	"bytes"
	"encoding/json"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
)

// QuizCategory - селектор категории викторины.
// Фронтенд присылает объект {"id": 1, "type": "Science"}; также принимаются число, строка и null.
// ID == nil или 0 означает "все категории".
type QuizCategory struct {
	ID *uint
}

// UnmarshalJSON разбирает любую из поддерживаемых форм
func (c *QuizCategory) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		c.ID = nil
		return nil
	}

	var obj struct {
		ID *FlexibleID `json:"id"`
	}
	isObject, err := decodeJSONObject(data, &obj)
	if err != nil {
		return err
	}
	if isObject {
		c.ID = obj.ID.Ptr()
		return nil
	}

	var id FlexibleID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	c.ID = id.Ptr()
	return nil
}

// QuizRequest - тело POST /quizzes
type QuizRequest struct {
	PreviousQuestions []uint        `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// ToEntity преобразует запрос в доменный запрос шага викторины
func (r *QuizRequest) ToEntity() entity.QuizRequest {
	req := entity.QuizRequest{PreviousQuestions: r.PreviousQuestions}
	if r.QuizCategory != nil {
		req.CategoryID = r.QuizCategory.ID
	}
	return req
}

// QuizResponse - ответ POST /quizzes; question == null и exhausted == true, когда вопросы закончились
type QuizResponse struct {
	Success   bool              `json:"success"`
	Question  *QuestionResponse `json:"question"`
	Exhausted bool              `json:"exhausted"`
}

// NewQuizResponse создает ответ шага викторины
func NewQuizResponse(result *entity.QuizResult) QuizResponse {
	resp := QuizResponse{Success: true, Exhausted: result.Exhausted}
	if result.Question != nil {
		q := NewQuestionResponse(result.Question)
		resp.Question = &q
	}
	return resp
}

// isJSONNull проверяет литерал null
func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// decodeJSONObject сообщает, является ли значение JSON-объектом
func decodeJSONObject(data []byte, v any) (bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false, nil
	}
	return true, json.Unmarshal(trimmed, v)
}
