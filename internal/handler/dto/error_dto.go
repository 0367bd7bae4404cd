package dto

import "net/http"

// errorMessages - тексты ошибок, которые ожидает фронтенд
var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
}

// ErrorResponse - конверт ответа об ошибке
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// NewErrorResponse создает конверт ошибки для HTTP статуса
func NewErrorResponse(status int) ErrorResponse {
	message, ok := errorMessages[status]
	if !ok {
		message = http.StatusText(status)
	}
	return ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	}
}
