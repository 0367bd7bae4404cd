package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены
	// (включая пустую выборку, которая трактуется как отсутствие ресурса).
	ErrNotFound = errors.New("resource not found")

	// ErrUnprocessable используется, когда входные данные корректны по форме,
	// но нарушают ограничения предметной области, либо когда изменение в хранилище не удалось.
	ErrUnprocessable = errors.New("unprocessable")
)
