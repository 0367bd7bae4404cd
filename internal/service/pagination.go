package service

import (
	"strconv"
	"strings"
)

// DefaultPageSize используется, если размер страницы не задан
const DefaultPageSize = 10

// Paginator нарезает упорядоченные выборки на страницы фиксированного размера
type Paginator struct {
	pageSize int
}

// NewPaginator создает Paginator с размером страницы из конфигурации
func NewPaginator(pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Paginator{pageSize: pageSize}
}

// PageSize возвращает размер страницы
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// NormalizePage приводит номер страницы к допустимому (< 1 → 1)
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ParsePage разбирает номер страницы из query-параметра.
// Пустое или нечисловое значение означает первую страницу.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return NormalizePage(page)
}

// Paginate возвращает элементы [(page-1)*size, page*size).
// Страница за пределами выборки даёт пустой (не nil) срез.
func Paginate[T any](items []T, page, size int) []T {
	if size < 1 {
		size = DefaultPageSize
	}
	page = NormalizePage(page)

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
