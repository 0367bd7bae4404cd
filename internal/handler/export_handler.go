package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-questions/internal/domain/entity"
)

// exportHeaders - заголовки колонок выгрузки
var exportHeaders = []string{"ID", "Question", "Answer", "Category", "Difficulty"}

// ExportQuestions выгружает все вопросы в CSV или Excel формате
// GET /questions/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		abortWithError(c, http.StatusBadRequest)
		return
	}

	// Получаем ВСЕ вопросы без пагинации
	questions, categories, err := h.questionService.ExportQuestions(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, questions, categories, filename)
	default:
		h.exportCSV(c, questions, categories, filename)
	}
}

// exportCSV выгружает вопросы в CSV с правильным экранированием спецсимволов
func (h *QuestionHandler) exportCSV(c *gin.Context, questions []entity.Question, categories entity.CategoryMap, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	writer.Write(exportHeaders)
	for _, q := range questions {
		writer.Write([]string{
			strconv.FormatUint(uint64(q.ID), 10),
			sanitizeForExcel(q.Question),
			sanitizeForExcel(q.Answer),
			categoryName(q, categories),
			strconv.Itoa(q.Difficulty),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Error("failed to write csv export", zap.Error(err))
	}
}

// exportXLSX выгружает вопросы в Excel с использованием StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, questions []entity.Question, categories entity.CategoryMap, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Questions"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		h.logger.Error("failed to rename sheet", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError)
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		h.logger.Error("failed to create stream writer", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError)
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, title := range exportHeaders {
		headers[i] = title
	}
	if err := sw.SetRow("A1", headers); err != nil {
		h.logger.Error("failed to write xlsx headers", zap.Error(err))
	}

	for i, q := range questions {
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // 1 строка - заголовки
		row := []interface{}{q.ID, sanitizeForExcel(q.Question), sanitizeForExcel(q.Answer), categoryName(q, categories), q.Difficulty}
		if err := sw.SetRow(cell, row); err != nil {
			h.logger.Error("failed to write xlsx row", zap.Int("row", i+2), zap.Error(err))
		}
	}

	if err := sw.Flush(); err != nil {
		h.logger.Error("failed to flush xlsx", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("failed to write xlsx to response", zap.Error(err))
	}
}

// categoryName возвращает имя категории вопроса или пустую строку
func categoryName(q entity.Question, categories entity.CategoryMap) string {
	if q.Category == nil {
		return ""
	}
	return categories[*q.Category]
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
