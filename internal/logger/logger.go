package logger

import (
	"go.uber.org/zap"
)

// New создает zap-логгер: production-конфигурация для env=production, иначе development
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
