package engine

import (
	"tapdash-server/internal/domain"
	"tapdash-server/pkg/utils"
)

// Config хранит параметры запуска игровой сессии
type Config struct {
	// Seed - зерно генератора. Одинаковое зерно и одинаковый ввод дают одинаковый забег.
	Seed   int64
	Tuning domain.Tuning
}

// NewConfig создает конфиг по умолчанию (случайный сид, оригинальные настройки)
func NewConfig() Config {
	return Config{
		Seed:   utils.NewSeed(0),
		Tuning: domain.DefaultTuning(),
	}
}
