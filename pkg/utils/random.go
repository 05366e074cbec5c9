package utils

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GenerateID создает уникальный ID соединения или сессии.
func GenerateID() string {
	return uuid.NewString()
}

// NewSeed возвращает случайное зерно, если явное не задано (0).
func NewSeed(explicit int64) int64 {
	if explicit != 0 {
		return explicit
	}
	return time.Now().UnixNano()
}

// NewRand - детерминированный генератор от зерна. Одинаковое зерно дает одинаковую игру.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
