package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init создает логгер по переменным окружения LOG_LEVEL и LOG_FORMAT.
// Вызывается один раз при старте бинарника (или в TestMain).
func Init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)

	level, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		level = "info"
	}
	Configure(level, os.Getenv("LOG_FORMAT"))
}

// Configure переприменяет уровень и формат, когда конфиг уже загружен.
// Пустые значения оставляют текущие настройки.
func Configure(level, format string) {
	if Log == nil {
		Log = logrus.New()
		Log.SetOutput(os.Stdout)
	}

	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		Log.SetLevel(lvl)
	}

	switch strings.ToLower(format) {
	case "json":
		// для продакшена и сбора логов
		Log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}
}

// Component возвращает запись с полем "component", как принято во всех подсистемах.
func Component(name string) *logrus.Entry {
	if Log == nil {
		Init()
	}
	return Log.WithField("component", name)
}
