package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init инициализирует глобальный логгер из переменных окружения LOG_LEVEL и LOG_FORMAT.
// Вызывается один раз при старте (main.go, TestMain).
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Configure пересоздаёт глобальный логгер с явно заданными уровнем и форматом.
// Используется, когда параметры пришли из engine.Config, а не из окружения.
func Configure(levelName, format string) {
	Log = logrus.New()

	// 1. Уровень. По умолчанию - "info". Для отладки можно выставить "debug".
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence перенаправляет вывод в никуда. Удобно в бенчмарках и шумных тестах.
func Silence() {
	if Log == nil {
		Init()
	}
	Log.SetOutput(io.Discard)
}

// For возвращает entry с заполненным полем component.
func For(component string) *logrus.Entry {
	if Log == nil {
		Init()
	}
	return Log.WithField("component", component)
}
