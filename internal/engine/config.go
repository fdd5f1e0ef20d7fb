package engine

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Режимы симуляции
const (
	ModeTurn     = "turn"
	ModeRealtime = "realtime"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все уровни.
	// Level N Seed = hash(MasterSeed, имя уровня)
	Seed int64 `env:"WARRENS_SEED"`

	Mode string `env:"WARRENS_MODE" envDefault:"turn"`
	Port string `env:"WARRENS_PORT" envDefault:"8080"`

	// TickInterval - шаг реального времени для Realm.
	TickInterval time.Duration `env:"WARRENS_TICK_INTERVAL" envDefault:"250ms"`

	PlayerName     string `env:"WARRENS_PLAYER_NAME" envDefault:"Ewan"`
	QuickStart     bool   `env:"WARRENS_QUICK_START" envDefault:"true"`
	DungeonLevels  int    `env:"WARRENS_DUNGEON_LEVELS" envDefault:"9"`
	CaveLevels     int    `env:"WARRENS_CAVE_LEVELS" envDefault:"1"`
	MapWidth       int    `env:"WARRENS_MAP_WIDTH" envDefault:"80"`
	MapHeight      int    `env:"WARRENS_MAP_HEIGHT" envDefault:"50"`
	MessageHistory int    `env:"WARRENS_MESSAGE_HISTORY" envDefault:"5"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Autopilot - бот управляет игроком в пошаговом режиме.
	Autopilot      bool          `env:"WARRENS_AUTOPILOT" envDefault:"true"`
	AutopilotDelay time.Duration `env:"WARRENS_AUTOPILOT_DELAY" envDefault:"200ms"`

	Telemetry bool `env:"WARRENS_TELEMETRY" envDefault:"false"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:           time.Now().UnixNano(),
		Mode:           ModeTurn,
		Port:           "8080",
		TickInterval:   250 * time.Millisecond,
		PlayerName:     "Ewan",
		QuickStart:     true,
		DungeonLevels:  9,
		CaveLevels:     1,
		MapWidth:       80,
		MapHeight:      50,
		MessageHistory: 5,
		LogLevel:       "info",
		LogFormat:      "text",
		Autopilot:      true,
		AutopilotDelay: 200 * time.Millisecond,
	}
}

// LoadConfig читает конфиг из окружения. Нулевой сид заменяется случайным.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые env не может проверить сам.
func (c Config) Validate() error {
	if c.Mode != ModeTurn && c.Mode != ModeRealtime {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.DungeonLevels < 1 {
		return fmt.Errorf("need at least one dungeon level, got %d", c.DungeonLevels)
	}
	if c.CaveLevels < 0 {
		return fmt.Errorf("cave levels must not be negative, got %d", c.CaveLevels)
	}
	return nil
}
