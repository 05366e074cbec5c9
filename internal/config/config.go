package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"tapdash-server/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix - префикс переменных окружения: TAPDASH_SERVER_PORT и т.д.
const EnvPrefix = "TAPDASH"

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	HubBuffer      int      `mapstructure:"hub_buffer"`
	Codec          string   `mapstructure:"codec"`
	Debug          bool     `mapstructure:"debug"`
}

type RelayConfig struct {
	MaxPlayers int `mapstructure:"max_players"`
	NameLimit  int `mapstructure:"name_limit"`
	InboxSize  int `mapstructure:"inbox_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type GameConfig struct {
	Seed      int64         `mapstructure:"seed"`
	TickRate  int           `mapstructure:"tick_rate"`
	RecordDir string        `mapstructure:"record_dir"`
	Tuning    domain.Tuning `mapstructure:"tuning"`
}

type AgentConfig struct {
	JumpLead float64 `mapstructure:"jump_lead"`
	Horizon  float64 `mapstructure:"horizon"`
	Dodge    bool    `mapstructure:"dodge"`
}

type RunnerConfig struct {
	RelayURL    string `mapstructure:"relay_url"`
	Username    string `mapstructure:"username"`
	UpdateEvery int    `mapstructure:"update_every"`
	Ticks       int    `mapstructure:"ticks"`
	Restart     bool   `mapstructure:"restart"`
}

// Config - все настройки процесса. Источники по возрастанию приоритета:
// значения по умолчанию, config.json, .env и окружение, флаги (в main).
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Relay  RelayConfig  `mapstructure:"relay"`
	Log    LogConfig    `mapstructure:"log"`
	Game   GameConfig   `mapstructure:"game"`
	Agent  AgentConfig  `mapstructure:"agent"`
	Runner RunnerConfig `mapstructure:"runner"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.hub_buffer", 64)
	v.SetDefault("server.codec", "json")
	v.SetDefault("server.debug", false)

	v.SetDefault("relay.max_players", 10)
	v.SetDefault("relay.name_limit", 20)
	v.SetDefault("relay.inbox_size", 256)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.tick_rate", 60)
	v.SetDefault("game.record_dir", "recordings")
	setStructDefaults(v, "game.tuning", domain.DefaultTuning())

	v.SetDefault("agent.jump_lead", 12.0)
	v.SetDefault("agent.horizon", 120.0)
	v.SetDefault("agent.dodge", true)

	v.SetDefault("runner.relay_url", "")
	v.SetDefault("runner.username", "autopilot")
	v.SetDefault("runner.update_every", 6)
	v.SetDefault("runner.ticks", 3600)
	v.SetDefault("runner.restart", false)
}

// setStructDefaults регистрирует каждое поле структуры по его mapstructure-тегу.
// Без зарегистрированного ключа viper не видит переменную окружения для него.
func setStructDefaults(v *viper.Viper, prefix string, value any) {
	rv := reflect.ValueOf(value)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		v.SetDefault(prefix+"."+tag, rv.Field(i).Interface())
	}
}

// Load читает конфигурацию. path - явный файл; пустой path ищет config.json
// в текущей директории, отсутствие файла не ошибка.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate отсекает значения, с которыми процесс не сможет работать.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("config: server.port is empty")
	}
	if c.Relay.MaxPlayers <= 0 {
		return fmt.Errorf("config: relay.max_players must be positive, got %d", c.Relay.MaxPlayers)
	}
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("config: game.tick_rate must be positive, got %d", c.Game.TickRate)
	}
	if c.Game.Tuning.SpawnInterval <= 0 || c.Game.Tuning.MinSpawnInterval <= 0 {
		return errors.New("config: spawn intervals must be positive")
	}
	return nil
}
