// Package config загружает настройки приложения.
//
// Два источника, от простого к полному:
//  1. ENV переменные (+ .env через godotenv) — минимальный режим,
//     совместимый со стандартными OPENAI_* переменными.
//  2. Опциональный config.yaml — полный режим с определениями моделей
//     (provider, base_url, температура) и ${VAR} подстановкой.
//
// Rule 2: никакого хардкода ключей — всё из окружения/конфига.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Дефолтные имена моделей для ENV режима.
const (
	DefaultModel = "gpt-4.1"
	FastModel    = "gpt-4.1-mini"
	TinyModel    = "gpt-4.1-nano"
)

// Алиасы моделей, которые ожидает агент.
const (
	AliasDefault = "default"
	AliasFast    = "fast"
	AliasTiny    = "tiny"
)

// Settings — настройки из окружения.
//
// Иммутабельны после LoadSettings: конструируются один раз на процесс,
// дальше только чтение. Живых ресурсов не держат.
type Settings struct {
	APIKey       string // секрет, обязателен
	ModelDefault string
	ModelFast    string
	ModelTiny    string
}

// LoadSettings читает настройки из окружения.
//
// Сначала подгружает .env из текущей директории (если есть), затем
// читает ENV. Отсутствие OPENAI_API_KEY — фатальная ошибка конфигурации:
// возвращается до любого обращения к API.
func LoadSettings() (Settings, error) {
	// .env опционален — ошибку "файла нет" игнорируем
	_ = godotenv.Overload()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return Settings{}, fmt.Errorf("missing OPENAI_API_KEY: create .env from .env.example and fill it in")
	}

	return Settings{
		APIKey:       apiKey,
		ModelDefault: getenvDefault("OPENAI_DEFAULT_MODEL", DefaultModel),
		ModelFast:    getenvDefault("OPENAI_FAST_MODEL", FastModel),
		ModelTiny:    getenvDefault("OPENAI_TINY_MODEL", TinyModel),
	}, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// AppConfig — корневая структура config.yaml.
type AppConfig struct {
	Models ModelsConfig `yaml:"models"`
	App    AppSpecific  `yaml:"app"`
}

// ModelsConfig — настройки AI моделей.
type ModelsConfig struct {
	Definitions map[string]ModelDef `yaml:"definitions"` // алиас -> определение
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider    string  `yaml:"provider"`   // "openai", "zai" и т.д.
	ModelName   string  `yaml:"model_name"` // реальное имя в API
	APIKey      string  `yaml:"api_key"`    // поддерживает ${VAR}
	BaseURL     string  `yaml:"base_url"`   // пусто = дефолт SDK
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug bool `yaml:"debug"`
}

// Load читает YAML файл, подставляет ENV переменные и возвращает структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения: ${VAR} или $VAR
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	if len(c.Models.Definitions) == 0 {
		return fmt.Errorf("models.definitions must not be empty")
	}
	for alias, def := range c.Models.Definitions {
		if def.ModelName == "" {
			return fmt.Errorf("models.definitions.%s: model_name is required", alias)
		}
		if def.APIKey == "" {
			return fmt.Errorf("models.definitions.%s: api_key is required", alias)
		}
	}
	return nil
}

// FromSettings строит AppConfig из ENV настроек.
//
// Используется когда config.yaml отсутствует: три стандартных алиаса
// (default, fast, tiny) указывают на OpenAI модели из Settings.
func FromSettings(s Settings) *AppConfig {
	def := func(model string) ModelDef {
		return ModelDef{
			Provider:  "openai",
			ModelName: model,
			APIKey:    s.APIKey,
		}
	}
	return &AppConfig{
		Models: ModelsConfig{
			Definitions: map[string]ModelDef{
				AliasDefault: def(s.ModelDefault),
				AliasFast:    def(s.ModelFast),
				AliasTiny:    def(s.ModelTiny),
			},
		},
	}
}
