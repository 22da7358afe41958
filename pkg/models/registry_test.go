package models

import (
	"context"
	"testing"

	"github.com/ilkoid/riddle-ai/pkg/config"
	"github.com/ilkoid/riddle-ai/pkg/llm"
)

type nullProvider struct{}

func (nullProvider) Generate(ctx context.Context, messages []llm.Message, opts ...llm.GenerateOption) (llm.Message, error) {
	return llm.Message{}, nil
}

// TestRegistryRegisterAndGet тестирует базовый цикл реестра моделей.
func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	def := config.ModelDef{Provider: "openai", ModelName: "gpt-4.1", APIKey: "k"}

	if err := r.Register("default", def, nullProvider{}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Повторная регистрация того же алиаса — ошибка
	if err := r.Register("default", def, nullProvider{}); err == nil {
		t.Error("duplicate registration must fail")
	}

	_, gotDef, err := r.Get("default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotDef.ModelName != "gpt-4.1" {
		t.Errorf("model_name = %q, want gpt-4.1", gotDef.ModelName)
	}

	if _, _, err := r.Get("missing"); err == nil {
		t.Error("Get on missing alias must fail")
	}
}

// TestGetWithFallback тестирует приоритет запрошенной модели над дефолтной.
func TestGetWithFallback(t *testing.T) {
	r := NewRegistry()
	def := config.ModelDef{Provider: "openai", ModelName: "gpt-4.1", APIKey: "k"}
	fast := config.ModelDef{Provider: "openai", ModelName: "gpt-4.1-mini", APIKey: "k"}

	if err := r.Register("default", def, nullProvider{}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("fast", fast, nullProvider{}); err != nil {
		t.Fatal(err)
	}

	_, gotDef, alias, err := r.GetWithFallback("fast", "default")
	if err != nil {
		t.Fatalf("GetWithFallback: %v", err)
	}
	if alias != "fast" || gotDef.ModelName != "gpt-4.1-mini" {
		t.Errorf("got %s/%s, want fast/gpt-4.1-mini", alias, gotDef.ModelName)
	}

	_, gotDef, alias, err = r.GetWithFallback("tiny", "default")
	if err != nil {
		t.Fatalf("GetWithFallback fallback: %v", err)
	}
	if alias != "default" || gotDef.ModelName != "gpt-4.1" {
		t.Errorf("got %s/%s, want default/gpt-4.1", alias, gotDef.ModelName)
	}

	if _, _, _, err := r.GetWithFallback("none", "also-none"); err == nil {
		t.Error("expected error when neither alias exists")
	}
}

// TestNewRegistryFromSettings: из ENV настроек получаются три алиаса.
func TestNewRegistryFromSettings(t *testing.T) {
	r, err := NewRegistryFromSettings(config.Settings{
		APIKey:       "k",
		ModelDefault: "gpt-4.1",
		ModelFast:    "gpt-4.1-mini",
		ModelTiny:    "gpt-4.1-nano",
	})
	if err != nil {
		t.Fatalf("NewRegistryFromSettings: %v", err)
	}

	for _, alias := range []string{config.AliasDefault, config.AliasFast, config.AliasTiny} {
		if _, _, err := r.Get(alias); err != nil {
			t.Errorf("alias %q not registered: %v", alias, err)
		}
	}
}

// TestNewRegistryFromConfigUnknownProvider: неизвестный провайдер — ошибка.
func TestNewRegistryFromConfigUnknownProvider(t *testing.T) {
	cfg := &config.AppConfig{
		Models: config.ModelsConfig{
			Definitions: map[string]config.ModelDef{
				"weird": {Provider: "quantum", ModelName: "m", APIKey: "k"},
			},
		},
	}

	if _, err := NewRegistryFromConfig(cfg); err == nil {
		t.Error("expected error for unknown provider type")
	}
}
