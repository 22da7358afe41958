// Package models предоставляет централизованный реестр LLM провайдеров.
//
// Реестр регистрирует все модели из конфигурации при старте и позволяет
// агенту переключаться между ними по алиасу (default / fast / tiny).
//
// Rule 3: Registry pattern (как tools.Registry).
// Rule 5: Thread-safe через sync.RWMutex.
// Rule 6: Reusable library package, без импортов из internal/.
package models

import (
	"fmt"
	"sync"

	"github.com/ilkoid/riddle-ai/pkg/config"
	"github.com/ilkoid/riddle-ai/pkg/factory"
	"github.com/ilkoid/riddle-ai/pkg/llm"
)

// Registry — потокобезопасное хранилище LLM провайдеров.
type Registry struct {
	mu     sync.RWMutex
	models map[string]ModelEntry
}

// ModelEntry — кешированный провайдер с конфигурацией.
type ModelEntry struct {
	Provider llm.Provider
	Config   config.ModelDef
}

// NewRegistry создаёт новый пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]ModelEntry),
	}
}

// Register добавляет модель в реестр.
//
// Rule 7: возвращает ошибку если алиас уже занят.
func (r *Registry) Register(name string, modelDef config.ModelDef, provider llm.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.models[name]; exists {
		return fmt.Errorf("model '%s' already registered", name)
	}

	r.models[name] = ModelEntry{
		Provider: provider,
		Config:   modelDef,
	}
	return nil
}

// Get извлекает провайдер по алиасу модели.
func (r *Registry) Get(name string) (llm.Provider, config.ModelDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.models[name]
	if !ok {
		return nil, config.ModelDef{}, fmt.Errorf("model '%s' not found in registry", name)
	}
	return entry.Provider, entry.Config, nil
}

// GetWithFallback извлекает провайдер с fallback на дефолтную модель.
//
// Приоритет: запрошенный алиас, затем defaultModel.
func (r *Registry) GetWithFallback(requested, defaultModel string) (llm.Provider, config.ModelDef, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.models[requested]; ok {
		return entry.Provider, entry.Config, requested, nil
	}
	if entry, ok := r.models[defaultModel]; ok {
		return entry.Provider, entry.Config, defaultModel, nil
	}
	return nil, config.ModelDef{}, "", fmt.Errorf("neither requested model '%s' nor default '%s' found in registry", requested, defaultModel)
}

// ListNames возвращает список всех зарегистрированных алиасов.
//
// Полезно для логирования и отладки.
func (r *Registry) ListNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

// NewRegistryFromConfig создаёт и заполняет реестр из конфигурации.
//
// Итерируется по cfg.Models.Definitions и создаёт провайдера для каждой
// модели. Возвращает ошибку если хоть одна модель не инициализируется.
func NewRegistryFromConfig(cfg *config.AppConfig) (*Registry, error) {
	registry := NewRegistry()

	for alias, modelDef := range cfg.Models.Definitions {
		provider, err := factory.NewLLMProvider(modelDef)
		if err != nil {
			return nil, fmt.Errorf("failed to create provider for model '%s': %w", alias, err)
		}
		if err := registry.Register(alias, modelDef, provider); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// NewRegistryFromSettings строит реестр из ENV настроек (без config.yaml).
//
// Регистрирует три стандартных алиаса: default, fast, tiny.
func NewRegistryFromSettings(s config.Settings) (*Registry, error) {
	return NewRegistryFromConfig(config.FromSettings(s))
}
