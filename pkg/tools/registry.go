// Реестр для хранения и поиска инструментов.
package tools

import (
	"fmt"
	"sort"
	"sync"
)

// Registry — потокобезопасное хранилище инструментов.
//
// Rule 3: агент вызывает инструменты только через реестр.
// Rule 5: thread-safe через sync.RWMutex.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry создает новый пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// validateDefinition проверяет что ToolDefinition пригоден для Function Calling.
//
// Валидирует:
//   - Name не пустой
//   - Parameters не nil и имеет type == "object"
//   - Parameters.required (если есть) — массив строк
func validateDefinition(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Parameters == nil {
		return fmt.Errorf("tool '%s': parameters cannot be nil", def.Name)
	}

	typeVal, ok := def.Parameters["type"]
	if !ok {
		return fmt.Errorf("tool '%s': parameters must have 'type' field", def.Name)
	}
	typeStr, ok := typeVal.(string)
	if !ok || typeStr != "object" {
		return fmt.Errorf("tool '%s': parameters.type must be 'object', got: %v", def.Name, typeVal)
	}

	if requiredVal, exists := def.Parameters["required"]; exists {
		switch required := requiredVal.(type) {
		case []string:
			// уже строки — ок
		case []any:
			for i, item := range required {
				if _, ok := item.(string); !ok {
					return fmt.Errorf("tool '%s': parameters.required[%d] must be a string, got: %T", def.Name, i, item)
				}
			}
		default:
			return fmt.Errorf("tool '%s': parameters.required must be an array of strings", def.Name)
		}
	}

	return nil
}

// Register добавляет инструмент в реестр с валидацией схемы.
//
// Идемпотентен по имени: повторная регистрация с тем же именем
// перезаписывает предыдущую запись.
//
// Rule 7: возвращает ошибку если определение не валидно.
func (r *Registry) Register(tool Tool) error {
	def := tool.Definition()

	if err := validateDefinition(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[def.Name] = tool
	return nil
}

// Get ищет инструмент по имени.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool '%s' not found", name)
	}
	return tool, nil
}

// Definitions возвращает список всех определений для отправки в LLM.
//
// Порядок детерминирован (сортировка по имени) — удобно для тестов
// и воспроизводимых запросов.
func (r *Registry) Definitions() []ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.Definition())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
