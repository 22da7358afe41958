// Package llm provides options pattern for LLM generation parameters.
//
// Функциональные опции для переопределения параметров генерации
// в момент вызова, без раздувания сигнатуры Provider.Generate.
package llm

// ToolDef — определение инструмента в формате Function Calling API.
//
// Дублирует форму tools.ToolDefinition, но объявлено здесь чтобы
// pkg/llm не зависел от pkg/tools (иначе циклический импорт).
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// GenerateOptions holds parameters for LLM generation.
type GenerateOptions struct {
	// Temperature controls randomness (0.0 = deterministic).
	// nil = использовать дефолт модели.
	Temperature *float64

	// MaxTokens limits the response length. 0 = без лимита.
	MaxTokens int

	// Tools — определения инструментов для Function Calling.
	// Пустой список = инструменты не предлагаются.
	Tools []ToolDef
}

// GenerateOption is a functional option for configuring GenerateOptions.
type GenerateOption func(*GenerateOptions)

// ApplyOptions собирает GenerateOptions из списка опций.
func ApplyOptions(opts ...GenerateOption) GenerateOptions {
	var o GenerateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTemperature sets the temperature for generation.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = &temp
	}
}

// WithMaxTokens sets the maximum tokens for generation.
func WithMaxTokens(tokens int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = tokens
	}
}

// WithTools передаёт определения инструментов в запрос.
func WithTools(defs []ToolDef) GenerateOption {
	return func(o *GenerateOptions) {
		o.Tools = defs
	}
}
