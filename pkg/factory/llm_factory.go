package factory

import (
	"fmt"

	"github.com/ilkoid/riddle-ai/pkg/config"
	"github.com/ilkoid/riddle-ai/pkg/llm"
	"github.com/ilkoid/riddle-ai/pkg/llm/openai"
)

// NewLLMProvider создает провайдера на основе конфигурации модели.
//
// Все поддерживаемые провайдеры OpenAI-совместимы (различаются только
// base_url), поэтому маппятся на один адаптер.
func NewLLMProvider(modelDef config.ModelDef) (llm.Provider, error) {
	switch modelDef.Provider {
	case "openai", "zai", "deepseek", "openrouter":
		return openai.NewClient(modelDef), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", modelDef.Provider)
	}
}
