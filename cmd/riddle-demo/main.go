// Riddle-demo — двухфазная демонстрация агента.
//
// Фаза 1: быстрая модель придумывает один сложный вопрос.
// Фаза 2: сильная модель решает его, при необходимости вызывая
// math инструмент через Function Calling.
//
// Использование:
//
//	go run cmd/riddle-demo/main.go
//	go run cmd/riddle-demo/main.go path/to/config.yaml
//
// Переменные окружения (работают и через .env):
//
//	OPENAI_API_KEY       — API ключ (обязателен)
//	OPENAI_DEFAULT_MODEL — модель для решения (дефолт gpt-4.1)
//	OPENAI_FAST_MODEL    — модель для вопроса (дефолт gpt-4.1-mini)
//	OPENAI_TINY_MODEL    — запасная дешёвая модель (дефолт gpt-4.1-nano)
//
// Конфигурация: config.yaml опционален; без него используются ENV настройки.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ilkoid/riddle-ai/pkg/agent"
	"github.com/ilkoid/riddle-ai/pkg/config"
	"github.com/ilkoid/riddle-ai/pkg/models"
	"github.com/ilkoid/riddle-ai/pkg/state"
	"github.com/ilkoid/riddle-ai/pkg/tools"
	"github.com/ilkoid/riddle-ai/pkg/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
	}
	defer utils.Close()

	// 1. Конфигурация: config.yaml если есть, иначе ENV настройки
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// 2. Реестр моделей
	modelRegistry, err := models.NewRegistryFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create model registry: %v\n", err)
		os.Exit(1)
	}

	// 3. Состояние сессии и агент (math tool регистрируется внутри)
	st := state.NewCoreState(cfg, tools.NewRegistry())
	ag, err := agent.New(modelRegistry, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create agent: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer utils.SetupGracefulShutdown(cancel)()

	// 4. Фаза 1: придумываем вопрос
	fmt.Println("🤖 Riddle AI — self-quizzing demo")
	fmt.Println("=================================")
	fmt.Println("\nPhase 1: Propose a challenging question")
	question, err := ag.ProposeQuestion(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error proposing question: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Question: %s\n", question)

	// 5. Фаза 2: решаем с инструментами
	fmt.Println("\nPhase 2: Solve with tools if needed")
	answer, err := ag.Solve(ctx, question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error solving question: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Answer: %s\n", answer)

	fmt.Println("\nDone.")
}

// loadConfig выбирает источник конфигурации.
//
// Приоритет: явный путь из аргумента, затем config.yaml в текущей
// директории, затем чистые ENV настройки.
func loadConfig() (*config.AppConfig, error) {
	if len(os.Args) > 1 {
		return config.Load(os.Args[1])
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return config.Load("config.yaml")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	return config.FromSettings(settings), nil
}
