// Package agent реализует двухфазного демо-агента.
//
// Агент умеет две вещи:
//  1. ProposeQuestion — попросить быструю модель придумать один сложный вопрос
//  2. Solve — решить вопрос сильной моделью, при необходимости дав ей
//     вызвать зарегистрированные инструменты (Function Calling, два прохода)
//
// Один агент — одна сессия: память и реестр инструментов не рассчитаны
// на параллельные Solve/ProposeQuestion. Rule 4: LLM только через
// llm.Provider. Rule 3: инструменты только через tools.Registry.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/ilkoid/riddle-ai/pkg/config"
	"github.com/ilkoid/riddle-ai/pkg/llm"
	"github.com/ilkoid/riddle-ai/pkg/models"
	"github.com/ilkoid/riddle-ai/pkg/state"
	"github.com/ilkoid/riddle-ai/pkg/tools"
	"github.com/ilkoid/riddle-ai/pkg/tools/std"
	"github.com/ilkoid/riddle-ai/pkg/utils"
)

// Температуры фаз: вопрос — креативный, решение — близкое к детерминизму.
const (
	proposeTemperature = 0.7
	solveTemperature   = 0.2
)

// questionPrefix — префикс, под которым вопрос попадает в память.
const questionPrefix = "Question to solve: "

const proposePrompt = "Propose one difficult, precise question that tests reasoning ability. " +
	"Output only the question text—no preamble or answer."

const solveSystemPrompt = "You are a precise problem solver. " +
	"Use tools when arithmetic is nontrivial. " +
	"Return a final answer with a short explanation, no hidden reasoning steps."

// Agent — минимальный агент с памятью и реестром инструментов.
type Agent struct {
	models *models.Registry
	tools  *tools.Registry
	state  *state.CoreState
}

// New создаёт агента и регистрирует встроенный math инструмент.
//
// Реестр инструментов берётся из CoreState — инструменты живут столько же,
// сколько агент.
func New(modelRegistry *models.Registry, st *state.CoreState) (*Agent, error) {
	if modelRegistry == nil {
		return nil, fmt.Errorf("model registry is required")
	}
	if st == nil || st.ToolsRegistry == nil {
		return nil, fmt.Errorf("core state with tools registry is required")
	}

	if err := st.ToolsRegistry.Register(std.NewMathTool()); err != nil {
		return nil, fmt.Errorf("failed to register math tool: %w", err)
	}

	return &Agent{
		models: modelRegistry,
		tools:  st.ToolsRegistry,
		state:  st,
	}, nil
}

// RegisterTool добавляет пользовательский инструмент.
//
// Идемпотентен по имени (см. tools.Registry.Register).
func (a *Agent) RegisterTool(t tools.Tool) error {
	return a.tools.Register(t)
}

// History возвращает снимок памяти агента.
func (a *Agent) History() []llm.Message {
	return a.state.History()
}

// ProposeQuestion просит быструю модель придумать один сложный вопрос.
//
// Ответ модели не валидируется (доверяем, что это вопрос) и не ретраится:
// пустой ответ — пустая строка, ошибка API поднимается вызывающему.
// Вопрос запоминается в памяти под ролью user с фиксированным префиксом.
func (a *Agent) ProposeQuestion(ctx context.Context) (string, error) {
	provider, _, alias, err := a.models.GetWithFallback(config.AliasFast, config.AliasDefault)
	if err != nil {
		return "", err
	}
	utils.Debug("Proposing question", "model", alias)

	resp, err := provider.Generate(ctx,
		[]llm.Message{{Role: llm.RoleUser, Content: proposePrompt}},
		llm.WithTemperature(proposeTemperature),
	)
	if err != nil {
		return "", fmt.Errorf("propose question: %w", err)
	}

	question := strings.TrimSpace(resp.Content)
	if err := a.state.AddTurn(llm.RoleUser, questionPrefix+question); err != nil {
		return "", err
	}
	return question, nil
}

// Solve решает вопрос сильной моделью, с инструментами при необходимости.
//
// Протокол — два прохода:
//
//	INIT         собрать [system, ...память..., вопрос] и определения инструментов
//	FIRST_PASS   один вызов API с tools и tool_choice=auto
//	DIRECT       нет tool calls → содержимое ответа и есть финальный ответ
//	DISPATCHING  есть tool calls → выполнить каждый строго в порядке модели,
//	             assistant ход с запросом инструментов встаёт ПЕРЕД
//	             tool-result ходами (API отвергает транскрипт, где результат
//	             не следует за запросившим его assistant ходом)
//	SECOND_PASS  повторный вызов API с расширенным списком, уже без tools
//	DONE         финальный ответ запоминается в памяти под ролью assistant
//
// Tool-result ходы живут только в исходящем списке сообщений — в память
// попадают лишь вопрос и финальный ответ. Пустой ответ модели — это
// пустая строка, не ошибка. Ошибка API — жёсткий отказ всего вызова.
func (a *Agent) Solve(ctx context.Context, question string) (string, error) {
	provider, _, err := a.models.Get(config.AliasDefault)
	if err != nil {
		return "", err
	}

	// INIT: транскрипт + проекция реестра в определения для API
	messages := make([]llm.Message, 0, a.state.Len()+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: solveSystemPrompt})
	messages = append(messages, a.state.History()...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	toolDefs := projectDefinitions(a.tools.Definitions())

	// FIRST_PASS: модель сама решает, нужны ли инструменты
	first, err := provider.Generate(ctx, messages,
		llm.WithTools(toolDefs),
		llm.WithTemperature(solveTemperature),
	)
	if err != nil {
		return "", fmt.Errorf("solve first pass: %w", err)
	}

	var final string
	if len(first.ToolCalls) > 0 {
		utils.Info("Dispatching tool calls", "model", config.AliasDefault, "count", len(first.ToolCalls))

		// Assistant ход, запросивший инструменты — до всех результатов
		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   first.Content,
			ToolCalls: first.ToolCalls,
		})

		// DISPATCHING: строго последовательно, в порядке модели.
		// Каждый pending call обязан получить ровно один result ход —
		// иначе API отвергнет транскрипт на втором проходе.
		for _, call := range first.ToolCalls {
			messages = append(messages, a.dispatchToolCall(ctx, call))
		}

		// SECOND_PASS: инструменты больше не предлагаются
		second, err := provider.Generate(ctx, messages,
			llm.WithTemperature(solveTemperature),
		)
		if err != nil {
			return "", fmt.Errorf("solve second pass: %w", err)
		}
		final = strings.TrimSpace(second.Content)
	} else {
		final = strings.TrimSpace(first.Content)
	}

	// DONE
	if err := a.state.AddTurn(llm.RoleAssistant, final); err != nil {
		return "", err
	}
	return final, nil
}

// dispatchToolCall выполняет один tool call и строит его result ход.
//
// Любая проблема диспетчеризации — неизвестное имя инструмента,
// нечитаемые аргументы, ошибка самого обработчика — конвертируется
// в текст "Error: ..." в содержимом result хода: у pending call всегда
// должен появиться результат, ронять процесс здесь нельзя.
func (a *Agent) dispatchToolCall(ctx context.Context, call llm.ToolCall) llm.Message {
	result := func() string {
		argsJSON, err := normalizeToolArgs(call.Args)
		if err != nil {
			return fmt.Sprintf("Error: malformed tool arguments: %v", err)
		}

		tool, err := a.tools.Get(call.Name)
		if err != nil {
			// Модель запросила инструмент, которого нет в реестре.
			// Это ошибка конфигурации, но транскрипт должен остаться валидным.
			utils.Warn("Unknown tool requested", "tool", call.Name, "call_id", call.ID)
			return fmt.Sprintf("Error: tool '%s' is not registered", call.Name)
		}

		out, err := tool.Execute(ctx, argsJSON)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		return out
	}()

	return llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    result,
	}
}

// normalizeToolArgs нормализует payload аргументов к каноничному JSON объекту.
//
// Модели присылают аргументы в двух видах: корректный JSON объект или
// слегка поломанный текст (одинарные кавычки, хвостовые запятые, двойная
// сериализация). Нормализация происходит здесь, на границе диспетчеризации,
// чтобы неоднозначность не протекала в контракт инструмента:
//  1. пустая строка → "{}"
//  2. валидный JSON объект → каноничная пересериализация
//  3. JSON строка с объектом внутри → разворачиваем один уровень
//  4. иначе — jsonrepair и повторная попытка
func normalizeToolArgs(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "{}", nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		// Двойная сериализация: "{\"a\": 1}" как JSON строка
		var inner string
		if json.Unmarshal([]byte(s), &inner) == nil && inner != s {
			return normalizeToolArgs(inner)
		}

		repaired, repairErr := jsonrepair.JSONRepair(s)
		if repairErr != nil {
			return "", fmt.Errorf("arguments are not a JSON object: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			return "", fmt.Errorf("arguments are not a JSON object after repair: %w", err)
		}
	}

	normalized, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(normalized), nil
}

// projectDefinitions проецирует определения реестра в формат llm пакета.
//
// {name, description, parameters} — ровно та тройка, которую видит API.
func projectDefinitions(defs []tools.ToolDefinition) []llm.ToolDef {
	out := make([]llm.ToolDef, len(defs))
	for i, def := range defs {
		out[i] = llm.ToolDef{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  map[string]any(def.Parameters),
		}
	}
	return out
}
