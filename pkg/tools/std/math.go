// Package std предоставляет стандартные инструменты для AI агента.
//
// MathTool — безопасный арифметический вычислитель для агента.
package std

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/ilkoid/riddle-ai/pkg/tools"
)

// Границы факториала: выше 10000 ответ занимает десятки тысяч цифр
// и перестаёт быть полезным в транскрипте.
const maxFactorialN = 10000

// MathRequest — схема аргументов, по которой модель вызывает инструмент.
type MathRequest struct {
	Expression string `json:"expression"`
	Mode       string `json:"mode"` // "eval", "sqrt", "factorial"
}

// MathTool — инструмент вычисления арифметики, корня и факториала.
//
// Rule 1: "Raw In, String Out". Любая внутренняя ошибка (плохие символы,
// не число, деление на ноль, выход за диапазон) конвертируется в текст
// "Error: ..." и возвращается как обычный результат с nil error —
// инструмент никогда не роняет диалог.
type MathTool struct{}

// NewMathTool создает инструмент вычисления математики.
func NewMathTool() *MathTool {
	return &MathTool{}
}

// Definition возвращает определение инструмента для function calling.
func (t *MathTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "evaluate_math",
		Description: "Safely evaluate arithmetic, sqrt, or factorial.",
		Parameters: tools.JSONSchema{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{
					"type": "string",
				},
				"mode": map[string]any{
					"type": "string",
					"enum": []string{"eval", "sqrt", "factorial"},
				},
			},
			"required": []string{"expression", "mode"},
		},
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *MathTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var req MathRequest
	if err := json.Unmarshal([]byte(argsJSON), &req); err != nil {
		return fmt.Sprintf("Error: invalid arguments: %v", err), nil
	}
	return Evaluate(req), nil
}

// Evaluate вычисляет MathRequest и возвращает строковый результат.
//
// Чистая функция: один запрос — одна строка, успех или "Error: ...".
func Evaluate(req MathRequest) string {
	expr := strings.TrimSpace(req.Expression)

	switch req.Mode {
	case "sqrt":
		x, err := strconv.ParseFloat(expr, 64)
		if err != nil {
			return fmt.Sprintf("Error: could not parse '%s' as number", req.Expression)
		}
		if x < 0 {
			return "Error: math domain error"
		}
		return strconv.FormatFloat(math.Sqrt(x), 'g', -1, 64)

	case "factorial":
		n, err := strconv.Atoi(expr)
		if err != nil {
			return fmt.Sprintf("Error: could not parse '%s' as integer", req.Expression)
		}
		if n < 0 || n > maxFactorialN {
			return "Error: n out of range"
		}
		// 10000! не влезает ни в какой фиксированный тип — только big.Int.
		// MulRange(1, 0) корректно возвращает 1 (пустое произведение).
		return new(big.Int).MulRange(1, int64(n)).String()

	case "eval":
		if !allowedChars(req.Expression) {
			return "Error: disallowed characters"
		}
		result, err := evalArithmetic(req.Expression)
		if err != nil {
			return "Error: " + err.Error()
		}
		return result

	default:
		return "Error: unknown mode"
	}
}

// allowedChars проверяет что выражение состоит только из разрешённого
// набора: цифры, четыре оператора, скобки, точка и пробел.
func allowedChars(expr string) bool {
	for _, r := range expr {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '*' || r == '/':
		case r == '(' || r == ')' || r == '.' || r == ' ':
		default:
			return false
		}
	}
	return true
}
