package std

import (
	"context"
	"strings"
	"testing"
)

// TestEvaluateSqrt тестирует режим sqrt.
func TestEvaluateSqrt(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"perfect square", "4", "2"},
		{"irrational", "2", "1.4142135623730951"},
		{"zero", "0", "0"},
		{"float input", "6.25", "2.5"},
		{"negative is domain error", "-1", "Error: math domain error"},
		{"not a number", "abc", "Error: could not parse 'abc' as number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(MathRequest{Expression: tt.expr, Mode: "sqrt"})
			if got != tt.want {
				t.Errorf("sqrt(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

// TestEvaluateFactorial тестирует режим factorial.
func TestEvaluateFactorial(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"zero", "0", "1"},
		{"one", "1", "1"},
		{"small", "5", "120"},
		{"needs big int", "20", "2432902008176640000"},
		{"exceeds int64", "21", "51090942171709440000"},
		{"negative out of range", "-1", "Error: n out of range"},
		{"too large out of range", "10001", "Error: n out of range"},
		{"non-integer", "3.5", "Error: could not parse '3.5' as integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(MathRequest{Expression: tt.expr, Mode: "factorial"})
			if got != tt.want {
				t.Errorf("factorial(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

// TestEvaluateFactorialBoundary проверяет верхнюю границу 10000.
func TestEvaluateFactorialBoundary(t *testing.T) {
	got := Evaluate(MathRequest{Expression: "10000", Mode: "factorial"})
	if strings.HasPrefix(got, "Error") {
		t.Fatalf("factorial(10000) must succeed, got %q", got[:40])
	}
	// 10000! содержит 35660 десятичных цифр
	if len(got) != 35660 {
		t.Errorf("factorial(10000) has %d digits, want 35660", len(got))
	}
	// 100! начинается с 93326... и содержит 158 цифр
	got100 := Evaluate(MathRequest{Expression: "100", Mode: "factorial"})
	if len(got100) != 158 || !strings.HasPrefix(got100, "93326") {
		t.Errorf("factorial(100) = %.20s... (%d digits), want 93326... (158 digits)", got100, len(got100))
	}
}

// TestEvaluateEval тестирует арифметический режим.
func TestEvaluateEval(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"precedence", "2 + 3 * 4", "14"},
		{"parentheses", "(2+3)*4", "20"},
		{"float division", "10/4", "2.5"},
		{"nested parens", "((1+2)*(3+4))", "21"},
		{"unary minus", "-5+10", "5"},
		{"double unary", "--5", "5"},
		{"decimal literal", "0.5 * 4", "2"},
		{"division by zero", "1/0", "Error: division by zero"},
		{"letters disallowed", "2+a", "Error: disallowed characters"},
		{"power disallowed", "2^3", "Error: disallowed characters"},
		{"call shape cannot parse", "2**3", "Error: invalid expression"},
		{"unbalanced paren", "(2+3", "Error: invalid expression"},
		{"trailing operator", "2+", "Error: invalid expression"},
		{"empty expression", "", "Error: invalid expression"},
		{"double dot", "1..2", "Error: invalid expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(MathRequest{Expression: tt.expr, Mode: "eval"})
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

// TestEvaluateUnknownMode проверяет реакцию на неизвестный режим.
func TestEvaluateUnknownMode(t *testing.T) {
	got := Evaluate(MathRequest{Expression: "2+2", Mode: "divide"})
	if got != "Error: unknown mode" {
		t.Errorf("unknown mode = %q, want %q", got, "Error: unknown mode")
	}
}

// TestMathToolExecute тестирует контракт "Raw In, String Out".
func TestMathToolExecute(t *testing.T) {
	tool := NewMathTool()
	ctx := context.Background()

	// Успешный вызов
	got, err := tool.Execute(ctx, `{"expression": "2 + 3 * 4", "mode": "eval"}`)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got != "14" {
		t.Errorf("Execute = %q, want %q", got, "14")
	}

	// Поломанный JSON не роняет инструмент — становится текстом ошибки
	got, err = tool.Execute(ctx, `{not json`)
	if err != nil {
		t.Fatalf("Execute must not return error on bad args, got: %v", err)
	}
	if !strings.HasPrefix(got, "Error: invalid arguments") {
		t.Errorf("Execute on bad args = %q, want Error: invalid arguments...", got)
	}
}

// TestMathToolDefinition проверяет схему для Function Calling.
func TestMathToolDefinition(t *testing.T) {
	def := NewMathTool().Definition()

	if def.Name != "evaluate_math" {
		t.Errorf("name = %q, want evaluate_math", def.Name)
	}
	if def.Parameters["type"] != "object" {
		t.Errorf("parameters.type = %v, want object", def.Parameters["type"])
	}

	props, ok := def.Parameters["properties"].(map[string]any)
	if !ok {
		t.Fatalf("parameters.properties is %T, want map", def.Parameters["properties"])
	}
	for _, field := range []string{"expression", "mode"} {
		if _, ok := props[field]; !ok {
			t.Errorf("parameters.properties missing %q", field)
		}
	}
}
