package tools

import (
	"context"
	"strings"
	"testing"
)

// stubTool — минимальный инструмент для тестов реестра.
type stubTool struct {
	def    ToolDefinition
	result string
}

func (s *stubTool) Definition() ToolDefinition { return s.def }

func (s *stubTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	return s.result, nil
}

func validDef(name string) ToolDefinition {
	return ToolDefinition{
		Name:        name,
		Description: "test tool",
		Parameters: JSONSchema{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// TestRegistryRegisterAndGet тестирует базовый цикл регистрации и поиска.
func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&stubTool{def: validDef("alpha")}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tool, err := r.Get("alpha")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if tool.Definition().Name != "alpha" {
		t.Errorf("got tool %q, want alpha", tool.Definition().Name)
	}

	if _, err := r.Get("missing"); err == nil {
		t.Error("Get on missing tool must return error")
	}
}

// TestRegistryOverwriteByName проверяет идемпотентность по имени.
func TestRegistryOverwriteByName(t *testing.T) {
	r := NewRegistry()

	first := &stubTool{def: validDef("dup"), result: "first"}
	second := &stubTool{def: validDef("dup"), result: "second"}

	if err := r.Register(first); err != nil {
		t.Fatalf("Register first: %v", err)
	}
	if err := r.Register(second); err != nil {
		t.Fatalf("Register second: %v", err)
	}

	tool, err := r.Get("dup")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got, _ := tool.Execute(context.Background(), "{}")
	if got != "second" {
		t.Errorf("re-registration must overwrite: got %q", got)
	}

	if len(r.Definitions()) != 1 {
		t.Errorf("registry has %d definitions, want 1", len(r.Definitions()))
	}
}

// TestRegistryValidation тестирует отказ на невалидных определениях.
func TestRegistryValidation(t *testing.T) {
	tests := []struct {
		name    string
		def     ToolDefinition
		wantErr string
	}{
		{
			name:    "empty name",
			def:     ToolDefinition{Parameters: JSONSchema{"type": "object"}},
			wantErr: "name cannot be empty",
		},
		{
			name:    "nil parameters",
			def:     ToolDefinition{Name: "x"},
			wantErr: "parameters cannot be nil",
		},
		{
			name:    "missing type",
			def:     ToolDefinition{Name: "x", Parameters: JSONSchema{"properties": map[string]any{}}},
			wantErr: "must have 'type' field",
		},
		{
			name:    "type not object",
			def:     ToolDefinition{Name: "x", Parameters: JSONSchema{"type": "array"}},
			wantErr: "must be 'object'",
		},
		{
			name: "required not strings",
			def: ToolDefinition{
				Name:       "x",
				Parameters: JSONSchema{"type": "object", "required": []any{1, 2}},
			},
			wantErr: "must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(&stubTool{def: tt.def})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

// TestRegistryDefinitionsOrder проверяет детерминированный порядок.
func TestRegistryDefinitionsOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(&stubTool{def: validDef(name)}); err != nil {
			t.Fatalf("Register %s: %v", name, err)
		}
	}

	defs := r.Definitions()
	want := []string{"alpha", "mid", "zeta"}
	for i, def := range defs {
		if def.Name != want[i] {
			t.Errorf("definitions[%d] = %q, want %q", i, def.Name, want[i])
		}
	}
}
