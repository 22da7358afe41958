// Базовые типы — универсальный язык общения с моделями.
package llm

// Role — роль участника диалога.
type Role string

// Константы ролей (совпадают с форматом Chat Completions API).
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message — одно сообщение диалога.
//
// Универсальный формат: провайдеры конвертируют его в свой SDK формат.
// Для tool-сценариев используются дополнительные поля:
//   - ToolCalls  — заполнено в assistant сообщении, если модель запросила инструменты
//   - ToolCallID — заполнено в tool сообщении (correlation id запроса)
//   - Name       — имя инструмента в tool сообщении
type Message struct {
	Role       Role
	Content    string
	Name       string
	ToolCallID string
	ToolCalls  []ToolCall
}

// ToolCall — запрос модели на вызов инструмента.
//
// ID — непрозрачный correlation id, выдаётся API. Args — сырой JSON
// с аргументами ровно в том виде, в котором его прислала модель.
type ToolCall struct {
	ID   string
	Name string
	Args string
}

// ValidRole проверяет что роль входит в известный набор.
func ValidRole(r Role) bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	}
	return false
}
