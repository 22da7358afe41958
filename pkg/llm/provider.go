// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider — абстракция над LLM API.
//
// Rule 4: всё приложение работает только через этот интерфейс,
// конкретные реализации (OpenAI-совместимые API) скрыты за ним.
//
// Rule 11: Generate уважает context.Context и прерывает запрос при отмене.
type Provider interface {
	// Generate принимает историю сообщений и опции генерации.
	// Возвращает ответ модели в унифицированном формате Message.
	//
	// Если через WithTools переданы определения инструментов, провайдер
	// включает Function Calling с tool_choice=auto и извлекает ToolCalls
	// из ответа. Ошибка API возвращается как есть — без retry.
	Generate(ctx context.Context, messages []Message, opts ...GenerateOption) (Message, error)
}
