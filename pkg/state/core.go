// Package state предоставляет thread-safe core состояние агента.
//
// CoreState содержит:
//   - Конфигурацию приложения
//   - Реестр инструментов (tools registry)
//   - Историю диалога (append-only журнал ходов)
//
// Rule 5: доступ к истории через sync.RWMutex, никаких глобальных переменных.
// Rule 6: library code без зависимостей от internal/.
// Rule 7: все ошибки возвращаются, никаких panic в бизнес-логике.
package state

import (
	"fmt"
	"sync"

	"github.com/ilkoid/riddle-ai/pkg/config"
	"github.com/ilkoid/riddle-ai/pkg/llm"
	"github.com/ilkoid/riddle-ai/pkg/tools"
)

// CoreState — состояние одной агентской сессии.
//
// История — append-only: ходы только добавляются, прошлые ходы не
// мутируются и не удаляются, порядок вставки семантически значим
// (он дословно восстанавливает контекст для каждого запроса к модели).
// Не персистится: живёт ровно столько, сколько живёт агент.
type CoreState struct {
	// Config — конфигурация приложения (Rule 2)
	Config *config.AppConfig

	// ToolsRegistry — реестр инструментов (Rule 3)
	ToolsRegistry *tools.Registry

	// mu защищает history (Rule 5)
	mu sync.RWMutex

	// history — хронология диалога (User <-> Agent).
	// Сюда НЕ попадают промежуточные tool-result ходы — только то,
	// что должно пережить один вызов Solve.
	history []llm.Message
}

// NewCoreState создает новое thread-safe core состояние.
func NewCoreState(cfg *config.AppConfig, registry *tools.Registry) *CoreState {
	return &CoreState{
		Config:        cfg,
		ToolsRegistry: registry,
		history:       make([]llm.Message, 0),
	}
}

// AddTurn добавляет ход в историю диалога.
//
// Единственная валидация — роль должна входить в известный набор.
//
// Rule 7: возвращает ошибку вместо panic.
func (s *CoreState) AddTurn(role llm.Role, content string) error {
	if !llm.ValidRole(role) {
		return fmt.Errorf("unknown role: %q", role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, llm.Message{Role: role, Content: content})
	return nil
}

// History возвращает снимок истории в порядке вставки.
//
// Возвращается копия: вызывающий не может алиасить внутренний буфер.
// Повторные вызовы дают одинаковый результат (чтение не потребляет буфер).
func (s *CoreState) History() []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]llm.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Len возвращает количество ходов в истории.
func (s *CoreState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}
