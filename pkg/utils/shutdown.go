// Вспомогательные функции для graceful shutdown.
package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupGracefulShutdown устанавливает обработчик SIGINT/SIGTERM.
//
// При получении сигнала отменяет контекст — текущий запрос к API
// прерывается через context, без принудительного os.Exit.
//
// Использование:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer SetupGracefulShutdown(cancel)()
//
// Возвращает функцию освобождения ресурсов (снимает подписку на сигналы).
func SetupGracefulShutdown(cancel context.CancelFunc) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		Info("Received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
	}
}
