// Math-eval — утилита для ручной проверки math инструмента.
//
// Выполняет инструмент напрямую, без LLM и без API ключа.
//
// Использование:
//
//	go run cmd/math-eval/main.go eval "2 + 3 * 4"
//	go run cmd/math-eval/main.go sqrt 2
//	go run cmd/math-eval/main.go factorial 100
package main

import (
	"fmt"
	"os"

	"github.com/ilkoid/riddle-ai/pkg/tools/std"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: math-eval <eval|sqrt|factorial> <expression>")
		os.Exit(1)
	}

	result := std.Evaluate(std.MathRequest{
		Mode:       os.Args[1],
		Expression: os.Args[2],
	})
	fmt.Println(result)
}
