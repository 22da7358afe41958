// Рекурсивный спуск для четырёх-операторной арифметики.
//
// Сознательно НЕ используется общий вычислитель выражений за символьным
// фильтром: фильтр — не граница безопасности. Узкий парсер структурно
// не умеет ничего кроме чисел, + - * /, скобок и унарного знака, поэтому
// для всех разрешённых выражений результат совпадает, а неожиданных
// побочных эффектов не существует по построению.
package std

import (
	"fmt"
	"strconv"
	"strings"
)

// Грамматика:
//
//	expr    = term  { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = { "+" | "-" } primary
//	primary = number | "(" expr ")"
//
// Приоритет: * и / связывают сильнее + и -, скобки переопределяют.
// Деление всегда с плавающей точкой; деление на ноль — ошибка.
type exprParser struct {
	input []rune
	pos   int
}

// evalArithmetic вычисляет выражение и форматирует результат.
//
// Целые результаты печатаются без десятичной точки ("14", "20"),
// дробные — кратчайшей формой ("2.5").
func evalArithmetic(expr string) (string, error) {
	p := &exprParser{input: []rune(expr)}

	val, err := p.parseExpr()
	if err != nil {
		return "", err
	}

	p.skipSpaces()
	if p.pos != len(p.input) {
		return "", fmt.Errorf("invalid expression")
	}

	return strconv.FormatFloat(val, 'g', -1, 64), nil
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpaces()
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return left, nil
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpaces()
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/') {
			return left, nil
		}
		p.pos++

		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpaces()

	sign := 1.0
	for {
		r, ok := p.peek()
		if !ok || (r != '+' && r != '-') {
			break
		}
		if r == '-' {
			sign = -sign
		}
		p.pos++
		p.skipSpaces()
	}

	val, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	return sign * val, nil
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpaces()

	r, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("invalid expression")
	}

	// Скобочная группа
	if r == '(' {
		p.pos++
		val, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if close, ok := p.peek(); !ok || close != ')' {
			return 0, fmt.Errorf("invalid expression")
		}
		p.pos++
		return val, nil
	}

	// Числовой литерал: цифры и точка
	start := p.pos
	for {
		r, ok := p.peek()
		if !ok || !(r >= '0' && r <= '9' || r == '.') {
			break
		}
		p.pos++
	}
	token := string(p.input[start:p.pos])
	if token == "" || strings.Count(token, ".") > 1 {
		return 0, fmt.Errorf("invalid expression")
	}

	val, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expression")
	}
	return val, nil
}

func (p *exprParser) peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
