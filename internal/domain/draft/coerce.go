package draft

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber interpreta el prefijo numérico más largo de s (tras espacios
// iniciales), igual que parseFloat en un navegador: "12abc" → 12, "1e3x" → 1000.
// Si no hay prefijo numérico, o el resultado no es finito, devuelve 0.
// El 0 sustituye al valor anterior; no es un rechazo.
func ParseNumber(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	prefix := numericPrefix(s)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// numericPrefix devuelve [signo] dígitos [. dígitos] [e [signo] dígitos]; "" si no hay dígitos en la mantisa.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := i - intStart
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		digits += j - i - 1
		if digits > 0 {
			i = j
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return strings.TrimSuffix(s[:i], ".")
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// CoerceNumber convierte un valor arbitrario (JSON, formulario, flag) a número.
// Los tipos numéricos pasan tal cual; los strings usan ParseNumber; el resto → 0.
func CoerceNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		return ParseNumber(n)
	case interface{ Float64() (float64, error) }: // json.Number
		x, err := n.Float64()
		if err != nil {
			return 0
		}
		f = x
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
