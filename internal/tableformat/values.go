package tableformat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"sqlpad/internal/domain"
)

// Layouts for time values returned by the driver. Midnight values print as
// a bare date, which is how SQLite date columns are usually stored.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05.999999999"
)

// Stringify converts a scanned column value to its cell text. Floats use the
// shortest form that reads back to the same value.
func Stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		// never print binary payloads, even if a caller forgot to replace them
		return domain.BlobPlaceholder
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return shortestFloat(x)
	case float32:
		return shortestFloat(float64(x))
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return formatTime(x)
	default:
		return fmt.Sprint(x)
	}
}

// formatReal renders a value of a column holding floats with six
// significant digits.
func formatReal(v interface{}) string {
	x, ok := toFloat(v)
	if !ok {
		return Stringify(v)
	}
	if s, special := nonFinite(x); special {
		return s
	}
	return strconv.FormatFloat(x, 'g', 6, 64)
}

// shortestFloat switches to exponent notation below 1e-4 and from 1e16 on,
// and always keeps a decimal point in fixed notation.
func shortestFloat(x float64) string {
	if s, special := nonFinite(x); special {
		return s
	}
	e := strconv.FormatFloat(x, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.LastIndexByte(e, 'e')+1:])
	if err == nil && x != 0 && (exp < -4 || exp >= 16) {
		return e
	}
	f := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(f, ".") {
		f += ".0"
	}
	return f
}

func nonFinite(x float64) (string, bool) {
	switch {
	case math.IsNaN(x):
		return "nan", true
	case math.IsInf(x, 1):
		return "inf", true
	case math.IsInf(x, -1):
		return "-inf", true
	}
	return "", false
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(DateTimeLayout)
}

// decimals counts the characters after the decimal point (or the exponent
// marker) of a formatted number. Integers and non-numbers yield -1.
func decimals(s string) int {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return -1
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return -1
	}
	pos := strings.LastIndexByte(s, '.')
	if pos < 0 {
		pos = strings.LastIndexAny(s, "eE")
	}
	if pos < 0 {
		return -1
	}
	return len(s) - pos - 1
}

type columnKind int

const (
	kindEmpty columnKind = iota
	kindInteger
	kindReal
	kindText
)

// widen returns the kind of a column that has kind k and also holds v.
func (k columnKind) widen(v interface{}) columnKind {
	var vk columnKind
	switch v.(type) {
	case nil:
		return k
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		vk = kindInteger
	case float32, float64:
		vk = kindReal
	default:
		vk = kindText
	}
	return max(k, vk)
}

func (k columnKind) numeric() bool {
	return k == kindInteger || k == kindReal
}

func (k columnKind) format(v interface{}) string {
	if k == kindReal && v != nil {
		return formatReal(v)
	}
	return Stringify(v)
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}
