package filter

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Operator is the comparison a predicate applies.
type Operator int

const (
	Eq Operator = iota
	Ne
	Ge
	Le
	Gt
	Lt
	Contains
)

func (o Operator) String() string {
	switch o {
	case Eq:
		return "eq"
	case Ne:
		return "ne"
	case Ge:
		return "ge"
	case Le:
		return "le"
	case Gt:
		return "gt"
	case Lt:
		return "lt"
	case Contains:
		return "contains"
	default:
		return "unknown"
	}
}

// parseOperator splits an encoded value into its operator and operand.
// Order matters: two-character prefixes before their one-character prefixes.
func parseOperator(encoded string) (Operator, string) {
	switch {
	case strings.HasPrefix(encoded, "!"):
		return Ne, encoded[1:]
	case strings.HasPrefix(encoded, ">="):
		return Ge, encoded[2:]
	case strings.HasPrefix(encoded, "<="):
		return Le, encoded[2:]
	case strings.HasPrefix(encoded, ">"):
		return Gt, encoded[1:]
	case strings.HasPrefix(encoded, "<"):
		return Lt, encoded[1:]
	case len(encoded) >= 2 && strings.HasPrefix(encoded, "*") && strings.HasSuffix(encoded, "*"):
		return Contains, encoded[1 : len(encoded)-1]
	default:
		return Eq, encoded
	}
}

// evaluate applies op to a field value. present is false when the field is
// missing or null.
func evaluate(op Operator, operand string, value any, present bool) bool {
	if !present {
		return op == Ne
	}

	switch op {
	case Eq:
		return equals(value, operand)
	case Ne:
		return !equals(value, operand)
	case Contains:
		return strings.Contains(strings.ToLower(stringify(value)), strings.ToLower(operand))
	case Ge:
		return compare(value, operand) >= 0
	case Le:
		return compare(value, operand) <= 0
	case Gt:
		return compare(value, operand) > 0
	case Lt:
		return compare(value, operand) < 0
	default:
		return false
	}
}

// equals compares using the field's JSON type where the operand can be read
// as that type, and falls back to string equality.
func equals(value any, operand string) bool {
	switch v := value.(type) {
	case bool:
		if b, err := strconv.ParseBool(operand); err == nil {
			return v == b
		}
	case float64, int, int64, json.Number:
		if f, ok := toNumber(v); ok {
			if o, err := strconv.ParseFloat(operand, 64); err == nil {
				return f == o
			}
		}
	}
	return stringify(value) == operand
}

// compare returns -1, 0 or 1. Numeric when both sides are numbers.
func compare(value any, operand string) int {
	if f, ok := toNumber(value); ok {
		if o, err := strconv.ParseFloat(strings.TrimSpace(operand), 64); err == nil {
			switch {
			case f < o:
				return -1
			case f > o:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(stringify(value), operand)
}

// toNumber reads JSON numbers and numeric strings.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
