package filter

import (
	"fmt"
	"strings"
)

const (
	// lengthSelector addresses the element count of an array field.
	lengthSelector = "length"

	maxPredicates = 50
	maxValueSize  = 1024
)

// Predicate is one parsed path/operator/operand triple.
type Predicate struct {
	Path     string
	Operator Operator
	Operand  string

	field    string
	subfield string
	nested   bool
}

// Spec is an ordered, conjunctive list of predicates. The zero value matches everything.
type Spec []Predicate

// Parse builds a Spec from comma-separated value types and values, as accepted
// by the list tools. Both empty yields an empty Spec.
func Parse(valueType, value string) (Spec, error) {
	if strings.TrimSpace(valueType) == "" && strings.TrimSpace(value) == "" {
		return nil, nil
	}
	return New(splitList(valueType), splitList(value))
}

// New builds a Spec from parallel path and value lists.
func New(paths, values []string) (Spec, error) {
	if len(paths) != len(values) {
		return nil, &Error{
			Reason: fmt.Sprintf("got %d value types but %d values", len(paths), len(values)),
			Err:    ErrInvalidArguments,
		}
	}
	if len(paths) > maxPredicates {
		return nil, &Error{
			Reason: fmt.Sprintf("too many filter criteria: %d (maximum allowed: %d)", len(paths), maxPredicates),
			Err:    ErrInvalidArguments,
		}
	}

	spec := make(Spec, 0, len(paths))
	for i, path := range paths {
		p, err := newPredicate(path, values[i])
		if err != nil {
			return nil, err
		}
		spec = append(spec, p)
	}
	return spec, nil
}

func newPredicate(path, encoded string) (Predicate, error) {
	if len(encoded) > maxValueSize {
		return Predicate{}, &Error{
			Path:   path,
			Reason: fmt.Sprintf("filter value too large: %d bytes (maximum allowed: %d)", len(encoded), maxValueSize),
			Err:    ErrInvalidArguments,
		}
	}

	parts := strings.Split(path, ".")
	switch {
	case path == "" || parts[0] == "":
		return Predicate{}, &Error{Path: path, Reason: "empty field name", Err: ErrInvalidFilterPath}
	case len(parts) > 2:
		return Predicate{}, &Error{Path: path, Reason: "only one level of nesting is supported", Err: ErrInvalidFilterPath}
	}

	op, operand := parseOperator(encoded)
	p := Predicate{
		Path:     path,
		Operator: op,
		Operand:  operand,
		field:    parts[0],
	}
	if len(parts) == 2 {
		p.nested = true
		p.subfield = parts[1]
	}
	return p, nil
}

// Apply returns the records matching every predicate in spec, preserving order.
// An empty spec returns records unchanged.
func Apply(records []map[string]any, spec Spec) []map[string]any {
	if len(spec) == 0 {
		return records
	}

	filtered := make([]map[string]any, 0, len(records))
	for _, record := range records {
		if spec.Matches(record) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// Matches reports whether record satisfies all predicates.
func (s Spec) Matches(record map[string]any) bool {
	for _, p := range s {
		if !p.Matches(record) {
			return false
		}
	}
	return true
}

// Matches reports whether record satisfies the predicate.
func (p Predicate) Matches(record map[string]any) bool {
	value, found := record[p.field]
	present := found && value != nil

	if !p.nested {
		if arr, ok := value.([]any); ok {
			return evaluate(p.Operator, p.Operand, float64(len(arr)), true)
		}
		return evaluate(p.Operator, p.Operand, value, present)
	}

	arr, ok := value.([]any)
	if !ok {
		return false
	}

	if p.subfield == "" || p.subfield == lengthSelector {
		return evaluate(p.Operator, p.Operand, float64(len(arr)), true)
	}

	for _, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		v, found := obj[p.subfield]
		if evaluate(p.Operator, p.Operand, v, found && v != nil) {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
