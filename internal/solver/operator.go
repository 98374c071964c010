package solver

import (
	"fmt"
	"strings"
)

// Operator is a binary combination rule applied between consecutive operands.
type Operator uint8

const (
	Add Operator = iota + 1
	Multiply
	Concatenate
)

const maxOperators = 3

var operatorSymbols = map[Operator]string{
	Add:         "+",
	Multiply:    "*",
	Concatenate: "||",
}

var operatorAliases = map[string]Operator{
	"+":      Add,
	"add":    Add,
	"*":      Multiply,
	"mul":    Multiply,
	"||":     Concatenate,
	"concat": Concatenate,
}

// DefaultOperators returns the full operator set in traversal order.
func DefaultOperators() []Operator {
	return []Operator{Add, Multiply, Concatenate}
}

func (op Operator) String() string {
	if s, ok := operatorSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", uint8(op))
}

// Apply combines acc with operand, reporting ErrOverflow instead of wrapping.
func (op Operator) Apply(acc, operand int64) (int64, error) {
	switch op {
	case Add:
		return checkedAdd(acc, operand)
	case Multiply:
		return checkedMul(acc, operand)
	case Concatenate:
		return Concat(acc, operand)
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidOperators, op)
	}
}

// ParseOperator resolves a symbol (+, *, ||) or name (add, mul, concat).
func ParseOperator(raw string) (Operator, error) {
	op, ok := operatorAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown operator %q", ErrInvalidOperators, raw)
	}
	return op, nil
}

// ParseOperators parses a comma-separated operator list such as "+,*,||".
func ParseOperators(raw string) ([]Operator, error) {
	parts := strings.Split(raw, ",")
	ops := make([]Operator, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		op, err := ParseOperator(part)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return NormalizeOperators(ops)
}

// NormalizeOperators drops duplicates while keeping the first occurrence of
// each operator, so the caller's traversal order is preserved.
func NormalizeOperators(ops []Operator) ([]Operator, error) {
	if len(ops) == 0 {
		return nil, ErrInvalidOperators
	}

	seen := make(map[Operator]struct{}, maxOperators)
	out := make([]Operator, 0, maxOperators)
	for _, op := range ops {
		if _, ok := operatorSymbols[op]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOperators, op)
		}
		if _, dup := seen[op]; dup {
			continue
		}
		seen[op] = struct{}{}
		out = append(out, op)
	}
	return out, nil
}

// FormatOperators renders ops back into the comma-separated form ParseOperators accepts.
func FormatOperators(ops []Operator) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, ",")
}
