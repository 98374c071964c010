package solver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type dfsSolver struct {
	operators []Operator
	prune     bool
}

// Option configures a Solver built by New.
type Option func(*dfsSolver)

// WithOperators sets the operators tried at every gap, in traversal order.
// Invalid or empty sets are ignored; validate them with NormalizeOperators first.
func WithOperators(ops ...Operator) Option {
	return func(s *dfsSolver) {
		if normalized, err := NormalizeOperators(ops); err == nil {
			s.operators = normalized
		}
	}
}

// WithPruning controls whether branches whose running value already exceeds
// the target are abandoned early.
func WithPruning(enabled bool) Option {
	return func(s *dfsSolver) {
		s.prune = enabled
	}
}

// New creates a Solver that runs a depth-first search over operator assignments.
func New(opts ...Option) Solver {
	s := &dfsSolver{
		operators: DefaultOperators(),
		prune:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *dfsSolver) Solve(rec Record) (bool, error) {
	_, ok, err := s.Find(rec)
	return ok, err
}

func (s *dfsSolver) Find(rec Record) ([]Operator, bool, error) {
	if len(rec.Operands) == 0 {
		return nil, false, ErrEmptyOperands
	}

	// Multiplying by zero can shrink the running value. From monotoneFrom on
	// every remaining operand is positive, so the running value never drops.
	monotoneFrom := 1
	for i := len(rec.Operands) - 1; i >= 1; i-- {
		if rec.Operands[i] == 0 {
			monotoneFrom = i + 1
			break
		}
	}

	path := make([]Operator, len(rec.Operands)-1)
	ok, err := s.search(rec, 1, rec.Operands[0], monotoneFrom, path)
	if err != nil {
		return nil, false, fmt.Errorf("target %d: %w", rec.Target, err)
	}
	if !ok {
		return nil, false, nil
	}
	return path, true, nil
}

func (s *dfsSolver) search(rec Record, idx int, acc int64, monotoneFrom int, path []Operator) (bool, error) {
	if idx == len(rec.Operands) {
		return acc == rec.Target, nil
	}
	if s.prune && idx >= monotoneFrom && acc > rec.Target {
		return false, nil
	}

	operand := rec.Operands[idx]
	for _, op := range s.operators {
		next, err := op.Apply(acc, operand)
		if err != nil {
			// An overflowed value already exceeds every int64 target and
			// cannot come back down unless a later operand is zero.
			if errors.Is(err, ErrOverflow) && idx+1 >= monotoneFrom {
				continue
			}
			return false, err
		}
		path[idx-1] = op
		ok, err := s.search(rec, idx+1, next, monotoneFrom, path)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// Evaluate applies ops left to right over operands with no precedence.
func Evaluate(operands []int64, ops []Operator) (int64, error) {
	if len(operands) == 0 {
		return 0, ErrEmptyOperands
	}
	if len(ops) != len(operands)-1 {
		return 0, fmt.Errorf("expected %d operators for %d operands, got %d", len(operands)-1, len(operands), len(ops))
	}

	acc := operands[0]
	for i, op := range ops {
		next, err := op.Apply(acc, operands[i+1])
		if err != nil {
			return 0, err
		}
		acc = next
	}
	return acc, nil
}

// Equation renders a solved record, e.g. "3267 = 81 + 40 * 27".
func Equation(rec Record, ops []Operator) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(rec.Target, 10))
	b.WriteString(" =")
	for i, operand := range rec.Operands {
		if i > 0 && i-1 < len(ops) {
			b.WriteByte(' ')
			b.WriteString(ops[i-1].String())
		}
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(operand, 10))
	}
	return b.String()
}
