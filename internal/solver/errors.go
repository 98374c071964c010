package solver

import "errors"

var (
	// ErrEmptyOperands is returned when a record carries no operands at all.
	ErrEmptyOperands = errors.New("record must contain at least one operand")
	// ErrOverflow is returned when an intermediate value or the aggregated total does not fit in 64 bits.
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrNegativeOperand is returned when concatenation is asked to join a negative value.
	ErrNegativeOperand = errors.New("concatenation requires non-negative operands")
	// ErrInvalidOperators is returned when an operator set is empty or names an unknown operator.
	ErrInvalidOperators = errors.New("operators must name at least one of +, * or ||")
)
