package solver

import (
	"fmt"
	"math"
)

// pow10 holds every power of ten representable as int64.
var pow10 = [...]int64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
	1_000_000_000, 10_000_000_000, 100_000_000_000, 1_000_000_000_000,
	10_000_000_000_000, 100_000_000_000_000, 1_000_000_000_000_000,
	10_000_000_000_000_000, 100_000_000_000_000_000, 1_000_000_000_000_000_000,
}

// Digits returns the number of decimal digits of a non-negative value; Digits(0) is 1.
func Digits(v int64) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}

// Concat joins the decimal representations of a and b, so Concat(12, 34) is 1234.
// It is computed as a*10^Digits(b) + b.
func Concat(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: %d || %d", ErrNegativeOperand, a, b)
	}
	if a == 0 {
		return b, nil
	}
	d := Digits(b)
	if d >= len(pow10) {
		return 0, fmt.Errorf("%w: %d || %d", ErrOverflow, a, b)
	}
	shifted, err := checkedMul(a, pow10[d])
	if err != nil {
		return 0, fmt.Errorf("%w: %d || %d", ErrOverflow, a, b)
	}
	out, err := checkedAdd(shifted, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %d || %d", ErrOverflow, a, b)
	}
	return out, nil
}

func checkedAdd(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return a + b, nil
}

func checkedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	out := a * b
	if out/b != a {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	return out, nil
}
