package solver

// Record pairs a calibration target with the ordered operands that must reach it.
// Operands always holds at least one value once a record leaves the loader.
type Record struct {
	Target   int64
	Operands []int64
}

// Solver describes the behaviour required from an equation solver.
type Solver interface {
	// Solve reports whether some operator assignment reaches the record target.
	Solve(rec Record) (bool, error)
	// Find returns the first operator assignment, in traversal order, that
	// reaches the record target.
	Find(rec Record) ([]Operator, bool, error)
}

// Summary aggregates the outcome of solving a batch of records.
type Summary struct {
	Records int
	Solved  int
	Total   int64
}
