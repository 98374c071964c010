// Package loader reads calibration records ("target: n1 n2 ...") from plain
// or compressed text and hands them to the solver as solver.Record values.
package loader
