// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of the solver, the input loader and the run
// loop that turns a dataset into a report, making the main package cleaner
// and more focused on CLI parsing and orchestration.
package application
