package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eugenenazirov/calibration-solver/internal/solver"
)

const maxLineLength = 1 << 20

// ErrNegative is returned for values carrying a minus sign.
var ErrNegative = errors.New("negative values are not supported")

// ParseError identifies the input line that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Dataset holds the records read from an input resource.
type Dataset struct {
	Records []solver.Record
	// Skipped lists the 1-based line numbers that did not have the
	// "target: operands" shape. Blank lines are not reported.
	Skipped []int
}

// LoadFile reads records from path, decompressing .gz, .zst and .lz4 files.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	r, closeReader, err := newReader(path, f)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer closeReader()

	return Load(r)
}

// Load parses "target: n1 n2 ..." lines from r.
// Lines without that shape are skipped; a line with the right shape but a
// non-numeric or negative value aborts the load with a *ParseError.
func Load(r io.Reader) (*Dataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	ds := &Dataset{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, ok, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		if !ok {
			ds.Skipped = append(ds.Skipped, lineNo)
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return ds, nil
}

func parseLine(line string) (solver.Record, bool, error) {
	head, tail, found := strings.Cut(line, ":")
	if !found || strings.Contains(tail, ":") {
		return solver.Record{}, false, nil
	}
	head = strings.TrimSpace(head)
	fields := strings.Fields(tail)
	if head == "" || len(fields) == 0 {
		return solver.Record{}, false, nil
	}

	target, err := parseValue(head)
	if err != nil {
		return solver.Record{}, false, fmt.Errorf("target: %w", err)
	}

	operands := make([]int64, 0, len(fields))
	for i, field := range fields {
		value, err := parseValue(field)
		if err != nil {
			return solver.Record{}, false, fmt.Errorf("operand %d: %w", i+1, err)
		}
		operands = append(operands, value)
	}

	return solver.Record{Target: target, Operands: operands}, true, nil
}

func parseValue(raw string) (int64, error) {
	if strings.HasPrefix(raw, "-") {
		return 0, fmt.Errorf("%q: %w", raw, ErrNegative)
	}
	// ParseInt accepts a leading '+'; the input format has unsigned decimals only.
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, &strconv.NumError{Func: "ParseInt", Num: raw, Err: strconv.ErrSyntax}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return value, nil
}
