package dpll

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseDIMACS reads a DIMACS-style CNF formula from r.
//
// Blank lines and lines starting with 'c' or '%' are comments. The first
// non-comment line must be a problem line "p cnf N M" declaring the
// variable count N and the clause count M; every other line is a clause of
// whitespace-separated nonzero integers, optionally terminated by a
// literal 0 (the clause always ends at line end regardless). A standalone
// line "0" or end of input stops ingest.
//
// When dedup is true, duplicate clauses (equal modulo literal order) are
// dropped before the declared clause count is checked. Ingest is rejected
// if N or M is non-positive, if any literal's magnitude exceeds N, or if
// the number of clauses accepted (after dedup, if enabled) does not equal
// M.
func ParseDIMACS(r io.Reader, dedup bool) (n int, clauses [][]int, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	headerSeen := false
	var declaredN, declaredM int

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") || strings.HasPrefix(line, "%") {
			continue
		}
		if line == "0" {
			break
		}

		fields := strings.Fields(line)
		if fields[0] == "p" {
			if headerSeen {
				return 0, nil, &InputParseError{Line: lineNo, Detail: "multiple problem lines"}
			}
			if len(clauses) > 0 {
				return 0, nil, &InputParseError{Line: lineNo, Detail: "problem line appears after clauses"}
			}
			declaredN, declaredM, err = parseHeaderFields(fields)
			if err != nil {
				return 0, nil, &InputParseError{Line: lineNo, Detail: err.Error()}
			}
			headerSeen = true
			continue
		}

		if !headerSeen {
			return 0, nil, &InputParseError{Line: lineNo, Detail: "clause appears before problem line"}
		}

		clause, err := parseClauseFields(fields, declaredN)
		if err != nil {
			if _, ok := err.(*DomainError); ok {
				return 0, nil, err
			}
			return 0, nil, &InputParseError{Line: lineNo, Detail: err.Error()}
		}
		clauses = append(clauses, clause)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return 0, nil, errors.Wrap(scanErr, "dpll: reading dimacs input")
	}
	if !headerSeen {
		return 0, nil, &InputParseError{Line: lineNo, Detail: "missing problem line"}
	}
	if declaredN <= 0 || declaredM <= 0 {
		return 0, nil, &DomainError{Detail: "variable and clause counts must be positive"}
	}

	if dedup {
		clauses = DedupClauses(clauses)
	}
	if len(clauses) != declaredM {
		return 0, nil, &InputParseError{
			Line:   lineNo,
			Detail: fmt.Sprintf("problem line declares %d clauses, but %d were accepted", declaredM, len(clauses)),
		}
	}
	return declaredN, clauses, nil
}

func parseHeaderFields(fields []string) (n, m int, err error) {
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("malformed problem line %q", strings.Join(fields, " "))
	}
	if fields[1] != "cnf" {
		return 0, 0, fmt.Errorf("only cnf format supported, got %q", fields[1])
	}
	n, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed variable count: %s", err)
	}
	m, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clause count: %s", err)
	}
	return n, m, nil
}

func parseClauseFields(fields []string, n int) ([]int, error) {
	var clause []int
	for _, f := range fields {
		lit, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q: %s", f, err)
		}
		if lit == 0 {
			break
		}
		if Var(lit) > n {
			return nil, &DomainError{Detail: fmt.Sprintf("literal %d exceeds declared variable count %d", lit, n)}
		}
		clause = append(clause, lit)
	}
	return clause, nil
}

// WriteDIMACS writes clauses over n variables back out in DIMACS CNF
// format, including the problem line and a trailing 0 on every clause.
func WriteDIMACS(w io.Writer, n int, clauses [][]int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", n, len(clauses)); err != nil {
		return err
	}
	for _, c := range clauses {
		var b strings.Builder
		for _, lit := range c {
			fmt.Fprintf(&b, "%d ", lit)
		}
		b.WriteString("0\n")
		if _, err := bw.WriteString(b.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
