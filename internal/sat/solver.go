package sat

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type SATSolver interface {
	Solve(SAT) (SATSolution, error) // Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
}

// ParseSolution extracts a solution from the "v"-prefixed value lines
// printed by DIMACS-conforming solvers such as kissat and cadical.
func ParseSolution(solverOutput string) SATSolution {
	values := lo.Map(
		lo.Reduce(
			lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
				return len(line) > 1 && line[0] == 'v'
			}),
			func(values []string, line string, _ int) []string {
				return append(values, strings.Fields(line[2:])...)
			},
			[]string{},
		),
		func(valueStr string, _ int) int64 {
			value, err := strconv.ParseInt(valueStr, 10, 64)
			if err != nil {
				log.Panicf("invalid literal in solver output: %v", err)
			}
			return value
		},
	)

	if len(values) == 0 {
		return SATSolution{}
	}
	// Value lines end with a single 0 terminator
	if values[len(values)-1] == 0 {
		values = values[:len(values)-1]
	}
	return values
}

// ParseSolutionFile interprets the assignment-style solver output consumed
// by the decode step: a first line reading SAT or UNSAT, followed (in the
// SAT case) by whitespace-separated signed literals. It returns nil on
// UNSAT and an error on anything it cannot interpret.
func ParseSolutionFile(content string) (SATSolution, error) {
	lines := lo.Filter(strings.Split(content, "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty solver output")
	}

	verdict := strings.ToUpper(strings.TrimSpace(lines[0]))
	switch verdict {
	case "UNSAT", "UNSATISFIABLE":
		return nil, nil
	case "SAT", "SATISFIABLE":
	default:
		return nil, fmt.Errorf("solver output must start with SAT or UNSAT, got %q", lines[0])
	}

	solution := SATSolution{}
	for _, line := range lines[1:] {
		for _, token := range strings.Fields(line) {
			value, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid literal %q in solver output: %v", token, err)
			}
			if value != 0 { // 0 is the assignment terminator
				solution = append(solution, value)
			}
		}
	}
	return solution, nil
}
