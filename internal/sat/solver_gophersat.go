package sat

import (
	"github.com/crillab/gophersat/solver"
)

// gophersatSolver runs gophersat in-process, so the pipeline works
// without any solver binary installed.
type gophersatSolver struct{}

func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (g *gophersatSolver) Solve(instance SAT) (SATSolution, error) {
	cnf := make([][]int, len(instance.Clauses))
	for i, clause := range instance.Clauses {
		cnf[i] = make([]int, len(clause))
		for j, literal := range clause {
			cnf[i][j] = int(literal)
		}
	}
	// ParseSlice sizes the problem by the largest literal it sees, so pad
	// with a tautology covering any trailing unconstrained variables.
	if instance.Variables > 0 {
		last := int(instance.Variables)
		cnf = append(cnf, []int{last, -last})
	}

	s := solver.New(solver.ParseSlice(cnf))
	if s.Solve() != solver.Sat {
		return nil, nil
	}

	model := s.Model()
	solution := make(SATSolution, 0, len(model))
	for i, value := range model {
		literal := int64(i + 1)
		if !value {
			literal = -literal
		}
		solution = append(solution, literal)
	}
	return solution, nil
}
