package sat

import (
	"fmt"
	"io"
	"strings"
)

// SATSolution holds one signed literal per variable: positive if the
// variable is true in the model, negative if false.
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	s.WriteDIMACS(&builder)
	return builder.String()
}

// WriteDIMACS emits the instance in DIMACS-CNF form with 0-terminated clauses.
func (s SAT) WriteDIMACS(w io.Writer) {
	fmt.Fprintf(w, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(w, "%d ", literal)
		}
		io.WriteString(w, "0\n")
	}
}
