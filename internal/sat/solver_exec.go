package sat

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// execSolver shells out to a DIMACS-speaking solver binary, feeding the
// instance through its standard input.
type execSolver struct {
	path string
	args []string
}

func NewKissatSolver() SATSolver {
	return &execSolver{path: "kissat", args: []string{"-q", "--relaxed"}}
}

func NewCadicalSolver() SATSolver {
	return &execSolver{path: "cadical", args: []string{"-q"}}
}

func (solver *execSolver) Solve(instance SAT) (SATSolution, error) {
	cmd := exec.Command(solver.path, solver.args...)
	cmd.Stdin = strings.NewReader(instance.ToDIMACS())

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	if err != nil && cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		return nil, fmt.Errorf("an error occurred during %v execution: %v : %v", solver.path, err.Error(), stderr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		return nil, nil
	}

	return ParseSolution(stdOut.String()), nil
}
