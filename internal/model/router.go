package model

import (
	"github.com/lgarciap/metroline/internal/sat"
)

// Router is the library face of the pipeline: encode the problem, hand
// the CNF to the solver, decode the model back into per-line paths.
type Router interface {
	// Build returns an infeasible Solution when the instance is
	// unsatisfiable; errors are reserved for solver failures and decode
	// inconsistencies.
	Build(problem Problem) (Solution, error)

	// Verify re-checks a solution against the problem through the
	// independent verifier.
	Verify(problem Problem, solution Solution) bool
}

func NewRouter(solver sat.SATSolver) Router {
	return &satRouter{
		encoder: NewEncoder(),
		decoder: NewDecoder(),
		solver:  solver,
	}
}

type satRouter struct {
	encoder Encoder
	decoder Decoder
	solver  sat.SATSolver
}

func (router *satRouter) Build(problem Problem) (Solution, error) {
	satInstance, varMap, err := router.encoder.Encode(problem)
	if err != nil {
		return Solution{}, err
	}

	solution, err := router.solver.Solve(satInstance)
	if err != nil {
		return Solution{}, err
	}

	return router.decoder.Decode(varMap, solution)
}

func (router *satRouter) Verify(problem Problem, solution Solution) bool {
	if !solution.Feasible {
		return false
	}
	return Verify(problem, solution.Paths).Valid
}
