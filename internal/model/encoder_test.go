package model

import (
	"strconv"
	"testing"

	"github.com/lgarciap/metroline/internal/sat"
	"github.com/stretchr/testify/assert"
)

func corridorProblem() Problem {
	return Problem{
		Scenario: 1,
		Grid:     Grid{N: 3, M: 1},
		J:        0,
		Lines:    []LineSpec{{Start: Cell{0, 0}, End: Cell{2, 0}}},
	}
}

func TestEncodeDeterminism(t *testing.T) {
	problem := Problem{
		Scenario: 2,
		Grid:     Grid{N: 4, M: 3},
		J:        2,
		Lines: []LineSpec{
			{Start: Cell{0, 0}, End: Cell{3, 0}},
			{Start: Cell{0, 2}, End: Cell{3, 2}},
		},
		Popular: []Cell{{1, 1}, {2, 2}},
	}

	first, firstMap, err := NewEncoder().Encode(problem)
	assert.Nil(t, err)
	second, secondMap, err := NewEncoder().Encode(problem)
	assert.Nil(t, err)

	assert.Equal(t, first.ToDIMACS(), second.ToDIMACS())
	assert.Equal(t, firstMap, secondMap)
}

func TestEncodeVariableUniverse(t *testing.T) {
	instance, varMap, err := NewEncoder().Encode(corridorProblem())
	assert.Nil(t, err)

	// Ids are dense from 1 and the mapping is a bijection
	assert.Equal(t, int(instance.Variables), len(varMap.VarToID))
	assert.Equal(t, len(varMap.VarToID), len(varMap.IDToVar))
	for name, id := range varMap.VarToID {
		assert.GreaterOrEqual(t, id, int64(1))
		assert.LessOrEqual(t, id, int64(instance.Variables))
		assert.Equal(t, name, varMap.IDToVar[strconv.FormatInt(id, 10)])
	}

	// Occupancy exists everywhere, turns only off the endpoints, edges
	// only toward in-grid destinations
	assert.Contains(t, varMap.VarToID, "L_0_0_0")
	assert.Contains(t, varMap.VarToID, "L_0_2_0")
	assert.Contains(t, varMap.VarToID, "T_0_1_0")
	assert.NotContains(t, varMap.VarToID, "T_0_0_0")
	assert.NotContains(t, varMap.VarToID, "T_0_2_0")
	assert.Contains(t, varMap.VarToID, "E_0_0_0_R")
	assert.NotContains(t, varMap.VarToID, "E_0_0_0_L")
	assert.NotContains(t, varMap.VarToID, "E_0_0_0_U")
	assert.NotContains(t, varMap.VarToID, "E_0_0_0_D")
	assert.Contains(t, varMap.VarToID, "S_0_1_0")
}

func TestEncodeValidation(t *testing.T) {
	t.Run("popular cell out of bounds", func(t *testing.T) {
		problem := Problem{
			Scenario: 2,
			Grid:     Grid{N: 3, M: 3},
			J:        1,
			Lines:    []LineSpec{{Start: Cell{0, 0}, End: Cell{2, 2}}},
			Popular:  []Cell{{3, 0}},
		}
		_, _, err := NewEncoder().Encode(problem)
		assert.ErrorContains(t, err, "popular cell")
	})

	t.Run("start equals end", func(t *testing.T) {
		problem := Problem{
			Scenario: 1,
			Grid:     Grid{N: 3, M: 3},
			Lines:    []LineSpec{{Start: Cell{1, 1}, End: Cell{1, 1}}},
		}
		_, _, err := NewEncoder().Encode(problem)
		assert.ErrorContains(t, err, "start equals end")
	})

	t.Run("shared endpoint between lines", func(t *testing.T) {
		problem := Problem{
			Scenario: 1,
			Grid:     Grid{N: 3, M: 3},
			Lines: []LineSpec{
				{Start: Cell{0, 0}, End: Cell{2, 2}},
				{Start: Cell{2, 2}, End: Cell{0, 2}},
			},
		}
		_, _, err := NewEncoder().Encode(problem)
		assert.NotNil(t, err)
	})

	t.Run("negative turn budget", func(t *testing.T) {
		problem := corridorProblem()
		problem.J = -1
		_, _, err := NewEncoder().Encode(problem)
		assert.ErrorContains(t, err, "turn budget")
	})
}

// The 3x1 corridor with J=0 admits exactly one arrangement: two steps to
// the right.
func TestCorridorForcesStraightPath(t *testing.T) {
	instance, varMap, err := NewEncoder().Encode(corridorProblem())
	assert.Nil(t, err)

	assignment, err := sat.NewGophersatSolver().Solve(instance)
	assert.Nil(t, err)
	assert.NotNil(t, assignment)

	solution, err := NewDecoder().Decode(varMap, assignment)
	assert.Nil(t, err)
	assert.True(t, solution.Feasible)
	assert.Equal(t, [][]Direction{{Right, Right}}, solution.Paths)
}

// Two straight-only lines forced through the same center cell cannot
// coexist.
func TestCrossingLinesUnsatisfiable(t *testing.T) {
	problem := Problem{
		Scenario: 1,
		Grid:     Grid{N: 3, M: 3},
		J:        0,
		Lines: []LineSpec{
			{Start: Cell{0, 1}, End: Cell{2, 1}},
			{Start: Cell{1, 0}, End: Cell{1, 2}},
		},
	}

	instance, _, err := NewEncoder().Encode(problem)
	assert.Nil(t, err)

	assignment, err := sat.NewGophersatSolver().Solve(instance)
	assert.Nil(t, err)
	assert.Nil(t, assignment)
}

// Every route between opposite corners of a 2x2 grid turns once, so the
// instance flips from unsatisfiable to satisfiable as J crosses that
// count.
func TestTurnBudgetCeiling(t *testing.T) {
	problem := Problem{
		Scenario: 1,
		Grid:     Grid{N: 2, M: 2},
		J:        0,
		Lines:    []LineSpec{{Start: Cell{0, 0}, End: Cell{1, 1}}},
	}

	instance, _, err := NewEncoder().Encode(problem)
	assert.Nil(t, err)
	assignment, err := sat.NewGophersatSolver().Solve(instance)
	assert.Nil(t, err)
	assert.Nil(t, assignment)

	problem.J = 1
	instance, varMap, err := NewEncoder().Encode(problem)
	assert.Nil(t, err)
	assignment, err = sat.NewGophersatSolver().Solve(instance)
	assert.Nil(t, err)
	assert.NotNil(t, assignment)

	solution, err := NewDecoder().Decode(varMap, assignment)
	assert.Nil(t, err)
	assert.True(t, Verify(problem, solution.Paths).Valid)
}

// A popular cell with no candidate occupant variables at all must force
// unsatisfiability rather than being silently dropped.
func TestPopularCellWithoutCandidatesForcesUnsat(t *testing.T) {
	problem := Problem{
		Scenario: 2,
		Grid:     Grid{N: 2, M: 1},
		J:        0,
		Popular:  []Cell{{0, 0}},
	}

	instance, _, err := NewEncoder().Encode(problem)
	assert.Nil(t, err)
	assert.Contains(t, instance.Clauses, []int64{1})
	assert.Contains(t, instance.Clauses, []int64{-1})

	assignment, err := sat.NewGophersatSolver().Solve(instance)
	assert.Nil(t, err)
	assert.Nil(t, assignment)
}
