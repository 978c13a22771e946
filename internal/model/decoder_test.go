package model

import (
	"testing"

	"github.com/lgarciap/metroline/internal/sat"
	"github.com/stretchr/testify/assert"
)

func corridorVarMap() VarMap {
	return VarMap{
		VarToID: map[string]int64{"E_0_0_0_R": 1, "E_0_1_0_R": 2},
		IDToVar: map[string]string{"1": "E_0_0_0_R", "2": "E_0_1_0_R"},
		N:       3, M: 1, K: 1, J: 0, Mode: 1,
		Lines: [][2][2]int{{{0, 0}, {2, 0}}},
	}
}

func TestDecodeExactPath(t *testing.T) {
	solution, err := NewDecoder().Decode(corridorVarMap(), sat.SATSolution{1, 2})
	assert.Nil(t, err)
	assert.True(t, solution.Feasible)
	assert.Equal(t, [][]Direction{{Right, Right}}, solution.Paths)
}

func TestDecodeUnsatSignal(t *testing.T) {
	solution, err := NewDecoder().Decode(corridorVarMap(), nil)
	assert.Nil(t, err)
	assert.False(t, solution.Feasible)
	assert.Nil(t, solution.Paths)
}

func TestDecodeIgnoresSlackEdges(t *testing.T) {
	varMap := VarMap{
		VarToID: map[string]int64{
			"E_0_0_0_R": 1,
			"E_0_1_0_R": 2,
			// Detached reciprocal pair far from the start-end path
			"E_0_0_2_R": 3,
			"E_0_1_2_L": 4,
		},
		IDToVar: map[string]string{
			"1": "E_0_0_0_R",
			"2": "E_0_1_0_R",
			"3": "E_0_0_2_R",
			"4": "E_0_1_2_L",
		},
		N: 3, M: 3, K: 1, J: 0, Mode: 1,
		Lines: [][2][2]int{{{0, 0}, {2, 0}}},
	}

	solution, err := NewDecoder().Decode(varMap, sat.SATSolution{1, 2, 3, 4})
	assert.Nil(t, err)
	assert.Equal(t, [][]Direction{{Right, Right}}, solution.Paths)
}

// A satisfiable verdict whose edges contain no start-to-end path is an
// encoding defect, reported distinctly from infeasibility.
func TestDecodeInconsistentModel(t *testing.T) {
	varMap := corridorVarMap()

	_, err := NewDecoder().Decode(varMap, sat.SATSolution{1, -2})
	assert.ErrorIs(t, err, ErrInconsistentModel)
}

func TestDecodeMalformedEdgeName(t *testing.T) {
	varMap := corridorVarMap()
	varMap.IDToVar["1"] = "E_0_0_R"

	_, err := NewDecoder().Decode(varMap, sat.SATSolution{1, 2})
	assert.ErrorContains(t, err, "malformed edge variable")
}

func TestDecodeLineOrder(t *testing.T) {
	varMap := VarMap{
		VarToID: map[string]int64{"E_0_0_0_R": 1, "E_1_0_1_R": 2},
		IDToVar: map[string]string{"1": "E_0_0_0_R", "2": "E_1_0_1_R"},
		N:       2, M: 2, K: 2, J: 0, Mode: 1,
		Lines: [][2][2]int{
			{{0, 0}, {1, 0}},
			{{0, 1}, {1, 1}},
		},
	}

	// Discovery order of true variables must not leak into the output
	solution, err := NewDecoder().Decode(varMap, sat.SATSolution{2, 1})
	assert.Nil(t, err)
	assert.Equal(t, [][]Direction{{Right}, {Right}}, solution.Paths)
}
