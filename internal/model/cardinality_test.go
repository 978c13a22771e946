package model

import (
	"fmt"
	"testing"

	"github.com/lgarciap/metroline/internal/sat"
	"github.com/stretchr/testify/assert"
)

func TestAtMostOne(t *testing.T) {
	clauses := atMostOne([]int64{1, 2, 3})
	assert.Equal(t, [][]int64{{-1, -2}, {-1, -3}, {-2, -3}}, clauses)

	assert.Empty(t, atMostOne([]int64{1}))
	assert.Empty(t, atMostOne(nil))
}

func TestExactlyKWhen(t *testing.T) {
	// Degree 1 over 2 incident edges: not both, and at least one
	clauses := exactlyKWhen(9, []int64{1, 2}, 1)
	assert.Equal(t, [][]int64{{-9, -1, -2}, {-9, 1, 2}}, clauses)

	// Degree 2 over 3 incident edges
	clauses = exactlyKWhen(9, []int64{1, 2, 3}, 2)
	assert.Contains(t, clauses, []int64{-9, -1, -2, -3})
	assert.Contains(t, clauses, []int64{-9, 1, 2})
	assert.Contains(t, clauses, []int64{-9, 1, 3})
	assert.Contains(t, clauses, []int64{-9, 2, 3})
	assert.Len(t, clauses, 4)
}

func TestCombinations(t *testing.T) {
	assert.Equal(t, [][]int64{{1, 2}, {1, 3}, {2, 3}}, combinations([]int64{1, 2, 3}, 2))
	assert.Equal(t, [][]int64{{1}, {2}, {3}}, combinations([]int64{1, 2, 3}, 1))
	assert.Equal(t, [][]int64{{1, 2, 3}}, combinations([]int64{1, 2, 3}, 3))
	assert.Nil(t, combinations([]int64{1, 2}, 3))
}

// atMostK must accept any assignment with up to k true inputs and reject
// every assignment with more, for every bound.
func TestAtMostKBound(t *testing.T) {
	solver := sat.NewGophersatSolver()
	const n = 5

	for k := 0; k < n; k++ {
		for trueCount := 0; trueCount <= n; trueCount++ {
			t.Run(fmt.Sprintf("bound %v with %v true", k, trueCount), func(t *testing.T) {
				registry := newVariableRegistry()
				inputs := make([]int64, n)
				for i := range inputs {
					inputs[i] = registry.variable(fmt.Sprintf("x_%d", i))
				}

				clauses := atMostK(registry, inputs, k, "s")
				// Pin the first trueCount inputs true and the rest false
				for i, input := range inputs {
					if i < trueCount {
						clauses = append(clauses, []int64{input})
					} else {
						clauses = append(clauses, []int64{-input})
					}
				}

				solution, err := solver.Solve(sat.SAT{
					Variables: registry.count(),
					Clauses:   clauses,
				})
				assert.Nil(t, err)

				if trueCount <= k {
					assert.NotNil(t, solution, "expected satisfiable")
				} else {
					assert.Nil(t, solution, "expected unsatisfiable")
				}
			})
		}
	}
}

func TestAtMostKTrivial(t *testing.T) {
	registry := newVariableRegistry()
	inputs := []int64{registry.variable("x_0"), registry.variable("x_1")}

	// Bound not below the input count: no clauses, no auxiliaries
	assert.Nil(t, atMostK(registry, inputs, 2, "s"))
	assert.Equal(t, uint64(2), registry.count())
}
