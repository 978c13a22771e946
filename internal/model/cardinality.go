package model

import "fmt"

// atMostOne forbids any two of the given variables from being true at
// once. Pairwise expansion is fine here since the list holds one
// candidate occupant per line, so n stays small.
func atMostOne(variables []int64) [][]int64 {
	clauses := [][]int64{}
	for i := range len(variables) - 1 {
		for j := i + 1; j < len(variables); j++ {
			clauses = append(clauses, []int64{-variables[i], -variables[j]})
		}
	}
	return clauses
}

// exactlyKWhen forces exactly k of the given variables true whenever the
// condition variable is true. Both bounds are expanded as subset clauses,
// which stays small because callers never pass more than the 4 incident
// edge variables of a cell.
func exactlyKWhen(condition int64, variables []int64, k int) [][]int64 {
	clauses := [][]int64{}
	n := len(variables)

	if n > k {
		// No k+1 of them may be true together
		for _, subset := range combinations(variables, k+1) {
			clause := make([]int64, 0, k+2)
			clause = append(clause, -condition)
			for _, variable := range subset {
				clause = append(clause, -variable)
			}
			clauses = append(clauses, clause)
		}
	}
	if k > 0 {
		// Any n-k+1 of them must contain a true one
		for _, subset := range combinations(variables, n-k+1) {
			clause := make([]int64, 0, n-k+2)
			clause = append(clause, -condition)
			clause = append(clause, subset...)
			clauses = append(clauses, clause)
		}
	}

	return clauses
}

// atMostK bounds the number of true variables by k using the sequential
// unary counter encoding: an n x (k+1) matrix of auxiliary variables
// tracks "at least j+1 of the first i+1 inputs are true", and the
// top-right counter cell is forbidden. Clause count stays linear in n*k
// where the naive subset expansion would be binomial. Auxiliary variables
// are allocated from the registry under the given name prefix.
func atMostK(registry *variableRegistry, variables []int64, k int, prefix string) [][]int64 {
	n := len(variables)
	if n <= k {
		return nil
	}

	counter := make([][]int64, n)
	for i := range n {
		counter[i] = make([]int64, k+1)
		for j := range k + 1 {
			counter[i][j] = registry.variable(fmt.Sprintf("%v_%d_%d", prefix, i, j))
		}
	}

	clauses := [][]int64{}

	// First input seeds the counter
	clauses = append(clauses, []int64{-variables[0], counter[0][0]})
	for j := 1; j <= k; j++ {
		clauses = append(clauses, []int64{-counter[0][j]})
	}

	for i := 1; i < n; i++ {
		// Counts already reached stay reached
		for j := 0; j <= k; j++ {
			clauses = append(clauses, []int64{-counter[i-1][j], counter[i][j]})
		}

		// A true input bumps the count by one
		clauses = append(clauses, []int64{-variables[i], counter[i][0]})
		for j := 1; j <= k; j++ {
			clauses = append(clauses, []int64{-variables[i], -counter[i-1][j-1], counter[i][j]})
		}
	}

	// Reaching k+1 true inputs is forbidden
	clauses = append(clauses, []int64{-counter[n-1][k]})

	return clauses
}

// combinations enumerates all size-r subsets of variables in
// lexicographic index order.
func combinations(variables []int64, r int) [][]int64 {
	if r < 0 || r > len(variables) {
		return nil
	}

	result := [][]int64{}
	indices := make([]int, r)
	for i := range indices {
		indices[i] = i
	}

	for {
		subset := make([]int64, r)
		for i, index := range indices {
			subset[i] = variables[index]
		}
		result = append(result, subset)

		i := r - 1
		for i >= 0 && indices[i] == i+len(variables)-r {
			i--
		}
		if i < 0 {
			return result
		}
		indices[i]++
		for j := i + 1; j < r; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}
