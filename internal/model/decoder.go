package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lgarciap/metroline/internal/sat"
	"github.com/samber/lo"
)

// Solution is the decoded outcome: either infeasible, or one direction
// sequence per line in original index order.
type Solution struct {
	Feasible bool
	Paths    [][]Direction
}

// ErrInconsistentModel signals that the solver claimed satisfiability but
// the asserted edge variables contain no start-to-end path for some line.
// That is an encoding defect, never an ordinary infeasibility.
var ErrInconsistentModel = errors.New("satisfying assignment contains no start-to-end path")

// Decoder reconstructs explicit per-line move sequences from a satisfying
// assignment and the variable map, or passes an UNSAT signal through as
// an infeasible Solution.
type Decoder interface {
	Decode(varMap VarMap, solution sat.SATSolution) (Solution, error)
}

func NewDecoder() Decoder {
	return &bfsDecoder{}
}

type step struct {
	next      Cell
	direction Direction
}

type bfsDecoder struct{}

func (decoder *bfsDecoder) Decode(varMap VarMap, solution sat.SATSolution) (Solution, error) {
	if solution == nil {
		return Solution{Feasible: false}, nil
	}

	edges, err := trueEdges(varMap, solution)
	if err != nil {
		return Solution{}, err
	}

	grid := Grid{N: varMap.N, M: varMap.M}
	indexer := NewIndexer(grid)
	lines := varMap.LineSpecs()

	paths := make([][]Direction, 0, len(lines))
	for k, line := range lines {
		adjacency := make([][]step, grid.N*grid.M)
		for _, edge := range edges {
			if edge.k != k {
				continue
			}
			index := indexer.Index(edge.cell)
			adjacency[index] = append(adjacency[index], step{
				next:      edge.cell.Move(edge.direction),
				direction: edge.direction,
			})
		}

		path, found := searchPath(grid, indexer, adjacency, line.Start, line.End)
		if !found {
			return Solution{}, fmt.Errorf("line %v: %w", k, ErrInconsistentModel)
		}
		paths = append(paths, path)
	}

	return Solution{Feasible: true, Paths: paths}, nil
}

// searchPath runs a breadth-first search over the asserted edges of one
// line, tracking the direction taken into every visited cell. BFS keeps
// the reconstruction on the simple start-to-end path even if the model
// asserts extra slack edges.
func searchPath(grid Grid, indexer Indexer, adjacency [][]step, start, end Cell) ([]Direction, bool) {
	visited := make([]bool, grid.N*grid.M)
	cameFrom := make([]int, grid.N*grid.M)
	cameBy := make([]Direction, grid.N*grid.M)

	startIndex := indexer.Index(start)
	endIndex := indexer.Index(end)
	visited[startIndex] = true

	queue := []int{startIndex}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == endIndex {
			return reconstruct(cameFrom, cameBy, startIndex, endIndex), true
		}

		for _, move := range adjacency[current] {
			nextIndex := indexer.Index(move.next)
			if visited[nextIndex] {
				continue
			}
			visited[nextIndex] = true
			cameFrom[nextIndex] = current
			cameBy[nextIndex] = move.direction
			queue = append(queue, nextIndex)
		}
	}

	return nil, false
}

func reconstruct(cameFrom []int, cameBy []Direction, startIndex, endIndex int) []Direction {
	reversed := []Direction{}
	for current := endIndex; current != startIndex; current = cameFrom[current] {
		reversed = append(reversed, cameBy[current])
	}

	path := make([]Direction, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

// trueEdges filters the assignment down to asserted edge-family variables
// and parses their symbolic names back into (line, cell, direction).
func trueEdges(varMap VarMap, solution sat.SATSolution) ([]lineEdge, error) {
	trueNames := lo.FilterMap(solution, func(literal int64, _ int) (string, bool) {
		if literal <= 0 {
			return "", false
		}
		name, ok := varMap.IDToVar[strconv.FormatInt(literal, 10)]
		return name, ok && strings.HasPrefix(name, "E_")
	})

	edges := make([]lineEdge, 0, len(trueNames))
	for _, name := range trueNames {
		parts := strings.Split(name, "_")
		if len(parts) != 5 {
			return nil, fmt.Errorf("malformed edge variable name %q", name)
		}
		k, errK := strconv.Atoi(parts[1])
		x, errX := strconv.Atoi(parts[2])
		y, errY := strconv.Atoi(parts[3])
		direction, errD := ParseDirection(parts[4])
		if errK != nil || errX != nil || errY != nil || errD != nil {
			return nil, fmt.Errorf("malformed edge variable name %q", name)
		}
		edges = append(edges, lineEdge{k: k, cell: Cell{x, y}, direction: direction})
	}
	return edges, nil
}
