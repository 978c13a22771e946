package model

import (
	"fmt"

	"github.com/lgarciap/metroline/internal/sat"
)

// Encoder translates a routing Problem into a CNF instance whose
// satisfying assignments are exactly the valid arrangements of K
// vertex-disjoint paths honoring endpoints, the turn budget and popular
// coverage, together with the variable map needed to read a model back.
type Encoder interface {
	Encode(problem Problem) (sat.SAT, VarMap, error)
}

func NewEncoder() Encoder {
	return &satEncoder{}
}

type lineCell struct {
	k    int
	cell Cell
}

type lineEdge struct {
	k         int
	cell      Cell
	direction Direction
}

type satEncoder struct {
	problem  Problem
	registry *variableRegistry
	indexer  Indexer
	clauses  [][]int64

	occupied map[lineCell]int64
	edges    map[lineEdge]int64
	turns    map[lineCell]int64
	reach    map[lineCell]int64

	// occupants[cellIndex] lists every line's occupancy variable for that
	// cell, in line order.
	occupants [][]int64
}

func (encoder *satEncoder) Encode(problem Problem) (sat.SAT, VarMap, error) {
	if err := problem.Validate(); err != nil {
		return sat.SAT{}, VarMap{}, err
	}

	encoder.problem = problem
	encoder.registry = newVariableRegistry()
	encoder.indexer = NewIndexer(problem.Grid)
	encoder.clauses = [][]int64{}
	encoder.occupied = make(map[lineCell]int64)
	encoder.edges = make(map[lineEdge]int64)
	encoder.turns = make(map[lineCell]int64)
	encoder.reach = make(map[lineCell]int64)
	encoder.occupants = make([][]int64, problem.Grid.N*problem.Grid.M)

	encoder.allocateVariables()

	encoder.clauses = append(encoder.clauses, encoder.occupancyConstraints()...)
	encoder.clauses = append(encoder.clauses, encoder.edgeConsistencyConstraints()...)
	encoder.clauses = append(encoder.clauses, encoder.continuityConstraints()...)
	encoder.clauses = append(encoder.clauses, encoder.turnConstraints()...)
	encoder.clauses = append(encoder.clauses, encoder.connectivityConstraints()...)
	encoder.clauses = append(encoder.clauses, encoder.popularConstraints()...)

	satInstance := sat.SAT{
		Variables: encoder.registry.count(),
		Clauses:   encoder.clauses,
	}

	return satInstance, newVarMap(problem, encoder.registry), nil
}

// allocateVariables instantiates the four variable families in a fixed
// order (line, column, row, family, direction) so ids are a pure function
// of the problem. Edge variables only exist when the destination cell is
// in-grid; turn variables only exist at non-endpoint cells.
func (encoder *satEncoder) allocateVariables() {
	grid := encoder.problem.Grid

	for k, line := range encoder.problem.Lines {
		for x := range grid.N {
			for y := range grid.M {
				cell := Cell{x, y}
				key := lineCell{k, cell}

				id := encoder.registry.variable(occupiedName(k, cell))
				encoder.occupied[key] = id
				cellIndex := encoder.indexer.Index(cell)
				encoder.occupants[cellIndex] = append(encoder.occupants[cellIndex], id)

				if cell != line.Start && cell != line.End {
					encoder.turns[key] = encoder.registry.variable(turnName(k, cell))
				}

				encoder.reach[key] = encoder.registry.variable(reachName(k, cell))

				for _, direction := range Directions {
					if grid.Contains(cell.Move(direction)) {
						encoder.edges[lineEdge{k, cell, direction}] = encoder.registry.variable(edgeName(k, cell, direction))
					}
				}
			}
		}
	}
}

// occupancyConstraints keep lines vertex-disjoint: at most one line may
// claim any cell.
func (encoder *satEncoder) occupancyConstraints() [][]int64 {
	clauses := [][]int64{}
	for x := range encoder.problem.Grid.N {
		for y := range encoder.problem.Grid.M {
			occupants := encoder.occupants[encoder.indexer.Index(Cell{x, y})]
			if len(occupants) > 1 {
				clauses = append(clauses, atMostOne(occupants)...)
			}
		}
	}
	return clauses
}

// edgeConsistencyConstraints tie every edge variable to its endpoints and
// its reverse twin: an asserted edge implies both cells are occupied by
// the same line, and the step is undirected so the twin at the
// destination must agree in both directions.
func (encoder *satEncoder) edgeConsistencyConstraints() [][]int64 {
	clauses := [][]int64{}
	encoder.forEachEdge(func(k int, cell Cell, direction Direction, edge int64) {
		neighbor := cell.Move(direction)

		clauses = append(clauses, []int64{-edge, encoder.occupied[lineCell{k, cell}]})
		clauses = append(clauses, []int64{-edge, encoder.occupied[lineCell{k, neighbor}]})

		if twin, ok := encoder.edges[lineEdge{k, neighbor, direction.Reverse()}]; ok {
			clauses = append(clauses, []int64{-edge, twin})
			clauses = append(clauses, []int64{-twin, edge})
		} else {
			// No reverse slot means the step leaves the grid
			clauses = append(clauses, []int64{-edge})
		}
	})
	return clauses
}

// continuityConstraints pin both endpoints of every line and fix the
// degree of each occupied cell: endpoints use exactly one incident edge,
// interior cells exactly two, and no edge may leave an unoccupied cell.
func (encoder *satEncoder) continuityConstraints() [][]int64 {
	clauses := [][]int64{}
	for k, line := range encoder.problem.Lines {
		clauses = append(clauses, []int64{encoder.occupied[lineCell{k, line.Start}]})
		clauses = append(clauses, []int64{encoder.occupied[lineCell{k, line.End}]})

		for x := range encoder.problem.Grid.N {
			for y := range encoder.problem.Grid.M {
				cell := Cell{x, y}
				occupied := encoder.occupied[lineCell{k, cell}]
				incident := encoder.incidentEdges(k, cell)

				if cell == line.Start || cell == line.End {
					clauses = append(clauses, exactlyKWhen(occupied, incident, 1)...)
				} else {
					clauses = append(clauses, exactlyKWhen(occupied, incident, 2)...)
					for _, edge := range incident {
						clauses = append(clauses, []int64{occupied, -edge})
					}
				}
			}
		}
	}
	return clauses
}

// turnConstraints make each turn variable equivalent to "this occupied
// cell joins two perpendicular edges", then bound the number of turns per
// line by J through a sequential counter.
func (encoder *satEncoder) turnConstraints() [][]int64 {
	clauses := [][]int64{}
	for k := range encoder.problem.Lines {
		lineTurns := []int64{}

		for x := range encoder.problem.Grid.N {
			for y := range encoder.problem.Grid.M {
				cell := Cell{x, y}
				turn, ok := encoder.turns[lineCell{k, cell}]
				if !ok { // endpoints have degree 1 and cannot turn
					continue
				}

				lineTurns = append(lineTurns, turn)
				occupied := encoder.occupied[lineCell{k, cell}]
				clauses = append(clauses, []int64{-turn, occupied})

				for i := range len(Directions) - 1 {
					for j := i + 1; j < len(Directions); j++ {
						edge1, ok1 := encoder.edges[lineEdge{k, cell, Directions[i]}]
						edge2, ok2 := encoder.edges[lineEdge{k, cell, Directions[j]}]
						if !ok1 || !ok2 {
							continue
						}

						if Collinear(Directions[i], Directions[j]) {
							clauses = append(clauses, []int64{-occupied, -edge1, -edge2, -turn})
						} else {
							clauses = append(clauses, []int64{-occupied, -edge1, -edge2, turn})
						}
					}
				}
			}
		}

		if len(lineTurns) > 0 {
			prefix := fmt.Sprintf("s_k%d", k)
			clauses = append(clauses, atMostK(encoder.registry, lineTurns, encoder.problem.J, prefix)...)
		}
	}
	return clauses
}

// connectivityConstraints rule out detached cycles: reachability is
// seeded at each line's start, flows along asserted edges, and is
// required at every occupied cell.
func (encoder *satEncoder) connectivityConstraints() [][]int64 {
	clauses := [][]int64{}
	for k, line := range encoder.problem.Lines {
		clauses = append(clauses, []int64{encoder.reach[lineCell{k, line.Start}]})

		for x := range encoder.problem.Grid.N {
			for y := range encoder.problem.Grid.M {
				cell := Cell{x, y}
				for _, direction := range Directions {
					if edge, ok := encoder.edges[lineEdge{k, cell, direction}]; ok {
						neighbor := cell.Move(direction)
						clauses = append(clauses, []int64{
							-encoder.reach[lineCell{k, cell}],
							-edge,
							encoder.reach[lineCell{k, neighbor}],
						})
					}
				}
			}
		}

		for x := range encoder.problem.Grid.N {
			for y := range encoder.problem.Grid.M {
				cell := Cell{x, y}
				clauses = append(clauses, []int64{
					-encoder.occupied[lineCell{k, cell}],
					encoder.reach[lineCell{k, cell}],
				})
			}
		}
	}
	return clauses
}

// popularConstraints require every popular cell to be claimed by some
// line. A popular cell with no candidate occupant variables at all gets a
// contradictory pair so the instance reads unsatisfiable instead of the
// requirement being dropped.
func (encoder *satEncoder) popularConstraints() [][]int64 {
	if encoder.problem.Scenario != 2 {
		return nil
	}

	clauses := [][]int64{}
	for _, cell := range encoder.problem.Popular {
		occupants := encoder.occupants[encoder.indexer.Index(cell)]
		if len(occupants) > 0 {
			clause := make([]int64, len(occupants))
			copy(clause, occupants)
			clauses = append(clauses, clause)
		} else {
			clauses = append(clauses, []int64{1}, []int64{-1})
		}
	}
	return clauses
}

func (encoder *satEncoder) incidentEdges(k int, cell Cell) []int64 {
	incident := make([]int64, 0, len(Directions))
	for _, direction := range Directions {
		if edge, ok := encoder.edges[lineEdge{k, cell, direction}]; ok {
			incident = append(incident, edge)
		}
	}
	return incident
}

func (encoder *satEncoder) forEachEdge(visit func(k int, cell Cell, direction Direction, edge int64)) {
	for k := range encoder.problem.Lines {
		for x := range encoder.problem.Grid.N {
			for y := range encoder.problem.Grid.M {
				cell := Cell{x, y}
				for _, direction := range Directions {
					if edge, ok := encoder.edges[lineEdge{k, cell, direction}]; ok {
						visit(k, cell, direction, edge)
					}
				}
			}
		}
	}
}
