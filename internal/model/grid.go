package model

import "fmt"

// Direction is one unit step on the grid, named by its DIMACS-artifact
// letter: R and L move along the x axis, U and D along the y axis (U
// decreases y, D increases it).
type Direction byte

const (
	Right Direction = 'R'
	Left  Direction = 'L'
	Up    Direction = 'U'
	Down  Direction = 'D'
)

// Directions fixes the iteration order used for variable allocation and
// clause emission, so encodings are reproducible.
var Directions = []Direction{Right, Left, Up, Down}

var deltas = map[Direction][2]int{
	Right: {1, 0},
	Left:  {-1, 0},
	Up:    {0, -1},
	Down:  {0, 1},
}

func (d Direction) Delta() (dx, dy int) {
	delta := deltas[d]
	return delta[0], delta[1]
}

func (d Direction) Reverse() Direction {
	switch d {
	case Right:
		return Left
	case Left:
		return Right
	case Up:
		return Down
	default:
		return Up
	}
}

// Collinear reports whether two incident step directions continue a
// straight segment through a cell. A path entering through one of them
// and leaving through the other makes no turn.
func Collinear(d1, d2 Direction) bool {
	return d1.Reverse() == d2
}

func (d Direction) String() string {
	return string(byte(d))
}

func ParseDirection(token string) (Direction, error) {
	if len(token) != 1 {
		return 0, fmt.Errorf("invalid direction token %q", token)
	}
	switch token[0] {
	case 'R', 'r':
		return Right, nil
	case 'L', 'l':
		return Left, nil
	case 'U', 'u':
		return Up, nil
	case 'D', 'd':
		return Down, nil
	}
	return 0, fmt.Errorf("invalid direction token %q", token)
}

type Cell struct {
	X int
	Y int
}

func (c Cell) Move(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{c.X + dx, c.Y + dy}
}

type Grid struct {
	N int // width
	M int // height
}

func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.N && c.Y >= 0 && c.Y < g.M
}

// Indexer maps a cell to a dense index and back, so per-cell state can
// live in flat slices instead of maps keyed by coordinates.
type Indexer interface {
	Index(c Cell) int
	Attributes(index int) Cell
}

func NewIndexer(grid Grid) Indexer {
	return &cellIndexer{n: grid.N}
}

type cellIndexer struct {
	n int
}

func (i *cellIndexer) Index(c Cell) int {
	return c.X + c.Y*i.n
}

func (i *cellIndexer) Attributes(index int) Cell {
	return Cell{X: index % i.n, Y: index / i.n}
}
