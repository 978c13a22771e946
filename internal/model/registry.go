package model

import "fmt"

// variableRegistry owns the bijection between symbolic variable names and
// dense positive ids. Ids are handed out in first-request order starting
// at 1, so for a fixed allocation order the mapping is reproducible.
type variableRegistry struct {
	varToID map[string]int64
	idToVar map[int64]string
	next    int64
}

func newVariableRegistry() *variableRegistry {
	return &variableRegistry{
		varToID: make(map[string]int64),
		idToVar: make(map[int64]string),
		next:    1,
	}
}

func (r *variableRegistry) variable(name string) int64 {
	if id, ok := r.varToID[name]; ok {
		return id
	}
	id := r.next
	r.next++
	r.varToID[name] = id
	r.idToVar[id] = name
	return id
}

func (r *variableRegistry) count() uint64 {
	return uint64(r.next - 1)
}

func occupiedName(k int, c Cell) string {
	return fmt.Sprintf("L_%d_%d_%d", k, c.X, c.Y)
}

func edgeName(k int, c Cell, d Direction) string {
	return fmt.Sprintf("E_%d_%d_%d_%v", k, c.X, c.Y, d)
}

func turnName(k int, c Cell) string {
	return fmt.Sprintf("T_%d_%d_%d", k, c.X, c.Y)
}

func reachName(k int, c Cell) string {
	return fmt.Sprintf("S_%d_%d_%d", k, c.X, c.Y)
}
