package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// VarMap is the persisted bijection between variable ids and symbolic
// names, together with enough of the problem description for the decoder
// to run as a separate process without re-encoding.
type VarMap struct {
	VarToID map[string]int64  `json:"var_to_id" mapstructure:"var_to_id"`
	IDToVar map[string]string `json:"id_to_var" mapstructure:"id_to_var"`
	N       int               `json:"N" mapstructure:"N"`
	M       int               `json:"M" mapstructure:"M"`
	K       int               `json:"K" mapstructure:"K"`
	J       int               `json:"J" mapstructure:"J"`
	Mode    int               `json:"mode" mapstructure:"mode"`
	Lines   [][2][2]int       `json:"lines" mapstructure:"lines"`
	Popular [][2]int          `json:"popular" mapstructure:"popular"`
}

func newVarMap(problem Problem, registry *variableRegistry) VarMap {
	varMap := VarMap{
		VarToID: make(map[string]int64, len(registry.varToID)),
		IDToVar: make(map[string]string, len(registry.idToVar)),
		N:       problem.Grid.N,
		M:       problem.Grid.M,
		K:       problem.K(),
		J:       problem.J,
		Mode:    problem.Scenario,
		Lines:   make([][2][2]int, 0, problem.K()),
		Popular: make([][2]int, 0, len(problem.Popular)),
	}

	for name, id := range registry.varToID {
		varMap.VarToID[name] = id
		varMap.IDToVar[strconv.FormatInt(id, 10)] = name
	}
	for _, line := range problem.Lines {
		varMap.Lines = append(varMap.Lines, [2][2]int{
			{line.Start.X, line.Start.Y},
			{line.End.X, line.End.Y},
		})
	}
	for _, cell := range problem.Popular {
		varMap.Popular = append(varMap.Popular, [2]int{cell.X, cell.Y})
	}

	return varMap
}

// LineSpecs rebuilds the per-line endpoint specs carried by the artifact.
func (varMap VarMap) LineSpecs() []LineSpec {
	lines := make([]LineSpec, 0, len(varMap.Lines))
	for _, line := range varMap.Lines {
		lines = append(lines, LineSpec{
			Start: Cell{line[0][0], line[0][1]},
			End:   Cell{line[1][0], line[1][1]},
		})
	}
	return lines
}

func (varMap VarMap) Save(file string) error {
	bytes, err := json.MarshalIndent(varMap, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize variable map: %v", err)
	}
	return os.WriteFile(file, bytes, 0644)
}

func VarMapFromJson(file string) (VarMap, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return VarMap{}, fmt.Errorf("cannot read variable map file: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return VarMap{}, fmt.Errorf("cannot parse variable map file: %v", err)
	}

	var varMap VarMap
	if err := mapstructure.Decode(raw, &varMap); err != nil {
		return VarMap{}, fmt.Errorf("cannot decode variable map: %v", err)
	}

	return varMap, nil
}
