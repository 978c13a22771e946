package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// LineSpec is one metro line: fixed start and end cells on the grid. The
// turn budget is global (Problem.J), not per line.
type LineSpec struct {
	Start Cell
	End   Cell
}

// Problem is the in-memory description of one routing instance. Scenario
// 1 has no popular cells; scenario 2 requires every popular cell to be
// covered by some line.
type Problem struct {
	Scenario int
	Grid     Grid
	J        int // maximum turns per line
	Lines    []LineSpec
	Popular  []Cell
}

func (p Problem) K() int {
	return len(p.Lines)
}

// Validate checks every structural precondition before any encoding work
// happens. A Problem that fails validation must never reach the encoder.
func (p Problem) Validate() error {
	if p.Scenario != 1 && p.Scenario != 2 {
		return fmt.Errorf("scenario must be 1 or 2, got %v", p.Scenario)
	}
	if p.Grid.N <= 0 || p.Grid.M <= 0 {
		return fmt.Errorf("grid bounds must be positive, got %vx%v", p.Grid.N, p.Grid.M)
	}
	if p.J < 0 {
		return fmt.Errorf("turn budget must be non-negative, got %v", p.J)
	}
	if p.Scenario == 1 && len(p.Popular) > 0 {
		return fmt.Errorf("scenario 1 admits no popular cells, got %v", len(p.Popular))
	}

	starts := make(map[Cell]int)
	ends := make(map[Cell]int)
	for k, line := range p.Lines {
		if !p.Grid.Contains(line.Start) || !p.Grid.Contains(line.End) {
			return fmt.Errorf("line %v endpoints out of bounds: %v -> %v", k, line.Start, line.End)
		}
		if line.Start == line.End {
			return fmt.Errorf("line %v start equals end: %v", k, line.Start)
		}
		if other, ok := starts[line.Start]; ok {
			return fmt.Errorf("lines %v and %v share start %v", other, k, line.Start)
		}
		if other, ok := ends[line.End]; ok {
			return fmt.Errorf("lines %v and %v share end %v", other, k, line.End)
		}
		starts[line.Start] = k
		ends[line.End] = k
	}
	for k, line := range p.Lines {
		if other, ok := ends[line.Start]; ok {
			return fmt.Errorf("start of line %v equals end of line %v: %v", k, other, line.Start)
		}
		if other, ok := starts[line.End]; ok {
			return fmt.Errorf("end of line %v equals start of line %v: %v", k, other, line.End)
		}
	}

	for i, cell := range p.Popular {
		if !p.Grid.Contains(cell) {
			return fmt.Errorf("popular cell %v out of bounds: %v", i, cell)
		}
	}

	return nil
}

// ParseCity reads the textual city format: a scenario line (1 or 2), a
// header "N M K J" (scenario 1) or "N M K J P" (scenario 2), K endpoint
// rows "sx sy ex ey", and for scenario 2 the 2*P popular coordinates,
// possibly spread over several lines.
func ParseCity(r io.Reader) (Problem, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Problem{}, fmt.Errorf("cannot read city input: %v", err)
	}
	if len(lines) < 2 {
		return Problem{}, fmt.Errorf("city input must contain a scenario line and a header")
	}

	scenario, err := strconv.Atoi(lines[0])
	if err != nil || (scenario != 1 && scenario != 2) {
		return Problem{}, fmt.Errorf("first line must be scenario 1 or 2, got %q", lines[0])
	}

	header, err := parseInts(strings.Fields(lines[1]))
	if err != nil {
		return Problem{}, fmt.Errorf("invalid header: %v", err)
	}

	expected := 4
	if scenario == 2 {
		expected = 5
	}
	if len(header) != expected {
		return Problem{}, fmt.Errorf("scenario %v header expects %v integers, got %v", scenario, expected, len(header))
	}

	problem := Problem{
		Scenario: scenario,
		Grid:     Grid{N: header[0], M: header[1]},
		J:        header[3],
	}
	k := header[2]
	totalPopular := 0
	if scenario == 2 {
		totalPopular = header[4]
	}
	if k < 0 || totalPopular < 0 {
		return Problem{}, fmt.Errorf("line and popular counts must be non-negative, got K=%v P=%v", k, totalPopular)
	}

	cursor := 2
	for range k {
		if cursor >= len(lines) {
			return Problem{}, fmt.Errorf("expected %v metro lines but input ended early", k)
		}
		values, err := parseInts(strings.Fields(lines[cursor]))
		if err != nil || len(values) != 4 {
			return Problem{}, fmt.Errorf("metro line %v: expected 4 integers, got %q", cursor-2, lines[cursor])
		}
		problem.Lines = append(problem.Lines, LineSpec{
			Start: Cell{values[0], values[1]},
			End:   Cell{values[2], values[3]},
		})
		cursor++
	}

	if totalPopular > 0 {
		tokens := lo.FlatMap(lines[cursor:], func(line string, _ int) []string {
			return strings.Fields(line)
		})
		values, err := parseInts(tokens)
		if err != nil {
			return Problem{}, fmt.Errorf("invalid popular cell list: %v", err)
		}
		if len(values) < 2*totalPopular {
			return Problem{}, fmt.Errorf("expected %v popular coordinates, got %v", 2*totalPopular, len(values))
		}
		for i := 0; i < 2*totalPopular; i += 2 {
			problem.Popular = append(problem.Popular, Cell{values[i], values[i+1]})
		}
	}

	if err := problem.Validate(); err != nil {
		return Problem{}, err
	}
	return problem, nil
}

func ParseCityFile(path string) (Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		return Problem{}, fmt.Errorf("cannot open city file: %v", err)
	}
	defer file.Close()
	return ParseCity(file)
}

func parseInts(tokens []string) ([]int, error) {
	values := make([]int, 0, len(tokens))
	for _, token := range tokens {
		value, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", token)
		}
		values = append(values, value)
	}
	return values, nil
}
