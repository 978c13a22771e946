package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// LineCheck is the verdict for one line's walk: whether it is a legal
// in-grid path from its start to its end, and how many turns it makes.
type LineCheck struct {
	Line   int
	OK     bool
	Turns  int
	Detail string
}

type PopularCheck struct {
	Cell    Cell
	Visited bool
	Lines   []int
}

// Report is the independent verifier's per-constraint verdict, derived
// from scratch from the problem description and a decoded metromap
// without trusting the encoder or decoder.
type Report struct {
	Scenario int
	J        int

	OverlapValid  bool
	Overlapping   map[Cell][]int
	PathsValid    bool
	LineChecks    []LineCheck
	TurnsValid    bool
	CoverageValid bool
	PopularChecks []PopularCheck

	Valid bool
}

// Verify re-checks the four external constraints: no shared cells, every
// walk legal and ending at its endpoint, turn counts within budget, and
// popular coverage for scenario 2.
func Verify(problem Problem, paths [][]Direction) Report {
	report := Report{Scenario: problem.Scenario, J: problem.J}

	if len(paths) != problem.K() {
		report.Overlapping = map[Cell][]int{}
		for k := range problem.K() {
			detail := "missing path"
			if k < len(paths) {
				detail = fmt.Sprintf("path count %v does not match K=%v", len(paths), problem.K())
			}
			report.LineChecks = append(report.LineChecks, LineCheck{Line: k, OK: false, Detail: detail})
		}
		report.CoverageValid = problem.Scenario != 2
		return report
	}

	owners := make(map[Cell][]int)
	for k, path := range paths {
		check := LineCheck{Line: k, OK: true}

		position := problem.Lines[k].Start
		owners[position] = append(owners[position], k)
		var previous Direction
		hasPrevious := false

		for index, direction := range path {
			position = position.Move(direction)
			if !problem.Grid.Contains(position) {
				check.OK = false
				check.Detail = fmt.Sprintf("out of bounds at step %v -> %v", index+1, position)
				break
			}
			owners[position] = append(owners[position], k)

			if hasPrevious && direction != previous {
				check.Turns++
			}
			previous = direction
			hasPrevious = true
		}

		if check.OK && position != problem.Lines[k].End {
			check.OK = false
			check.Detail = fmt.Sprintf("final position %v does not match end %v", position, problem.Lines[k].End)
		}
		report.LineChecks = append(report.LineChecks, check)
	}

	report.Overlapping = lo.PickBy(owners, func(_ Cell, lines []int) bool {
		return len(lines) > 1
	})
	report.OverlapValid = len(report.Overlapping) == 0

	report.PathsValid = lo.EveryBy(report.LineChecks, func(check LineCheck) bool {
		return check.OK
	})

	report.TurnsValid = lo.EveryBy(report.LineChecks, func(check LineCheck) bool {
		return check.Turns <= problem.J
	})

	report.CoverageValid = true
	if problem.Scenario == 2 {
		for _, cell := range problem.Popular {
			visitors := owners[cell]
			report.PopularChecks = append(report.PopularChecks, PopularCheck{
				Cell:    cell,
				Visited: len(visitors) > 0,
				Lines:   visitors,
			})
			if len(visitors) == 0 {
				report.CoverageValid = false
			}
		}
	}

	report.Valid = report.OverlapValid && report.PathsValid && report.TurnsValid && report.CoverageValid
	return report
}

// Summary renders one line per applicable constraint; callers decide how
// to present the final verdict.
func (report Report) Summary() []string {
	lines := []string{}

	if report.OverlapValid {
		lines = append(lines, "C1: VALID (no overlapping cells)")
	} else {
		sample := lo.Keys(report.Overlapping)
		slices.SortFunc(sample, compareCells)
		if len(sample) > 3 {
			sample = sample[:3]
		}
		lines = append(lines, fmt.Sprintf("C1: INVALID (%v overlapping cells; sample: %v)", len(report.Overlapping), sample))
	}

	if report.PathsValid {
		lines = append(lines, "C2: VALID (all metros end correctly)")
	} else {
		failures := lo.CountBy(report.LineChecks, func(check LineCheck) bool { return !check.OK })
		lines = append(lines, fmt.Sprintf("C2: INVALID (%v metros failed to end correctly)", failures))
	}

	if report.TurnsValid {
		lines = append(lines, "C3: VALID (turns <= J for all metros)")
	} else {
		failures := lo.CountBy(report.LineChecks, func(check LineCheck) bool { return check.Turns > report.J })
		lines = append(lines, fmt.Sprintf("C3: INVALID (%v metros exceed J turns)", failures))
	}

	if report.Scenario == 2 {
		if report.CoverageValid {
			lines = append(lines, "C4: VALID (all popular cells visited)")
		} else {
			misses := lo.CountBy(report.PopularChecks, func(check PopularCheck) bool { return !check.Visited })
			lines = append(lines, fmt.Sprintf("C4: INVALID (%v popular cells not visited)", misses))
		}
	}

	return lines
}

// Detailed renders the per-metro and per-popular-cell breakdown used by
// the verifier's verbose mode.
func (report Report) Detailed() string {
	var builder strings.Builder

	builder.WriteString("Constraint 1: At most one metro per grid cell\n")
	if report.OverlapValid {
		builder.WriteString("  -> VALID: no overlapping cells\n")
	} else {
		builder.WriteString("  -> INVALID: overlapping cells (cell -> metros):\n")
		cells := lo.Keys(report.Overlapping)
		slices.SortFunc(cells, compareCells)
		for _, cell := range cells {
			fmt.Fprintf(&builder, "     %v -> %v\n", cell, report.Overlapping[cell])
		}
	}

	builder.WriteString("\nConstraint 2: Every metro is a path from its start to its end\n")
	if report.PathsValid {
		builder.WriteString("  -> VALID: all metros end correctly\n")
	}
	for _, check := range report.LineChecks {
		if check.OK {
			fmt.Fprintf(&builder, "    Metro %v: OK\n", check.Line)
		} else {
			fmt.Fprintf(&builder, "    Metro %v: FAIL - %v\n", check.Line, check.Detail)
		}
	}

	builder.WriteString("\nConstraint 3: Each metro has at most J turns\n")
	for _, check := range report.LineChecks {
		status := "OK"
		if check.Turns > report.J {
			status = "FAIL"
		}
		fmt.Fprintf(&builder, "    Metro %v: turns=%v (J=%v) -> %v\n", check.Line, check.Turns, report.J, status)
	}

	if report.Scenario == 2 {
		builder.WriteString("\nConstraint 4: Popular cells visited by at least one metro\n")
		for _, check := range report.PopularChecks {
			if check.Visited {
				fmt.Fprintf(&builder, "    Popular %v: VISITED by %v\n", check.Cell, check.Lines)
			} else {
				fmt.Fprintf(&builder, "    Popular %v: NOT VISITED\n", check.Cell)
			}
		}
	}

	verdict := "INVALID"
	if report.Valid {
		verdict = "VALID"
	}
	fmt.Fprintf(&builder, "\nFINAL VERDICT: %v\n", verdict)

	return builder.String()
}

func compareCells(a, b Cell) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}
