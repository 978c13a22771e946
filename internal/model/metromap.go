package model

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var compactRow = regexp.MustCompile(`^[LRUDlrud0]+$`)

// WriteMetromap emits the decoded solution: a single "0" row when
// infeasible, otherwise one row of direction tokens per line terminated
// by the explicit end marker.
func WriteMetromap(w io.Writer, solution Solution) error {
	if !solution.Feasible {
		_, err := io.WriteString(w, "0\n")
		return err
	}

	for _, path := range solution.Paths {
		tokens := lo.Map(path, func(direction Direction, _ int) string {
			return direction.String()
		})
		tokens = append(tokens, "0")
		if _, err := io.WriteString(w, strings.Join(tokens, " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// ParseMetromap reads a metromap back. Both the spaced form "R R 0" and
// the compact form "RR0" are accepted, case-insensitively; a single "0"
// row is the infeasibility marker.
func ParseMetromap(r io.Reader) (Solution, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var rows []string
	for scanner.Scan() {
		if row := strings.TrimSpace(scanner.Text()); row != "" {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return Solution{}, fmt.Errorf("cannot read metromap: %v", err)
	}
	if len(rows) == 0 {
		return Solution{}, fmt.Errorf("empty metromap")
	}
	if len(rows) == 1 && rows[0] == "0" {
		return Solution{Feasible: false}, nil
	}

	solution := Solution{Feasible: true}
	for i, row := range rows {
		tokens := strings.Fields(row)
		if len(tokens) == 1 && len(tokens[0]) > 1 && compactRow.MatchString(tokens[0]) {
			compact := tokens[0]
			tokens = make([]string, 0, len(compact))
			for _, c := range compact {
				tokens = append(tokens, string(c))
			}
		}

		if tokens[len(tokens)-1] != "0" {
			return Solution{}, fmt.Errorf("row %v: expected trailing 0 marker", i+1)
		}

		path := make([]Direction, 0, len(tokens)-1)
		for _, token := range tokens[:len(tokens)-1] {
			direction, err := ParseDirection(token)
			if err != nil {
				return Solution{}, fmt.Errorf("row %v: %v", i+1, err)
			}
			path = append(path, direction)
		}
		solution.Paths = append(solution.Paths, path)
	}

	return solution, nil
}
