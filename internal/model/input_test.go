package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCityScenario1(t *testing.T) {
	input := `1
3 1 1 0
0 0 2 0
`
	problem, err := ParseCity(strings.NewReader(input))
	assert.Nil(t, err)
	assert.Equal(t, 1, problem.Scenario)
	assert.Equal(t, Grid{N: 3, M: 1}, problem.Grid)
	assert.Equal(t, 0, problem.J)
	assert.Equal(t, []LineSpec{{Start: Cell{0, 0}, End: Cell{2, 0}}}, problem.Lines)
	assert.Empty(t, problem.Popular)
}

func TestParseCityScenario2(t *testing.T) {
	input := `2
4 3 2 2 3
0 0 3 0
0 2 3 2
1 1 2 2
3 1
`
	problem, err := ParseCity(strings.NewReader(input))
	assert.Nil(t, err)
	assert.Equal(t, 2, problem.Scenario)
	assert.Equal(t, 2, problem.K())
	// Popular coordinates may spread over several lines
	assert.Equal(t, []Cell{{1, 1}, {2, 2}, {3, 1}}, problem.Popular)
}

func TestParseCityFailures(t *testing.T) {
	cases := map[string]string{
		"bad scenario":          "3\n3 1 1 0\n0 0 2 0\n",
		"short header":          "1\n3 1 1\n0 0 2 0\n",
		"missing metro line":    "1\n3 1 2 0\n0 0 2 0\n",
		"non-integer token":     "1\n3 1 1 0\n0 0 x 0\n",
		"missing popular cells": "2\n3 3 1 0 2\n0 0 2 0\n1 1\n",
		"empty input":           "",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCity(strings.NewReader(input))
			assert.NotNil(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() Problem {
		return Problem{
			Scenario: 1,
			Grid:     Grid{N: 3, M: 3},
			J:        1,
			Lines: []LineSpec{
				{Start: Cell{0, 0}, End: Cell{2, 0}},
				{Start: Cell{0, 2}, End: Cell{2, 2}},
			},
		}
	}

	assert.Nil(t, base().Validate())

	t.Run("duplicate starts", func(t *testing.T) {
		problem := base()
		problem.Lines[1].Start = Cell{0, 0}
		assert.ErrorContains(t, problem.Validate(), "share start")
	})

	t.Run("duplicate ends", func(t *testing.T) {
		problem := base()
		problem.Lines[1].End = Cell{2, 0}
		assert.ErrorContains(t, problem.Validate(), "share end")
	})

	t.Run("start equals another line's end", func(t *testing.T) {
		problem := base()
		problem.Lines[1].Start = Cell{2, 0}
		assert.ErrorContains(t, problem.Validate(), "equals end")
	})

	t.Run("endpoint out of bounds", func(t *testing.T) {
		problem := base()
		problem.Lines[0].End = Cell{3, 0}
		assert.ErrorContains(t, problem.Validate(), "out of bounds")
	})

	t.Run("non-positive grid", func(t *testing.T) {
		problem := base()
		problem.Grid = Grid{N: 0, M: 3}
		assert.ErrorContains(t, problem.Validate(), "grid bounds")
	})

	t.Run("popular cells in scenario 1", func(t *testing.T) {
		problem := base()
		problem.Popular = []Cell{{1, 1}}
		assert.ErrorContains(t, problem.Validate(), "scenario 1")
	})
}
