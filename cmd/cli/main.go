package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/lgarciap/metroline/internal/model"
	"github.com/lgarciap/metroline/internal/sat"
)

var (
	validSolvers = []string{"gophersat", "kissat", "cadical"}
	solvers      = map[string]func() sat.SATSolver{
		"gophersat": sat.NewGophersatSolver,
		"kissat":    sat.NewKissatSolver,
		"cadical":   sat.NewCadicalSolver,
	}
)

func main() {
	// Define arguments
	filePtr := flag.String("file", "", "Path to the city input file")
	solverPtr := flag.String("solver", "gophersat", "SAT-Solver to use. Allowed values are: \"gophersat\", \"kissat\", \"cadical\", where \"gophersat\" is the default and runs in-process")
	outPtr := flag.String("out", "", "Path to the file where the metromap will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()
	solverStr := strings.ToLower(*solverPtr)
	filePath := *filePtr
	outFile := *outPtr

	// Validate arguments
	if !slices.Contains(validSolvers, solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	problem, err := model.ParseCityFile(filePath)
	if err != nil {
		log.Fatalf("invalid city description: %v", err)
	}

	router := model.NewRouter(solvers[solverStr]())
	solution, err := router.Build(problem)
	if err != nil {
		log.Fatal(err)
	}

	if solution.Feasible && !router.Verify(problem, solution) {
		log.Fatal("verification failed")
	}

	out := os.Stdout
	if outFile != "" {
		out, err = os.Create(outFile)
		if err != nil {
			log.Fatalf("cannot create output file: %v", err)
		}
		defer out.Close()
	}

	writer := bufio.NewWriter(out)
	if err := model.WriteMetromap(writer, solution); err != nil {
		log.Fatalf("cannot write metromap: %v", err)
	}
	if err := writer.Flush(); err != nil {
		log.Fatalf("cannot write metromap: %v", err)
	}
}
