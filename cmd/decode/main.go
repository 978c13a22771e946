package main

import (
	"bufio"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/lgarciap/metroline/internal/model"
	"github.com/lgarciap/metroline/internal/sat"
)

func main() {
	basePtr := flag.String("base", "", "Base path: reads <base>.varmap.json")
	solutionPtr := flag.String("solution", "", "Path to the solver output file (SAT/UNSAT plus literals)")
	outPtr := flag.String("out", "", "Path to the metromap file to write")
	flag.Parse()

	if *basePtr == "" || *solutionPtr == "" || *outPtr == "" {
		log.Fatal("base, solution and out paths must all be specified")
	}

	varMap, err := model.VarMapFromJson(*basePtr + ".varmap.json")
	if err != nil {
		log.Fatalf("cannot load variable map: %v", err)
	}

	content, err := os.ReadFile(*solutionPtr)
	if err != nil {
		log.Fatalf("cannot read solver output: %v", err)
	}
	assignment, err := sat.ParseSolutionFile(string(content))
	if err != nil {
		log.Fatalf("malformed solver output: %v", err)
	}

	solution, err := model.NewDecoder().Decode(varMap, assignment)
	if errors.Is(err, model.ErrInconsistentModel) {
		log.Fatalf("encoding defect: %v", err)
	} else if err != nil {
		log.Fatalf("cannot decode solution: %v", err)
	}

	outFile, err := os.Create(*outPtr)
	if err != nil {
		log.Fatalf("cannot create metromap file: %v", err)
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	if err := model.WriteMetromap(writer, solution); err != nil {
		log.Fatalf("cannot write metromap: %v", err)
	}
	if err := writer.Flush(); err != nil {
		log.Fatalf("cannot write metromap: %v", err)
	}
}
