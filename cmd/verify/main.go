package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lgarciap/metroline/internal/model"
)

func main() {
	basePtr := flag.String("base", "", "Base path: reads <base>.city and <base>.metromap")
	verbosePtr := flag.Bool("verbose", false, "Print per-metro and per-popular-cell details")
	flag.Parse()
	base := *basePtr
	if base == "" && flag.NArg() == 1 {
		base = flag.Arg(0)
	}
	if base == "" {
		log.Fatal("a base path must be specified")
	}

	problem, err := model.ParseCityFile(base + ".city")
	if err != nil {
		log.Fatalf("city parse error: %v", err)
	}

	mapFile, err := os.Open(base + ".metromap")
	if err != nil {
		log.Fatalf("cannot open metromap file: %v", err)
	}
	solution, err := model.ParseMetromap(mapFile)
	mapFile.Close()
	if err != nil {
		log.Fatalf("metromap parse error: %v", err)
	}

	if !solution.Feasible {
		fmt.Println("UNSAT")
		return
	}

	report := model.Verify(problem, solution.Paths)
	if *verbosePtr {
		fmt.Print(report.Detailed())
	} else {
		for _, line := range report.Summary() {
			fmt.Println(line)
		}
		verdict := "INVALID"
		if report.Valid {
			verdict = "VALID"
		}
		fmt.Printf("FINAL VERDICT: %v\n", verdict)
	}

	if !report.Valid {
		os.Exit(1)
	}
}
