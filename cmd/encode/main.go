package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	"github.com/lgarciap/metroline/internal/model"
)

func main() {
	basePtr := flag.String("base", "", "Base path: reads <base>.city and writes <base>.satinput and <base>.varmap.json")
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
		log.Fatalf("invalid city description: %v", err)
	}

	satInstance, varMap, err := model.NewEncoder().Encode(problem)
	if err != nil {
		log.Fatalf("cannot encode problem: %v", err)
	}

	satFile, err := os.Create(base + ".satinput")
	if err != nil {
		log.Fatalf("cannot create satinput file: %v", err)
	}
	defer satFile.Close()

	writer := bufio.NewWriter(satFile)
	satInstance.WriteDIMACS(writer)
	if err := writer.Flush(); err != nil {
		log.Fatalf("cannot write satinput file: %v", err)
	}

	if err := varMap.Save(base + ".varmap.json"); err != nil {
		log.Fatalf("cannot write variable map: %v", err)
	}
}
