package main

import (
	"context"
	"flag"
	"log"

	earlyrepair "github.com/jacksadventure/earlyrepair"
)

type args struct {
	positives *string
	negatives *string
	oracle    *string
	cache     *string
	input     *string
	config    *string
}

func readArgs() *args {
	a := &args{
		positives: flag.String("positives", "", "Path to the positive samples file"),
		negatives: flag.String("negatives", "", "Path to the negative samples file"),
		oracle:    flag.String("oracle", "", "Path to the oracle executable"),
		cache:     flag.String("cache", "", "Path to the grammar cache file"),
		input:     flag.String("input", "", "Path to the broken input file"),
		config:    flag.String("config", "", "Path to a TOML config file (optional)"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()

	if *a.positives == "" || *a.negatives == "" || *a.oracle == "" || *a.input == "" {
		log.Fatal("-positives, -negatives, -oracle and -input are all required")
	}

	cfg := earlyrepair.DefaultConfig()
	if *a.config != "" {
		var err error
		cfg, err = earlyrepair.LoadConfigFile(*a.config)
		if err != nil {
			log.Fatalf("can't load config: %s", err.Error())
		}
	}

	broken, err := earlyrepair.ReadSampleFile(*a.input)
	if err != nil || len(broken) == 0 {
		log.Fatalf("can't read input file: %v", err)
	}

	status, err := earlyrepair.RepairFile(
		context.Background(),
		cfg,
		earlyrepair.NewProcessOracle(*a.oracle),
		earlyrepair.PtermLogger{},
		*a.cache,
		*a.positives,
		*a.negatives,
		broken[0],
	)
	if err != nil {
		log.Fatalf("repair failed: %s", err.Error())
	}

	if status.Outcome == earlyrepair.Failed {
		log.Fatalf("gave up after %d attempts", status.Attempts)
	}

	log.Printf("repaired in %d attempt(s), penalty %d: %s", status.Attempts, status.Penalty, status.Result)
}
