package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"liftsim/src/config"
	"liftsim/src/engine"
	"liftsim/src/logger"
	"liftsim/src/scenario"
)

func main() {
	runPath := flag.String("run", "", "Scenario file to simulate")
	generatePath := flag.String("generate", "", "YAML generator input to expand into a scenario file")
	outPath := flag.String("out", "", "Output file for -generate (default stdout)")
	lifts := flag.Int("lifts", 1, "Number of lifts")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.GetConfigured(level)

	switch {
	case *generatePath != "":
		if err := generate(*generatePath, *outPath); err != nil {
			log.Fatal().Err(err).Msg("generate failed")
		}
	case *runPath != "":
		if err := run(*runPath, *lifts); err != nil {
			log.Fatal().Err(err).Msg("run failed")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func generate(inPath, outPath string) error {
	in, err := config.LoadGeneratorInput(inPath)
	if err != nil {
		return err
	}
	text, err := scenario.Generate(in.Lift, in.Flows, in.Lift.Name)
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Print(text)
		return nil
	}
	return os.WriteFile(outPath, []byte(text), 0o644)
}

func run(path string, lifts int) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	def, err := scenario.Parse(string(text))
	if err != nil {
		return err
	}
	eng, err := engine.New(def, lifts)
	if err != nil {
		return err
	}
	report, err := eng.Run()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
