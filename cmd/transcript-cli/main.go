package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rockysnow7/mlb-transformer/internal/analytics"
	"github.com/rockysnow7/mlb-transformer/internal/batch"
	"github.com/rockysnow7/mlb-transformer/internal/parser"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  transcript-cli parse <file>            parse a single transcript
  transcript-cli validate [-workers N] <dir>   parse every .txt under a directory
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "parse":
		if len(os.Args) != 3 {
			usage()
		}
		runParse(os.Args[2])
	case "validate":
		runValidate(os.Args[2:])
	default:
		usage()
	}
}

// runParse parses one transcript and prints the outcome
func runParse(path string) {
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	game, err := parser.Parse(string(text))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}

	runs := analytics.RunsAtEnd(game)
	fmt.Printf("Parsed game %d at %s on %s: %d plays\n",
		game.Context.GamePK, game.Context.Venue, game.Context.Date, len(game.Plays))
	fmt.Printf("Final runs: home (team %d) %d, away (team %d) %d\n",
		game.Context.HomeTeam.ID, runs[game.Context.HomeTeam.ID],
		game.Context.AwayTeam.ID, runs[game.Context.AwayTeam.ID])
}

// runValidate parses every transcript under a directory tree and
// reports the failure count without stopping at the first error
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	workers := fs.Int("workers", 8, "number of parallel parse workers")
	fs.Parse(args)

	if fs.NArg() != 1 {
		usage()
	}
	root := fs.Arg(0)

	runner := batch.NewRunner(*workers)
	report, err := runner.Run(context.Background(), batch.NewJobID(), root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Batch failed: %v\n", err)
		os.Exit(1)
	}

	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "Error in %s: %s\n", failure.Path, failure.Message)
	}
	fmt.Printf("Parsed %d/%d transcripts (%d failed)\n", report.Parsed, report.Total, report.Failed)

	if report.Failed > 0 {
		os.Exit(1)
	}
}
