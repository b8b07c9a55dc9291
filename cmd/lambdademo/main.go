package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/vic/golambda/pkg/reduce"
	"github.com/vic/golambda/pkg/scenario"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lambdademo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxSteps := fs.Uint64("max-steps", 0, "beta step budget per scenario (0 for none)")
	trace := fs.Int("trace", 0, "print the first N reduction events")
	alt := fs.Bool("alt", true, "also print arrow notation")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	doc := scenario.Default()
	if fs.NArg() > 0 {
		var err error
		doc, err = scenario.LoadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Error reading scenarios: %v\n", err)
			return 1
		}
	}

	red := reduce.NewReducer()
	if *trace > 0 {
		red.EnableTrace(*trace)
	}

	start := time.Now()
	results, err := doc.Run(stdout, scenario.RunOptions{
		Alternate: *alt,
		MaxSteps:  *maxSteps,
		Reducer:   red,
	})
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(stderr, "Reduction error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout)

	failed := lo.Filter(results, func(r scenario.Result, _ int) bool { return !r.OK() })
	for _, r := range failed {
		if r.Err != nil {
			fmt.Fprintf(stderr, "FAIL %s: %v\n", r.Name, r.Err)
		}
		if r.Mismatch != "" {
			fmt.Fprintf(stderr, "FAIL %s: %s\n", r.Name, r.Mismatch)
		}
	}

	printStats(stderr, red.GetStats(), elapsed)
	printTrace(stderr, red.TraceSnapshot())

	if len(failed) > 0 {
		return 1
	}
	return 0
}

func printStats(w io.Writer, stats reduce.Stats, elapsed time.Duration) {
	seconds := elapsed.Seconds()

	fmt.Fprintf(w, "\nStats:\n")
	fmt.Fprintf(w, "Time: %v\n", elapsed)
	fmt.Fprintf(w, "Total Reductions: %d", stats.TotalReductions)
	if seconds > 0 {
		fmt.Fprintf(w, " (%.2f ops/sec)", float64(stats.TotalReductions)/seconds)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "\nBreakdown:\n")
	fmt.Fprintf(w, "  Substitutions:           %6d\n", stats.Substitutions)
	fmt.Fprintf(w, "  No-op Steps:             %6d\n", stats.NoOps)
	if stats.Captures > 0 {
		fmt.Fprintf(w, "  Captures:                %6d\n", stats.Captures)
	}
	if stats.Rebinds > 0 {
		fmt.Fprintf(w, "  Rebinding Steps:         %6d\n", stats.Rebinds)
	}
	if stats.LimitHits > 0 {
		fmt.Fprintf(w, "  Step Limit Hits:         %6d\n", stats.LimitHits)
	}
}

func printTrace(w io.Writer, events []reduce.TraceEvent) {
	if len(events) == 0 {
		return
	}
	fmt.Fprintf(w, "\nTrace:\n")
	for _, ev := range events {
		fmt.Fprintf(w, "  %4d %-10s %s => %s\n", ev.Step, ev.Rule, ev.Redex, ev.Result)
	}
}
