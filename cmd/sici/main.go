// Command sici parses and validates Serial Item and Contribution
// Identifiers (ANSI/NISO Z39.56). Identifiers are taken from the command
// line or, when none are given, one per line from stdin. The exit code is
// non-zero when any input fails validation.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"sici/internal/lint"
	"sici/internal/platform/config"
	"sici/internal/platform/logger"
	"sici/pkg/sici"
)

// main wires configuration, the logger and the lint runner; validation
// logic lives in internal/lint and pkg/sici.
func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		mode       = flag.String("mode", "", "parsing mode: strict or lax (overrides config)")
		jobs       = flag.Int("jobs", 0, "max concurrent validations (overrides config)")
		quiet      = flag.Bool("quiet", false, "suppress per-input output")
	)
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *jobs != 0 {
		cfg.Jobs = *jobs
	}
	if *quiet {
		cfg.Quiet = true
	}

	m, err := sici.ParseMode(cfg.Mode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs, err = readLines(os.Stdin)
		if err != nil {
			log.Fatalf("stdin: %v", err)
		}
	}

	runner := &lint.Runner{Mode: m, Jobs: cfg.Jobs}
	findings, err := runner.Run(context.Background(), inputs)
	if err != nil {
		log.Fatalf("lint: %v", err)
	}

	failed := false
	for _, f := range findings {
		if f.Err != nil || !f.Valid {
			failed = true
		}
		if !cfg.Quiet {
			printFinding(os.Stdout, f)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func printFinding(w io.Writer, f lint.Finding) {
	switch {
	case f.Err != nil:
		fmt.Fprintf(w, "ERROR\t%s\t%v\n", f.Input, f.Err)
	case !f.Valid:
		fmt.Fprintf(w, "INVALID\t%s\n", f.Input)
		attrs := make([]string, 0, len(f.Problems))
		for attr := range f.Problems {
			attrs = append(attrs, attr)
		}
		sort.Strings(attrs)
		for _, attr := range attrs {
			for _, msg := range f.Problems[attr] {
				fmt.Fprintf(w, "\t%s: %s\n", attr, msg)
			}
		}
	case !f.RoundTrip:
		fmt.Fprintf(w, "VALID\t%s\t(canonical: %s)\n", f.Input, f.Canonical)
	default:
		fmt.Fprintf(w, "VALID\t%s\n", f.Input)
	}
}
