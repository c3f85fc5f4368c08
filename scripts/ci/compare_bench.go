// compare_bench checks `go test -bench` output for the calendar layout and
// month export benchmarks against a baseline run and fails on regressions.
//
//	go test -run '^$' -bench . ./internal/calendar ./internal/export > current.txt
//	go run ./scripts/ci -baseline base.txt -current current.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
)

var (
	suites = []string{"BenchmarkLayout", "BenchmarkMonth"}
	modes  = []string{"standard", "sequential", "weekly"}

	// BenchmarkMonth/weekly-8   12345   9876.5 ns/op ...
	benchLine = regexp.MustCompile(`^(Benchmark(?:Layout|Month)/[a-z]+)(?:-\d+)?\s+\d+\s+(\d+(?:\.\d+)?)\s+ns/op`)
)

// expectedBenchmarks lists every suite/mode pair in report order.
func expectedBenchmarks() []string {
	names := make([]string, 0, len(suites)*len(modes))
	for _, suite := range suites {
		for _, mode := range modes {
			names = append(names, suite+"/"+mode)
		}
	}
	return names
}

type comparisonRow struct {
	name       string
	baselineNs float64
	currentNs  float64
	deltaPct   float64
	pass       bool
}

func main() {
	baselinePath := flag.String("baseline", "", "path to baseline benchmark output")
	currentPath := flag.String("current", "", "path to current benchmark output")
	maxRegressionPct := flag.Float64("max-regression-pct", 20, "largest allowed slowdown in percent")
	flag.Parse()

	if *baselinePath == "" || *currentPath == "" || *maxRegressionPct < 0 {
		fatalf("usage: -baseline FILE -current FILE [-max-regression-pct N>=0]")
	}
	baseline, err := parseBenchmarkOutput(*baselinePath)
	if err != nil {
		fatalf("parse baseline: %v", err)
	}
	current, err := parseBenchmarkOutput(*currentPath)
	if err != nil {
		fatalf("parse current: %v", err)
	}
	rows, err := compareBenchmarks(baseline, current, *maxRegressionPct)
	if err != nil {
		fatalf("compare benchmarks: %v", err)
	}

	writeMarkdownReport(rows, *maxRegressionPct, os.Stdout)
	if summary := os.Getenv("GITHUB_STEP_SUMMARY"); summary != "" {
		f, err := os.OpenFile(summary, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			fatalf("open step summary: %v", err)
		}
		writeMarkdownReport(rows, *maxRegressionPct, f)
		f.Close()
	}
	for _, row := range rows {
		if !row.pass {
			os.Exit(1)
		}
	}
}

// parseBenchmarkOutput maps benchmark name (CPU suffix stripped) to ns/op.
func parseBenchmarkOutput(path string) (map[string]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	results := map[string]float64{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		m := benchLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		ns, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse ns/op for %q: %w", m[1], err)
		}
		results[m[1]] = ns
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%s: no layout or export benchmark results", path)
	}
	return results, nil
}

// compareBenchmarks requires every expected benchmark in current. One missing
// from baseline is new and compared against itself.
func compareBenchmarks(baseline, current map[string]float64, maxRegressionPct float64) ([]comparisonRow, error) {
	var rows []comparisonRow
	for _, name := range expectedBenchmarks() {
		curr, ok := current[name]
		if !ok {
			return nil, fmt.Errorf("missing current benchmark %q", name)
		}
		base, ok := baseline[name]
		if !ok {
			base = curr
		}
		if base <= 0 {
			return nil, fmt.Errorf("non-positive baseline ns/op for %q", name)
		}
		delta := (curr - base) / base * 100
		rows = append(rows, comparisonRow{
			name:       name,
			baselineNs: base,
			currentNs:  curr,
			deltaPct:   delta,
			pass:       delta <= maxRegressionPct,
		})
	}
	return rows, nil
}

func writeMarkdownReport(rows []comparisonRow, maxRegressionPct float64, out io.Writer) {
	fmt.Fprintf(out, "## Calendar Benchmark Comparison\n\nAllowed regression: %.2f%%\n\n", maxRegressionPct)
	fmt.Fprintln(out, "| Benchmark | Baseline ns/op | Current ns/op | Delta | Result |")
	fmt.Fprintln(out, "|---|---:|---:|---:|---|")
	for _, row := range rows {
		result := "PASS"
		if !row.pass {
			result = "FAIL"
		}
		fmt.Fprintf(out, "| %s | %.0f | %.0f | %+0.2f%% | %s |\n", row.name, row.baselineNs, row.currentNs, row.deltaPct, result)
	}
	fmt.Fprintln(out)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
