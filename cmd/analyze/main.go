// Command analyze runs a single decision pass over a JSON request fixture
// and prints the verdict. Useful for replaying captured market snapshots
// against the current thresholds.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"signal-engine/config"
	"signal-engine/internal/engine"
)

func main() {
	fixturePath := flag.String("fixture", "", "path to JSON analysis request")
	relaxed := flag.Bool("relaxed", false, "use relaxed testing thresholds")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -fixture request.json [-relaxed]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read fixture: %v\n", err)
		os.Exit(1)
	}

	var req engine.AnalysisRequest
	if err := json.Unmarshal(data, &req); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse fixture: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	if *relaxed {
		cfg = config.Relaxed()
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	analyzer := engine.NewEnhancedAnalyzer(req.Symbol, cfg.Engine, logger)

	signal, rejection, err := analyzer.Analyze(&req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis error: %v\n", err)
		os.Exit(1)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	if rejection != nil {
		fmt.Printf("NO SIGNAL (%s)\n", rejection.Category)
		out.Encode(rejection)
		return
	}

	fmt.Printf("%s %s confidence=%d tier=%s\n", signal.Symbol, signal.Direction, signal.Confidence, signal.Tier)
	out.Encode(signal)
}
