// Command gsrgen writes a synthetic GSR CSV for exercising the analysis
// pipeline by hand: a noisy baseline with configurable step artifacts.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

func main() {
	var (
		out      = flag.String("out", "gsr.csv", "output CSV path")
		duration = flag.Float64("duration", 60, "recording length in seconds")
		rate     = flag.Float64("rate", 5, "sampling rate in Hz")
		baseline = flag.Float64("baseline", 120, "baseline resistance in kohm")
		noise    = flag.Float64("noise", 0.3, "gaussian noise stddev in kohm")
		steps    = flag.String("steps", "10:+5,30:-4", "comma-separated time:delta step artifacts")
		seed     = flag.Int64("seed", 42, "rng seed")
		millis   = flag.Bool("millis", false, "write timestamps in milliseconds")
	)
	flag.Parse()

	artifacts, err := parseSteps(*steps)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gsrgen:", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gsrgen:", err)
		os.Exit(1)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := csv.NewWriter(f)
	defer w.Flush()

	_ = w.Write([]string{"Time (s)", "Resistance (kohm)"})

	n := int(*duration * *rate)
	for i := 0; i <= n; i++ {
		t := float64(i) / *rate
		v := *baseline + rng.NormFloat64()**noise
		for _, a := range artifacts {
			if t >= a.at {
				v += a.delta
			}
		}
		ts := t
		if *millis {
			ts = t * 1000
		}
		_ = w.Write([]string{
			strconv.FormatFloat(ts, 'f', 4, 64),
			strconv.FormatFloat(v, 'f', 4, 64),
		})
	}

	fmt.Printf("wrote %d samples to %s\n", n+1, *out)
}

type step struct {
	at    float64
	delta float64
}

func parseSteps(spec string) ([]step, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	var out []step
	for _, part := range strings.Split(spec, ",") {
		at, delta, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("bad step %q, want time:delta", part)
		}
		t, err := strconv.ParseFloat(at, 64)
		if err != nil {
			return nil, fmt.Errorf("bad step time %q: %w", at, err)
		}
		d, err := strconv.ParseFloat(delta, 64)
		if err != nil {
			return nil, fmt.Errorf("bad step delta %q: %w", delta, err)
		}
		out = append(out, step{at: t, delta: d})
	}
	return out, nil
}
