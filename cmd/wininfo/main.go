// Command wininfo prints overlap-add properties of STFT window functions.
//
// Usage:
//
//	wininfo [flags] [window-name ...]
//
// Without arguments it prints info for all known window types.
//
// Examples:
//
//	wininfo hann
//	wininfo -size 2048 -hop 512 blackman
//	wininfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-phaser/dsp/stft"
	"github.com/cwbudde/algo-phaser/dsp/window"
)

type windowEntry struct {
	name string
	typ  window.Type
}

var registry = []windowEntry{
	{"rectangular", window.TypeRectangular},
	{"hann", window.TypeHann},
	{"hamming", window.TypeHamming},
	{"blackman", window.TypeBlackman},
	{"cosine", window.TypeCosine},
}

func main() {
	size := flag.Int("size", 1024, "frame length in samples")
	hop := flag.Int("hop", 256, "hop length in samples")
	list := flag.Bool("list", false, "list available window names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wininfo [flags] [window-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints overlap-add properties of periodic STFT windows.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints info for all windows.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wininfo hann blackman\n")
		fmt.Fprintf(os.Stderr, "  wininfo -size 2048 -hop 512 hamming\n")
		fmt.Fprintf(os.Stderr, "  wininfo -list\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	entries := resolveEntries(names)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching window types\n")
		os.Exit(1)
	}

	if err := printAnalysis(os.Stdout, entries, *size, *hop); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}

	sort.Strings(names)

	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

func resolveEntries(names []string) []windowEntry {
	byName := make(map[string]windowEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []windowEntry

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))

		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown window %q (use -list to see available)\n", name)
			continue
		}

		result = append(result, e)
	}

	return result
}

// printAnalysis writes one row per window: coherent gain, the range of the
// squared-window overlap gain at the hop, and the streaming latency. Pairs
// that cannot be normalized are reported instead of failing the table.
func printAnalysis(w io.Writer, entries []windowEntry, size, hop int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tHop\tCoherent Gain\tOLA Min\tOLA Max\tConstant\tLatency\n")
	fmt.Fprintf(tw, "------\t----\t---\t-------------\t-------\t-------\t--------\t-------\n")

	for _, e := range entries {
		coeffs := window.Generate(e.typ, size, window.WithPeriodic())
		if coeffs == nil {
			return fmt.Errorf("invalid window size %d", size)
		}

		sum := 0.0
		for _, c := range coeffs {
			sum += c
		}

		gain, err := window.OverlapGain(coeffs, hop)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%.6f\t-\t-\t%v\t-\n", e.name, size, hop, sum/float64(size), err)
			continue
		}

		lo, hi := math.Inf(1), math.Inf(-1)
		for _, g := range gain {
			lo = math.Min(lo, g)
			hi = math.Max(hi, g)
		}

		latency := "-"
		if eng, err := stft.New(size, hop, 1, stft.WithWindow(e.typ)); err == nil {
			latency = fmt.Sprint(eng.Latency())
		}

		constant := "no"
		if window.IsConstantOverlap(gain, 1e-9*hi) {
			constant = "yes"
		}

		fmt.Fprintf(tw, "%s\t%d\t%d\t%.6f\t%.6f\t%.6f\t%s\t%s\n",
			e.name, size, hop, sum/float64(size), lo, hi, constant, latency)
	}

	return tw.Flush()
}
