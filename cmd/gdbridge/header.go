package main

import (
	"fmt"
	"io"
	"regexp"

	"github.com/wippyai/godot-bridge/symbols"
)

// The interface header documents each entry point with an "@name" tag.
var nameTag = regexp.MustCompile(`@name\s+([A-Za-z0-9_]+)`)

func headerNames(data []byte) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range nameTag.FindAllSubmatch(data, -1) {
		name := string(m[1])
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

type missingEntry struct {
	Name  string
	Group string
	Hints []string
}

type headerReport struct {
	Declared int
	Missing  []missingEntry
	// Extra lists header entry points the bridge does not resolve.
	Extra []string
}

func checkHeader(data []byte) headerReport {
	names := headerNames(data)
	declared := make(map[string]bool, len(names))
	for _, n := range names {
		declared[n] = true
	}

	report := headerReport{Declared: len(names)}
	for _, e := range symbols.All() {
		if declared[e.Name] {
			continue
		}
		report.Missing = append(report.Missing, missingEntry{
			Name:  e.Name,
			Group: e.Group,
			Hints: symbols.Closest(e.Name, names, 3),
		})
	}
	for _, n := range names {
		if _, ok := symbols.Lookup(n); !ok {
			report.Extra = append(report.Extra, n)
		}
	}
	return report
}

func (r headerReport) write(w io.Writer) {
	fmt.Fprintf(w, "Header declares %d entry points, catalogue has %d.\n", r.Declared, symbols.Count)
	if len(r.Missing) == 0 {
		fmt.Fprintln(w, "All catalogued entry points are declared.")
	} else {
		fmt.Fprintf(w, "\nMissing (%d):\n", len(r.Missing))
		for _, m := range r.Missing {
			fmt.Fprintf(w, "  [%s] %s", m.Group, m.Name)
			if len(m.Hints) > 0 {
				fmt.Fprintf(w, "  (header has %v)", m.Hints)
			}
			fmt.Fprintln(w)
		}
	}
	if len(r.Extra) > 0 {
		fmt.Fprintf(w, "\nNot resolved by the bridge (%d):\n", len(r.Extra))
		for _, n := range r.Extra {
			fmt.Fprintf(w, "  %s\n", n)
		}
	}
}
