// Command gdbridge inspects the native entry points the bridge resolves.
//
// It lists the catalogue, checks it against a gdextension_interface.h from
// a specific engine build, writes a YAML manifest of entries and effective
// configuration, and offers an interactive browser.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/godot-bridge/config"
	"github.com/wippyai/godot-bridge/symbols"
)

func main() {
	var (
		list        = flag.Bool("list", false, "List catalogued entry points and exit")
		group       = flag.String("group", "", "Restrict -list to one group")
		lookup      = flag.String("lookup", "", "Show one entry point by name")
		header      = flag.String("header", "", "Check the catalogue against a gdextension_interface.h")
		manifest    = flag.Bool("manifest", false, "Write a YAML manifest of entries and configuration")
		output      = flag.String("o", "", "Manifest output file (default stdout)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	var err error
	switch {
	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			err = fmt.Errorf("interactive mode needs a terminal; use -list instead")
			break
		}
		err = runInteractive()
	case *list:
		err = runList(os.Stdout, *group)
	case *lookup != "":
		err = runLookup(os.Stdout, *lookup)
	case *header != "":
		err = runHeader(os.Stdout, *header)
	case *manifest:
		err = runManifest(*output)
	default:
		fmt.Fprintln(os.Stderr, "Usage: gdbridge -list [-group name]")
		fmt.Fprintln(os.Stderr, "       gdbridge -lookup <name>")
		fmt.Fprintln(os.Stderr, "       gdbridge -header <gdextension_interface.h>")
		fmt.Fprintln(os.Stderr, "       gdbridge -manifest [-o file.yaml]")
		fmt.Fprintln(os.Stderr, "       gdbridge -i  (interactive mode)")
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runList(w io.Writer, group string) error {
	groups := symbols.Groups()
	if group != "" {
		if len(symbols.InGroup(group)) == 0 {
			return fmt.Errorf("unknown group %q (have %s)", group, strings.Join(groups, ", "))
		}
		groups = []string{group}
	}
	for _, g := range groups {
		entries := symbols.InGroup(g)
		fmt.Fprintf(w, "%s (%d):\n", g, len(entries))
		for _, e := range entries {
			fmt.Fprintf(w, "  %-48s %s\n", e.Name, e.Signature)
		}
	}
	return nil
}

func runLookup(w io.Writer, name string) error {
	e, ok := symbols.Lookup(name)
	if !ok {
		if hints := symbols.Suggest(name, 3); len(hints) > 0 {
			return fmt.Errorf("%q is not catalogued; did you mean %s?", name, strings.Join(hints, ", "))
		}
		return fmt.Errorf("%q is not catalogued", name)
	}
	fmt.Fprintf(w, "Name:      %s\n", e.Name)
	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Group:     %s\n", e.Group)
	fmt.Fprintf(w, "Signature: %s\n", e.Signature)
	return nil
}

func runHeader(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	report := checkHeader(data)
	if report.Declared == 0 {
		return fmt.Errorf("%s declares no @name entry points", path)
	}
	report.write(w)
	if len(report.Missing) > 0 {
		return fmt.Errorf("%d catalogued entry points missing from %s", len(report.Missing), path)
	}
	return nil
}

func runManifest(output string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	w := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create manifest: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeManifest(w, buildManifest(cfg))
}
