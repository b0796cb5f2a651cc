package main

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/godot-bridge/config"
	"github.com/wippyai/godot-bridge/symbols"
)

type manifest struct {
	Module  string          `yaml:"module"`
	Entries int             `yaml:"entries"`
	Config  config.Config   `yaml:"config"`
	Groups  []manifestGroup `yaml:"groups"`
}

type manifestGroup struct {
	Name    string          `yaml:"name"`
	Entries []manifestEntry `yaml:"entries"`
}

type manifestEntry struct {
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
}

func buildManifest(cfg config.Config) manifest {
	m := manifest{
		Module:  "github.com/wippyai/godot-bridge",
		Entries: symbols.Count,
		Config:  cfg,
	}
	for _, g := range symbols.Groups() {
		mg := manifestGroup{Name: g}
		for _, e := range symbols.InGroup(g) {
			mg.Entries = append(mg.Entries, manifestEntry{Name: e.Name, Signature: e.Signature})
		}
		m.Groups = append(m.Groups, mg)
	}
	return m
}

func writeManifest(w io.Writer, m manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
