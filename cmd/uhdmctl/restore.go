package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"uhdm/internal/ir"
)

type restoreSummary struct {
	Name       string   `json:"name"`
	Elaborated bool     `json:"elaborated"`
	TopModules []string `json:"top_modules"`
	AllModules []string `json:"all_modules"`
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	in := fs.String("in", "", "path to a serialized design")
	jsonOut := fs.Bool("json", false, "output as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("--in is required")
	}

	_, d, err := restoreDesignFile(*in)
	if err != nil {
		return err
	}

	summary := restoreSummary{Name: d.Name(), Elaborated: d.Elaborated()}
	for _, m := range d.TopModules() {
		summary.TopModules = append(summary.TopModules, m.Name())
	}
	for _, m := range d.AllModules() {
		summary.AllModules = append(summary.AllModules, moduleLabel(m))
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("Design: %s (elaborated=%v)\n", summary.Name, summary.Elaborated)
	fmt.Printf("Top modules: %v\n", summary.TopModules)
	fmt.Printf("All modules:\n")
	for _, m := range summary.AllModules {
		fmt.Printf("  %s\n", m)
	}
	return nil
}

func moduleLabel(m *ir.Module) string {
	if m.Name() == "" {
		return m.DefName() + " (definition)"
	}
	return fmt.Sprintf("%s : %s", m.Name(), m.DefName())
}
