package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// runConsoleMode prints an Age/Value table for every start-up scenario
func runConsoleMode(config *Config, out io.Writer, logger *logrus.Logger) {
	PrintHeader(out)
	printed := 0
	for i, p := range config.StartupScenarios() {
		if err := p.Validate(); err != nil {
			logger.WithField("index", i).Warnf("skipping start-up scenario: %v", err)
			continue
		}
		PrintScenarioTable(out, p)
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(out, "No valid scenarios configured.")
	}
}

// PrintHeader prints the console banner
func PrintHeader(out io.Writer) {
	fmt.Fprintln(out, "╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(out, "║                     COMPOUND INTEREST OVER TIME                              ║")
	fmt.Fprintln(out, "╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(out)
}

// PrintScenarioTable prints one scenario's label and its year-by-year values
func PrintScenarioTable(out io.Writer, p Params) {
	series := p.Series()
	fmt.Fprintln(out, p.Label())
	fmt.Fprintln(out, strings.Repeat("─", 40))
	fmt.Fprintf(out, "%6s  %20s  %10s\n", "Age", "Value", "")
	for _, pt := range series {
		fmt.Fprintf(out, "%6d  %20s  %10s\n", pt.Age, formatValue(pt.Value), formatMoney(pt.Value))
	}
	if len(series) > 0 {
		last := series[len(series)-1]
		fmt.Fprintf(out, "Final value at age %d: %s\n", last.Age, formatValue(last.Value))
	}
	fmt.Fprintln(out)
}
