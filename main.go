package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"

	"github.com/sirupsen/logrus"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compound Interest Visualizer

Plots how an investment grows year by year under annual compounding with a
fixed yearly contribution. Each scenario gets an input panel; add as many as
you like and compare them on one chart. Hover a point to inspect it, click to
pin the tooltip.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                           Desktop window (default)
  %s -config my.yaml           Use custom configuration file
  %s -web                      Web server mode (opens external browser)
  %s -web -addr :8080          Web server on specific port
  %s -console                  Print the configured scenarios as tables

Configuration:
  defaults:   parameters for every new plot input section
  scenarios:  plots shown at start-up (defaults once if empty)
  Percentages may be written as 8%% or 0.08.
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	webAddr := flag.String("addr", "localhost:0", "Web server address (for -web mode, use :0 for auto port)")
	consoleMode := flag.Bool("console", false, "Print scenario tables instead of opening a window")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides config")
	flag.Parse()

	config, err := LoadConfigOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		config.Logging.Level = *logLevel
	}
	if flagWasSet("addr") || config.Server.Addr == "" {
		config.Server.Addr = *webAddr
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	logger := NewLogger(config.Logging, os.Stderr)

	if *consoleMode {
		runConsoleMode(config, os.Stdout, logger)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop, err := startApp(ctx, config, logger)
	if err != nil {
		logger.Errorf("start-up failed: %v", err)
		os.Exit(1)
	}
	defer loop.Close()

	// Web server mode (external browser)
	if *webMode {
		server := NewWebServer(loop, config.Server.Addr, logger)
		if err := server.Start(); err != nil {
			logger.Errorf("Web server error: %v", err)
			os.Exit(1)
		}
		return
	}

	// Embedded browser mode, no console fallback
	if *uiMode {
		if err := runEmbeddedUI(loop, config, logger); err != nil {
			logger.Errorf("Embedded UI error: %v", err)
			os.Exit(1)
		}
		return
	}

	// Default: GUI mode
	if err := runGUI(loop, config, logger); err != nil {
		fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
		fmt.Println("Falling back to console mode...")
		runConsoleMode(config, os.Stdout, logger)
	}
}

// startApp wires surface, chart manager and visualizer, adds the start-up
// scenarios and starts the event loop that owns them
func startApp(ctx context.Context, config *Config, logger *logrus.Logger) (*EventLoop, error) {
	vis, err := buildVisualizer(config, logger)
	if err != nil {
		return nil, err
	}
	loop := NewEventLoop(vis, logger)
	go loop.Run(ctx)
	return loop, nil
}

// buildVisualizer creates the visualizer with one panel per valid start-up scenario
func buildVisualizer(config *Config, logger *logrus.Logger) (*Visualizer, error) {
	surface := NewSVGSurface(config.Chart.Width, config.Chart.Height)
	manager := NewChartManager(surface, logger)
	vis, err := NewVisualizer(manager, config.Defaults, logger)
	if err != nil {
		return nil, err
	}
	for i, p := range config.StartupScenarios() {
		if _, err := vis.AddPanelWith(p); err != nil {
			logger.WithField("index", i).Warnf("skipping start-up scenario: %v", err)
		}
	}
	return vis, nil
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		fmt.Fprintf(os.Stderr, "Cannot open browser on %s\n", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}
