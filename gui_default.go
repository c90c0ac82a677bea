//go:build !console

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	webview "github.com/webview/webview_go"
)

const windowTitle = "Compound Interest Visualizer"

// runEmbeddedUI serves the UI on a private port and shows it in a webview window
func runEmbeddedUI(loop *EventLoop, config *Config, logger *logrus.Logger) error {
	ws := NewWebServer(loop, "localhost:0", logger)

	url, cleanup, err := ws.StartForEmbedded()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer cleanup()

	w := webview.New(config.Window.Debug)
	if w == nil {
		return fmt.Errorf("failed to create webview window")
	}
	defer w.Destroy()

	SetWindowIcon(w.Window())
	w.SetTitle(windowTitle)
	w.SetSize(config.Window.Width, config.Window.Height, webview.HintNone)
	w.Navigate(url)

	// Run blocks until window is closed
	w.Run()
	logger.Info("window closed")
	return nil
}

// runGUI starts the graphical user interface (uses embedded browser)
func runGUI(loop *EventLoop, config *Config, logger *logrus.Logger) error {
	return runEmbeddedUI(loop, config, logger)
}
