//go:build console

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// runEmbeddedUI is a stub for console-only builds
func runEmbeddedUI(*EventLoop, *Config, *logrus.Logger) error {
	return fmt.Errorf("embedded UI not available in console build. Use -web flag for external browser mode")
}

// runGUI is a stub for console-only builds
func runGUI(*EventLoop, *Config, *logrus.Logger) error {
	return fmt.Errorf("GUI not available in console build. Use -web flag for external browser mode")
}
