//go:build !linux || console

package main

import "unsafe"

// SetWindowIcon does nothing outside Linux GTK builds
func SetWindowIcon(unsafe.Pointer) {}
