package vlog

import "testing"

func TestSetVerbosityDoesNotPanic(t *testing.T) {
	SetVerbosity(0)
	SetVerbosity(1)
	SetVerbosity(2)
	SetVerbosity(99)
}

func TestSetNoColorDoesNotPanic(t *testing.T) {
	SetNoColor(true)
	SetNoColor(false)
}
