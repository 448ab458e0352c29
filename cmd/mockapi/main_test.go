package main

import (
	"strings"
	"testing"
)

func TestApp_RejectsInvalidLogLevel(t *testing.T) {
	err := newApp().Run([]string{"mockapi", "--seed=false", "--log-level", "loud"})
	if err == nil || !strings.Contains(err.Error(), "log level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}
