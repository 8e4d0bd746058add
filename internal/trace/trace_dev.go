//go:build dev

// Package trace records runtime traces in development builds.
//
// Usage:
//
//	CARDMANAGE_TRACE=trace.out cardmanage copy -r card.txt out/
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/trace"
	"sync"
)

var (
	traceFile   *os.File
	traceMu     sync.Mutex
	traceActive bool
)

// Init starts tracing when CARDMANAGE_TRACE names an output file.
// Problems are reported to stderr and tracing stays off.
// The returned function stops tracing.
func Init(stderr io.Writer) func() {
	tracePath := os.Getenv(EnvVar)
	if tracePath == "" {
		return func() {}
	}

	traceMu.Lock()
	defer traceMu.Unlock()

	var err error
	traceFile, err = os.Create(tracePath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "cardmanage: failed to create trace file %s: %v\n", tracePath, err)
		return func() {}
	}

	if err := trace.Start(traceFile); err != nil {
		_, _ = fmt.Fprintf(stderr, "cardmanage: failed to start trace: %v\n", err)
		_ = traceFile.Close()
		traceFile = nil
		return func() {}
	}
	traceActive = true

	return func() {
		traceMu.Lock()
		defer traceMu.Unlock()

		if traceActive {
			trace.Stop()
			traceActive = false
		}
		if traceFile != nil {
			_ = traceFile.Close()
			traceFile = nil
		}
	}
}

// Region opens a trace region and returns the function closing it
func Region(ctx context.Context, regionType string) func() {
	if !traceActive {
		return func() {}
	}
	return trace.StartRegion(ctx, regionType).End
}

// Log attaches a message to the trace
func Log(ctx context.Context, category, message string) {
	if traceActive {
		trace.Log(ctx, category, message)
	}
}

// IsEnabled returns true if tracing is enabled.
func IsEnabled() bool {
	return traceActive
}
