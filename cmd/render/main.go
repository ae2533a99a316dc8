// Command render runs a saved alerts.in.ua response through the monitor and
// prints the resulting panel as plain text.
//
// Usage:
//
//	render -source alerts -at 2024-05-01T09:00:00Z active.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/air-alert-monitor/internal/adapter/alertsinua"
	"github.com/couchcryptid/air-alert-monitor/internal/config"
	"github.com/couchcryptid/air-alert-monitor/internal/monitor"
	"github.com/couchcryptid/air-alert-monitor/internal/observability"
	"github.com/jonboulle/clockwork"
)

func main() {
	source := flag.String("source", "", "payload variant: alerts or iot (default ALERTS_SOURCE)")
	at := flag.String("at", "", "render as of this RFC 3339 instant instead of now")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <payload.json>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *source != "" {
		cfg.Source = config.Source(*source)
		if cfg.Source != config.SourceAlerts && cfg.Source != config.SourceIoT {
			fmt.Fprintf(os.Stderr, "unknown source %q\n", *source)
			os.Exit(2)
		}
	}

	clock := clockwork.NewRealClock()
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -at: %v\n", err)
			os.Exit(2)
		}
		clock = clockwork.NewFakeClockAt(t)
	}

	logger := observability.NewLogger(cfg, os.Stderr)
	metrics := observability.NewMetrics()

	src := alertsinua.NewFileSource(flag.Arg(0), cfg.Source, logger, metrics)
	mon := monitor.New(src, cfg, clock, logger, metrics)

	panel, err := mon.Refresh(context.Background())
	fmt.Print(panel.PlainText())
	if err != nil {
		os.Exit(1)
	}
}
