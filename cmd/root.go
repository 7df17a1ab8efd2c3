// Package cmd wires up the CLI flags and starts the companion bridge.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"companiond/bridge"
	"companiond/config"
	"companiond/console"
	"companiond/internal/metrics"
	"companiond/playlist"
	"companiond/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X companiond/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the companion bridge until the context
// is cancelled or the console goes offline.
func Execute(ctx context.Context, args []string) error {
	cfg := config.New()
	fs := flag.NewFlagSet("companiond", flag.ContinueOnError)

	// ── socket ───────────────────────────────────────────────────
	var host string
	var port int
	fs.StringVarP(&host, "host", "H", config.DefaultHost, "Bind host for the companion socket")
	fs.IntVarP(&port, "port", "p", config.DefaultPort, "Bind port for the companion socket")

	// ── config file ──────────────────────────────────────────────
	var configPath string
	fs.StringVarP(&configPath, "config", "c", "", "YAML config file")

	// ── playlist ─────────────────────────────────────────────────
	var mode string
	fs.StringVarP(&mode, "mode", "m", config.DefaultPlaylistMode,
		"Playlist traversal mode (sequential, loop, repeat)")

	// ── output ───────────────────────────────────────────────────
	var verbose int
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")
	var logFile string
	fs.StringVar(&logFile, "log-file", "", "Rotating log file path")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("companiond %s\n", version)
		return nil
	}

	// ── layer config: defaults < file < env < flags ──────────────
	if configPath != "" {
		if err := config.LoadFile(cfg, configPath); err != nil {
			return err
		}
	} else if err := config.LoadDefaultFile(cfg); err != nil {
		return err
	}
	config.LoadFromEnv(cfg)

	if fs.Changed("host") {
		cfg.Host = host
	}
	if fs.Changed("port") {
		cfg.Port = port
	}
	if fs.Changed("mode") {
		cfg.PlaylistMode = mode
	}
	if fs.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if fs.Changed("log-file") {
		cfg.LogFile = logFile
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)
	if cfg.LogFile != "" {
		logger.LogToFile(cfg.LogFile, cfg.LogMaxSize, cfg.LogBackups)
	}
	defer logger.Close() //nolint:errcheck

	queue := playlist.New()
	queue.SetMode(cfg.Mode())

	collector := metrics.New()
	cons := console.New(queue, logger, collector)

	srv, err := bridge.Listen(ctx, cfg.Host, cfg.Port, logger)
	if err != nil {
		return err
	}

	b := bridge.New(srv, cons, logger, collector)
	runErr := b.Run(ctx)

	if logger.Level() >= util.LogDebug {
		if data, err := json.MarshalIndent(collector.Snapshot(), "", "  "); err == nil {
			logger.Debug("session metrics:\n%s", data)
		}
	}
	return runErr
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `companiond – companion socket bridge v%s

Bridges a remote companion app to the local bot console over a
single-client, line-oriented TCP socket.

Usage:
  companiond [options]                        Serve with defaults
  companiond -H 0.0.0.0 -p 7777               Bind explicitly
  companiond -c companiond.yaml -vv           Config file, verbose

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Protocol:
  One command per line, space-separated tokens, newline terminated.
  Every received line is answered with "200/OK".

Examples:
  printf 'add song\nplay\n' | nc localhost 7777
  COMPANION_PORT=9000 companiond -v
`)
}
