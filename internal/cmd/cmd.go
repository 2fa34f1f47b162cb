// Package cmd wires flags, configuration and logging around the engine.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/config"
	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/perf"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func Main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer logPanic()

	// Not having a .env is fine.
	_ = godotenv.Load()

	// Bootstrap logging first to log in setup.
	level, err := internal.LogLevelFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad SFGR_VERBOSITY value: %v\n", err)
		os.Exit(1)
	}
	internal.SetLoggingHandler(level, defaultColor())

	setupFlags()
	pflag.Parse()
	if mustBool("help") {
		pflag.Usage()
		return
	}
	if mustBool("version") {
		showVersion()
		return
	}
	internal.SetLoggingHandler(effectiveLevel(level), defaultColor())

	err = run(ctx)
	if err != nil {
		slog.Error("Fatal error.", "err", err)
		if internal.CurrentLevel > slog.LevelDebug {
			slog.Error("Run sfgrantreport with --verbose to get more informations.")
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	start := time.Now()
	conf, err := config.Load(pflag.CommandLine)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	slog.Info("Starting sfgrantreport.",
		"version", version(),
		"pid", os.Getpid(),
	)

	if conf.LeftFolder != "" || conf.RightFolder != "" {
		if conf.LeftFolder == "" || conf.RightFolder == "" {
			return fmt.Errorf("comparison needs both --left-folder and --right-folder")
		}
		err = compare(conf)
	} else {
		err = report(ctx, conf)
	}
	if err != nil {
		return err
	}

	slog.Info("Done.",
		"elapsed", time.Since(start),
		"mempeak", perf.FormatBytes(perf.ReadVMPeak()*1024),
		"snowflake", queryWatch.Total,
		"queries", queryWatch.Count,
	)
	return nil
}

func defaultColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}

func logPanic() {
	p := recover()
	if p == nil {
		return
	}
	slog.Error("Unhandled panic, please report this as a bug.", "panic", p)
	os.Stderr.Write(debug.Stack())
	os.Exit(1)
}
