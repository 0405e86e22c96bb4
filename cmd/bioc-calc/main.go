// Command bioc-calc projects the long-term carbon sequestration of biochar
// samples, either once from the command line or as an HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/npco2/bioc-calc/internal/biochar"
	"github.com/npco2/bioc-calc/internal/config"
	"github.com/npco2/bioc-calc/internal/logging"
)

const usage = `usage: bioc-calc <command> [flags]

commands:
  calc    compute a projection for one sample
  serve   run the HTTP API

run "bioc-calc <command> -h" for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	switch args[0] {
	case "calc", "serve":
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "[bioc-calc] unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "[bioc-calc] %v\n", err)
		return 1
	}
	logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	switch args[0] {
	case "calc":
		err = runCalc(args[1:], cfg, logger, stdin, stdout)
	case "serve":
		err = runServe(ctx, args[1:], cfg, logger)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, biochar.ErrInvalidInput), errors.Is(err, biochar.ErrUnsupportedScenario):
		logger.Error().Err(err).Msg("calculation rejected")
		return 2
	default:
		logger.Error().Err(err).Msg("command failed")
		return 1
	}
}

func newEngine(cfg *config.Config, logger zerolog.Logger) *biochar.Engine {
	return biochar.NewEngine(
		biochar.WithLogger(logger),
		biochar.WithParallelScenarios(cfg.ParallelScenarios),
	)
}
