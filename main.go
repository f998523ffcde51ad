package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"widgetdemo/internal/config"
	"widgetdemo/internal/logging"
	"widgetdemo/internal/mcpserver"
	"widgetdemo/ui/tui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	mode := "tui"
	if len(args) > 0 && args[0] == "mcp" {
		mode = "mcp"
		args = args[1:]
	}

	cfg, rest, err := config.LoadArgs(args, os.Environ())
	if errors.Is(err, config.ErrHelp) {
		config.Usage(os.Stdout)
		return 0
	}
	if err == nil && len(rest) > 0 {
		err = fmt.Errorf("unexpected arguments %q", rest)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		config.Usage(os.Stderr)
		return 2
	}

	log, closeLog, err := logging.New(cfg.Logging.File, cfg.Logging.Level, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer closeLog()

	switch mode {
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = mcpserver.NewServer(cfg, log).Start(ctx)
	default:
		err = tui.Start(cfg, log)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("exited with error", "mode", mode, "error", err)
		fmt.Fprintf(os.Stderr, "Error running %s: %v\n", mode, err)
		return 1
	}
	return 0
}
