package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vl-arch/vl-arch/internal/config"
	"github.com/vl-arch/vl-arch/internal/logging"
	"github.com/vl-arch/vl-arch/internal/service"
	"github.com/vl-arch/vl-arch/internal/tray"
)

func main() {
	log.SetFlags(0)

	args, debug, offline, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	if debug {
		logging.EnableDebug()
	}

	secret := resolveSecret()
	if secret == "" {
		log.Fatal("VLARCH_SECRET environment variable is required")
	}

	if len(args) > 0 {
		if err := handleCLI(secret, args); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := tray.NewRunner(secret, offline)

	svc, err := service.New(secret, runner)
	if err != nil {
		log.Fatalf("failed to initialise IPC service: %v", err)
	}
	go func() {
		if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("ipc service exited: %v", err)
		}
	}()

	if err := runner.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("helper exited with error: %v", err)
	}
}

func resolveSecret() string {
	if compiled := strings.TrimSpace(config.CompiledSecret); compiled != "" {
		return compiled
	}
	return strings.TrimSpace(os.Getenv("VLARCH_SECRET"))
}

// parseGlobalFlags strips the flags that apply to every subcommand and
// returns the remaining arguments untouched.
func parseGlobalFlags(args []string) (filtered []string, debug, offline bool, err error) {
	filtered = make([]string, 0, len(args))

	for _, raw := range args {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		normalized := strings.ToLower(strings.TrimLeft(trimmed, "-/"))
		switch {
		case normalized == "debug":
			debug = true
		case strings.HasPrefix(normalized, "debug="):
			debug, err = parseBoolFlag(normalized, "debug=")
			if err != nil {
				return nil, false, false, err
			}
		case normalized == "offline":
			offline = true
		case strings.HasPrefix(normalized, "offline="):
			offline, err = parseBoolFlag(normalized, "offline=")
			if err != nil {
				return nil, false, false, err
			}
		default:
			filtered = append(filtered, raw)
		}
	}

	return filtered, debug, offline, nil
}

func parseBoolFlag(normalized, prefix string) (bool, error) {
	value := strings.TrimPrefix(normalized, prefix)
	switch value {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q for --%s", value, strings.TrimSuffix(prefix, "="))
	}
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
