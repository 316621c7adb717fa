package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vl-arch/vl-arch/internal/config"
	"github.com/vl-arch/vl-arch/internal/ipc"
	"github.com/vl-arch/vl-arch/internal/menu"
	"github.com/vl-arch/vl-arch/internal/protocol"
	"github.com/vl-arch/vl-arch/internal/security"
	"github.com/vl-arch/vl-arch/internal/service"
	"github.com/vl-arch/vl-arch/internal/tray"
)

func handleCLI(secret string, args []string) error {
	if len(args) == 0 {
		return errors.New("no command provided")
	}

	command := normalizeCommand(args[0])
	switch command {
	case "list":
		return handleList(secret)
	case "set":
		return handleSet(secret, args[1:])
	case "reset":
		return handleReset(secret, args[1:])
	case "status":
		return handleStatus(secret)
	case "reload":
		return handleReload(secret)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func normalizeCommand(arg string) string {
	trimmed := strings.TrimLeft(arg, "-/")
	return strings.ToLower(trimmed)
}

func handleList(secret string) error {
	cfg, err := config.Load(secret)
	if err != nil {
		return err
	}

	printLinks(tray.EffectiveLinks(cfg), cfg)
	return nil
}

func handleSet(secret string, args []string) error {
	fs := newFlagSet("set")
	id := fs.String("id", "", "action identifier to override")
	label := fs.String("label", "", "replacement display label")
	target := fs.String("url", "", "replacement URL")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return errors.New("missing --id for set")
	}
	if *label == "" && *target == "" {
		return errors.New("set requires --label and/or --url")
	}
	if !knownAction(*id) {
		return fmt.Errorf("unknown action id %q", *id)
	}

	cfg, err := config.Load(secret)
	if err != nil {
		return err
	}

	cfg.SetOverride(config.LinkOverride{
		ActionID:   *id,
		Label:      *label,
		URL:        *target,
		UpdatedUTC: nowUTC(),
	})
	if err := config.Save(cfg, secret); err != nil {
		return err
	}

	fmt.Printf("Updated link for action %s\n", *id)
	return nil
}

func handleReset(secret string, args []string) error {
	fs := newFlagSet("reset")
	id := fs.String("id", "", "action identifier to reset; empty resets all")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(secret)
	if err != nil {
		return err
	}

	if *id == "" {
		cfg.Overrides = nil
	} else if !cfg.RemoveOverride(*id) {
		return fmt.Errorf("no override for action %s", *id)
	}

	if err := config.Save(cfg, secret); err != nil {
		return err
	}

	fmt.Println("Overrides reset")
	return nil
}

func handleStatus(secret string) error {
	resp, err := queryHelper(secret, protocol.CommandLinksGet)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("helper reported: %s", resp.Error)
	}

	printLinks(resp.Links, nil)
	return nil
}

func handleReload(secret string) error {
	resp, err := queryHelper(secret, protocol.CommandLinksReload)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("helper reported: %s", resp.Error)
	}

	fmt.Println("Reload requested")
	return nil
}

func queryHelper(secret, command string) (protocol.Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return service.Query(ctx, ipc.DefaultEndpoint(), protocol.Request{
		Token:     security.ResolveServiceToken(secret),
		Command:   command,
		RequestID: uuid.NewString(),
	})
}

func printLinks(links []menu.Link, cfg *config.Config) {
	if len(links) == 0 {
		fmt.Println("No links available")
		return
	}

	fmt.Printf("%-16s %-24s %-44s %s\n", "ID", "Label", "URL", "Overridden")
	for _, link := range links {
		overridden := ""
		if cfg != nil && cfg.Override(link.ID) != nil {
			overridden = "yes"
		}
		fmt.Printf("%-16s %-24s %-44s %s\n", link.ID, truncate(link.Label, 24), truncate(link.URL, 44), overridden)
	}
}

func knownAction(id string) bool {
	for _, link := range menu.DefaultLinks() {
		if link.ID == id {
			return true
		}
	}
	return false
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	return fs
}
