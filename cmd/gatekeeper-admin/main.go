package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spinwheel/gatekeeper/config"
	"github.com/spinwheel/gatekeeper/internal/bootstrap"
	"github.com/spinwheel/gatekeeper/internal/ports"
	"github.com/spinwheel/gatekeeper/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"users-list": {
			name:        "users-list",
			description: "List registered users",
			run:         runUsersList,
		},
		"user-update": {
			name:        "user-update",
			description: "Change a user's role or block status",
			run:         runUserUpdate,
		},
		"user-delete": {
			name:        "user-delete",
			description: "Delete a user record",
			run:         runUserDelete,
		},
		"channels-list": {
			name:        "channels-list",
			description: "List required membership channels",
			run:         runChannelsList,
		},
		"channel-add": {
			name:        "channel-add",
			description: "Add a required membership channel",
			run:         runChannelAdd,
		},
		"channel-remove": {
			name:        "channel-remove",
			description: "Remove a required membership channel",
			run:         runChannelRemove,
		},
		"channel-resolve": {
			name:        "channel-resolve",
			description: "Resolve a channel handle to its platform id",
			run:         runChannelResolve,
		},
		"origins-list": {
			name:        "origins-list",
			description: "List allowed embedding origins",
			run:         runOriginsList,
		},
		"origin-add": {
			name:        "origin-add",
			description: "Add an allowed embedding origin",
			run:         runOriginAdd,
		},
		"origin-remove": {
			name:        "origin-remove",
			description: "Remove an allowed embedding origin",
			run:         runOriginRemove,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: gatekeeper-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(os.Stdout, "  %-18s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// buildAdminService wires the admin service for one command. With the
// yes flag set, delete confirmations are auto-accepted; otherwise they
// prompt on the terminal.
func buildAdminService(cmdCtx *commandContext, yes bool) (*service.AdminService, error) {
	var confirm ports.ConfirmPrompt
	if yes {
		confirm = autoConfirm{}
	} else {
		confirm = &stdinConfirm{in: os.Stdin, out: os.Stderr}
	}

	return bootstrap.BuildAdminService(bootstrap.AdminClientConfig{
		App:     cmdCtx.Config,
		Confirm: confirm,
		Logger:  cmdCtx.Logger,
	})
}

// stdinConfirm asks for a y/N answer on the terminal.
type stdinConfirm struct {
	in  io.Reader
	out io.Writer
}

func (c *stdinConfirm) Confirm(prompt string) (bool, error) {
	if err := writef(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// autoConfirm accepts every confirmation, for scripted use.
type autoConfirm struct{}

func (autoConfirm) Confirm(string) (bool, error) { return true, nil }

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
