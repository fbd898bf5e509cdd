package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/spinwheel/gatekeeper/config"
	"github.com/spinwheel/gatekeeper/internal/bootstrap"
	domainauth "github.com/spinwheel/gatekeeper/internal/domain/auth"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting gatekeeper",
		"gateway_url", cfg.Gateway.BaseURL,
		"dev_mode", cfg.IsDev,
		"enabled_services", bootstrap.GetEnabledServices(&cfg))

	if err = bootstrap.ValidateServiceConfig(&cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Dev gateway alone serves until interrupted. With the session flow
	// also enabled it runs in the background for the session to talk to.
	if cfg.IsDevGatewayEnabled() && !cfg.IsSessionEnabled() {
		return runDevGateway(ctx, cfg, logger)
	}

	if cfg.IsDevGatewayEnabled() {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return runDevGateway(gctx, cfg, logger)
		})
		g.Go(func() error {
			defer stop()
			return runSession(gctx, cfg, logger)
		})
		return g.Wait()
	}

	return runSession(ctx, cfg, logger)
}

// runDevGateway serves the dev gateway with graceful shutdown.
func runDevGateway(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) error {
	server := bootstrap.BuildDevGatewayServer(bootstrap.DevGatewayConfig{App: cfg, Logger: logger})

	httpServer := &http.Server{
		Addr:              cfg.DevGateway.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: cfg.Gateway.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "dev gateway listening", "addr", cfg.DevGateway.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.DevGateway.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown dev gateway: %w", err)
	}
	return <-errCh
}

// runSession drives one authentication attempt, showing missing
// channels and offering manual re-checks until the session reaches a
// terminal phase.
func runSession(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) error {
	orch, err := bootstrap.BuildOrchestrator(bootstrap.SessionConfig{
		App:    cfg,
		Logger: logger,
		OnTransition: func(s domainauth.Snapshot) {
			logger.Debug("session phase", "phase", string(s.Phase))
		},
	})
	if err != nil {
		return err
	}

	snap := orch.Run(ctx)

	reader := bufio.NewReader(os.Stdin)
	for snap.Phase == domainauth.PhaseMembershipPending {
		if err := printMissingChannels(snap.MissingGroups); err != nil {
			return err
		}
		if err := write(os.Stdout, "\nJoin the channels above, then press enter to re-check (q to quit): "); err != nil {
			return err
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil {
			return fmt.Errorf("read input: %w", readErr)
		}
		if strings.TrimSpace(line) == "q" {
			return errors.New("membership requirements not satisfied")
		}

		snap = orch.Reverify(ctx)
	}

	return reportOutcome(snap)
}

func printMissingChannels(missing []domainauth.RequiredGroup) error {
	if err := writef(os.Stdout, "\nMembership required for %d channel(s):\n\n", len(missing)); err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "CHANNEL\tJOIN URL"); err != nil {
		return err
	}
	for _, group := range missing {
		if err := writef(w, "%s\t%s\n", group.DisplayName, group.JoinURL); err != nil {
			return err
		}
	}
	return w.Flush()
}

func reportOutcome(snap domainauth.Snapshot) error {
	switch snap.Phase {
	case domainauth.PhaseAuthenticated:
		name := ""
		if snap.Claim != nil {
			name = snap.Claim.DisplayName()
		}
		return writef(os.Stdout, "\nAuthenticated as %s (role: %s)\n", name, snap.Role)
	case domainauth.PhaseBlocked:
		if err := writef(os.Stdout, "\nAccess blocked: %s\n", snap.BlockReason); err != nil {
			return err
		}
		return errors.New("access blocked")
	case domainauth.PhaseFailed:
		return fmt.Errorf("session failed: %s", snap.FailureMessage)
	default:
		return fmt.Errorf("session ended in unexpected phase %q", snap.Phase)
	}
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
