package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"text/tabwriter"
)

type originRemoveOptions struct {
	ID  int64
	Yes bool
}

func runOriginsList(cmdCtx *commandContext, _ []string) error {
	admin, err := buildAdminService(cmdCtx, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	origins, err := admin.Origins(ctx)
	if err != nil {
		return err
	}
	if len(origins) == 0 {
		return writeln(os.Stdout, "No allowed origins configured.")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tORIGIN"); err != nil {
		return err
	}
	for _, origin := range origins {
		if err := writef(w, "%d\t%s\n", origin.ID, origin.URL); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runOriginAdd(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("origin-add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	url := fs.String("url", "", "Origin URL to allow (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *url == "" {
		return errors.New("--url is required")
	}

	admin, err := buildAdminService(cmdCtx, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	created, err := admin.AddOrigin(ctx, *url)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Added origin %q (id: %d)\n", created.URL, created.ID)
}

func runOriginRemove(cmdCtx *commandContext, args []string) error {
	opts, err := parseOriginRemoveFlags(args)
	if err != nil {
		return err
	}

	admin, err := buildAdminService(cmdCtx, opts.Yes)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	deleted, err := admin.RemoveOrigin(ctx, opts.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return writeln(os.Stdout, "Aborted.")
	}
	return writef(os.Stdout, "Removed origin %d\n", opts.ID)
}

func parseOriginRemoveFlags(args []string) (originRemoveOptions, error) {
	fs := flag.NewFlagSet("origin-remove", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts originRemoveOptions
	fs.Int64Var(&opts.ID, "id", 0, "Origin record id (required)")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return originRemoveOptions{}, err
	}
	if opts.ID == 0 {
		return originRemoveOptions{}, errors.New("--id is required")
	}

	return opts, nil
}
