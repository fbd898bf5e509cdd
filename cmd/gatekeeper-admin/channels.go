package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"text/tabwriter"

	"github.com/spinwheel/gatekeeper/internal/domain/model"
)

type channelAddOptions struct {
	Handle string
	Name   string
	URL    string
}

type channelRemoveOptions struct {
	ID  int64
	Yes bool
}

func runChannelsList(cmdCtx *commandContext, _ []string) error {
	admin, err := buildAdminService(cmdCtx, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	channels, err := admin.Channels(ctx)
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		return writeln(os.Stdout, "No required channels configured.")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tCHANNEL ID\tNAME\tURL"); err != nil {
		return err
	}
	for _, ch := range channels {
		if err := writef(w, "%d\t%d\t%s\t%s\n", ch.ID, ch.ChannelID, ch.Name, ch.URL); err != nil {
			return err
		}
	}
	return w.Flush()
}

// runChannelAdd resolves the channel handle to its platform id and then
// creates the required-channel record, mirroring the two-step flow of
// the admin dashboard.
func runChannelAdd(cmdCtx *commandContext, args []string) error {
	opts, err := parseChannelAddFlags(args)
	if err != nil {
		return err
	}

	admin, err := buildAdminService(cmdCtx, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	resolved, err := admin.ResolveChannel(ctx, opts.Handle)
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = resolved.Title
	}

	created, err := admin.AddChannel(ctx, model.Channel{
		ChannelID: resolved.ID,
		Name:      name,
		URL:       opts.URL,
	})
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Added channel %q (id: %d, channel id: %d)\n",
		created.Name, created.ID, created.ChannelID)
}

func parseChannelAddFlags(args []string) (channelAddOptions, error) {
	fs := flag.NewFlagSet("channel-add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts channelAddOptions
	fs.StringVar(&opts.Handle, "handle", "", "Channel handle to resolve (required)")
	fs.StringVar(&opts.Name, "name", "", "Display name (defaults to the resolved title)")
	fs.StringVar(&opts.URL, "url", "", "Join URL shown to users (required)")

	if err := fs.Parse(args); err != nil {
		return channelAddOptions{}, err
	}
	if opts.Handle == "" {
		return channelAddOptions{}, errors.New("--handle is required")
	}
	if opts.URL == "" {
		return channelAddOptions{}, errors.New("--url is required")
	}

	return opts, nil
}

func runChannelRemove(cmdCtx *commandContext, args []string) error {
	opts, err := parseChannelRemoveFlags(args)
	if err != nil {
		return err
	}

	admin, err := buildAdminService(cmdCtx, opts.Yes)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	deleted, err := admin.RemoveChannel(ctx, opts.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return writeln(os.Stdout, "Aborted.")
	}
	return writef(os.Stdout, "Removed channel %d\n", opts.ID)
}

func parseChannelRemoveFlags(args []string) (channelRemoveOptions, error) {
	fs := flag.NewFlagSet("channel-remove", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts channelRemoveOptions
	fs.Int64Var(&opts.ID, "id", 0, "Channel record id (required)")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return channelRemoveOptions{}, err
	}
	if opts.ID == 0 {
		return channelRemoveOptions{}, errors.New("--id is required")
	}

	return opts, nil
}

func runChannelResolve(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("channel-resolve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	handle := fs.String("handle", "", "Channel handle to resolve (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *handle == "" {
		return errors.New("--handle is required")
	}

	admin, err := buildAdminService(cmdCtx, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	resolved, err := admin.ResolveChannel(ctx, *handle)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "Resolved %q: id=%d title=%q\n", *handle, resolved.ID, resolved.Title)
}
