package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spinwheel/gatekeeper/internal/domain/model"
)

const defaultCommandTimeout = 30 * time.Second

type userUpdateOptions struct {
	ID      int64
	Role    string
	Blocked string
}

type userDeleteOptions struct {
	ID  int64
	Yes bool
}

func runUsersList(cmdCtx *commandContext, _ []string) error {
	admin, err := buildAdminService(cmdCtx, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	users, err := admin.Users(ctx)
	if err != nil {
		return err
	}
	return printUsers(users)
}

func printUsers(users []model.User) error {
	if len(users) == 0 {
		return writeln(os.Stdout, "No users registered.")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tTELEGRAM ID\tNAME\tUSERNAME\tROLE\tBLOCKED"); err != nil {
		return err
	}
	for _, u := range users {
		if err := writef(w, "%d\t%d\t%s\t%s\t%s\t%t\n",
			u.ID, u.TelegramID, u.DisplayName(), u.Username, u.Role, u.IsBlocked); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runUserUpdate(cmdCtx *commandContext, args []string) error {
	opts, err := parseUserUpdateFlags(args)
	if err != nil {
		return err
	}

	admin, err := buildAdminService(cmdCtx, false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	users, err := admin.Users(ctx)
	if err != nil {
		return err
	}

	var user *model.User
	for i := range users {
		if users[i].ID == opts.ID {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return fmt.Errorf("user %d not found", opts.ID)
	}

	if opts.Role != "" {
		user.Role = opts.Role
	}
	switch opts.Blocked {
	case "":
	case "true":
		user.IsBlocked = true
	case "false":
		user.IsBlocked = false
	default:
		return fmt.Errorf("--blocked must be true or false, got %q", opts.Blocked)
	}

	if err := admin.UpdateUser(ctx, *user); err != nil {
		return err
	}
	return writef(os.Stdout, "Updated user %d (role: %s, blocked: %t)\n", user.ID, user.Role, user.IsBlocked)
}

func parseUserUpdateFlags(args []string) (userUpdateOptions, error) {
	fs := flag.NewFlagSet("user-update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts userUpdateOptions
	fs.Int64Var(&opts.ID, "id", 0, "User record id (required)")
	fs.StringVar(&opts.Role, "role", "", "New role (admin or user)")
	fs.StringVar(&opts.Blocked, "blocked", "", "New block status (true or false)")

	if err := fs.Parse(args); err != nil {
		return userUpdateOptions{}, err
	}
	if opts.ID == 0 {
		return userUpdateOptions{}, errors.New("--id is required")
	}
	if opts.Role == "" && opts.Blocked == "" {
		return userUpdateOptions{}, errors.New("nothing to update: pass --role and/or --blocked")
	}
	if opts.Role != "" && opts.Role != "admin" && opts.Role != "user" {
		return userUpdateOptions{}, fmt.Errorf("--role must be admin or user, got %q", opts.Role)
	}

	return opts, nil
}

func runUserDelete(cmdCtx *commandContext, args []string) error {
	opts, err := parseUserDeleteFlags(args)
	if err != nil {
		return err
	}

	admin, err := buildAdminService(cmdCtx, opts.Yes)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	deleted, err := admin.DeleteUser(ctx, opts.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return writeln(os.Stdout, "Aborted.")
	}
	return writef(os.Stdout, "Deleted user %d\n", opts.ID)
}

func parseUserDeleteFlags(args []string) (userDeleteOptions, error) {
	fs := flag.NewFlagSet("user-delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts userDeleteOptions
	fs.Int64Var(&opts.ID, "id", 0, "User record id (required)")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return userDeleteOptions{}, err
	}
	if opts.ID == 0 {
		return userDeleteOptions{}, errors.New("--id is required")
	}

	return opts, nil
}
