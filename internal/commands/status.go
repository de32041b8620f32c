package commands

import (
	"context"
	"flag"
	"io"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/service"
)

func init() {
	Register(&StatusCmd{})
	Register(&DoneCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return nil }
func (c *StatusCmd) Synopsis() string  { return "Move a task to another status" }
func (c *StatusCmd) Usage() string     { return "taskctl status <id> <todo|in_progress|done>" }
func (c *StatusCmd) NeedsAuth() bool   { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return fail(errOut, err)
	}
	if len(args) < 2 {
		return usageError(errOut, "status required")
	}
	if len(args) > 2 {
		return usageError(errOut, "unexpected argument: %s", args[2])
	}
	status, err := service.ParseStatus(args[1])
	if err != nil {
		return fail(errOut, err)
	}
	return setStatus(ctx, cfg, svc, id, status, out, errOut)
}

// DoneCmd implements the done command, a shortcut for status <id> done.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task done" }
func (c *DoneCmd) Usage() string     { return "taskctl done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return fail(errOut, err)
	}
	if len(args) > 1 {
		return usageError(errOut, "unexpected argument: %s", args[1])
	}
	return setStatus(ctx, cfg, svc, id, service.StatusDone, out, errOut)
}

func setStatus(ctx context.Context, cfg *config.Config, svc service.Service, id service.ID, status service.Status, out, errOut io.Writer) int {
	if err := svc.UpdateTaskStatus(ctx, id, status); err != nil {
		return fail(errOut, err)
	}
	ok(out, cfg.Quiet)
	return exitcode.Success
}
