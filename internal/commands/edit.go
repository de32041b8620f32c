package commands

import (
	"context"
	"flag"
	"io"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/service"
	"taskctl/internal/validate"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Unset flags keep the task's
// current values; the full form is sent back.
type EditCmd struct {
	fields taskFlags
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(t string) { _ = c.fields.title.Set(t) }

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(d string) { _ = c.fields.description.Set(d) }

// SetStatus sets the new status (for testing).
func (c *EditCmd) SetStatus(s string) { _ = c.fields.status.Set(s) }

// SetPriority sets the new priority (for testing).
func (c *EditCmd) SetPriority(p string) { _ = c.fields.priority.Set(p) }

// SetDue sets the new due date; "none" clears it (for testing).
func (c *EditCmd) SetDue(d string) { _ = c.fields.due.Set(d) }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskctl edit [--title <t>] [--description <d>] [--status <s>] [--priority <p>] [--due YYYY-MM-DD|none] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fields.register(fs, true)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return fail(errOut, err)
	}
	if len(args) > 1 {
		return usageError(errOut, "unexpected argument: %s", args[1])
	}
	if !c.fields.changed() {
		return usageError(errOut, "nothing to change")
	}

	current, err := svc.GetTask(ctx, id)
	if err != nil {
		return fail(errOut, err)
	}

	in := service.InputFrom(current)
	if err := c.fields.apply(&in); err != nil {
		return fail(errOut, err)
	}
	if err := validate.CheckTask(in); err != nil {
		return fail(errOut, err)
	}

	if _, err := svc.UpdateTask(ctx, id, in); err != nil {
		return fail(errOut, err)
	}
	ok(out, cfg.Quiet)
	return exitcode.Success
}
