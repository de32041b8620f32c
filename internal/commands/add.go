package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/service"
	"taskctl/internal/validate"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	fields taskFlags
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(d string) { _ = c.fields.description.Set(d) }

// SetStatus sets the status (for testing).
func (c *AddCmd) SetStatus(s string) { _ = c.fields.status.Set(s) }

// SetPriority sets the priority (for testing).
func (c *AddCmd) SetPriority(p string) { _ = c.fields.priority.Set(p) }

// SetDue sets the due date (for testing).
func (c *AddCmd) SetDue(d string) { _ = c.fields.due.Set(d) }

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskctl add [--description <d>] [--status <s>] [--priority <p>] [--due YYYY-MM-DD] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fields.register(fs, false)
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := service.NewTaskInput(strings.Join(args, " "))
	if err := c.fields.apply(&in); err != nil {
		return fail(errOut, err)
	}
	if err := validate.CheckTask(in); err != nil {
		return fail(errOut, err)
	}

	task, err := svc.CreateTask(ctx, in)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		if task.ID != "" {
			fmt.Fprintf(out, "created %s\n", task.ID)
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}
