package commands

import (
	"context"
	"flag"
	"io"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/output"
	"taskctl/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct {
	format string
}

// SetFormat sets the output format (for testing).
func (c *ShowCmd) SetFormat(f string) { c.format = f }

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"get"} }
func (c *ShowCmd) Synopsis() string  { return "Show one task" }
func (c *ShowCmd) Usage() string     { return "taskctl show [--format text|json|yaml] <id>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "text", "")
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return fail(errOut, err)
	}
	if len(args) > 1 {
		return usageError(errOut, "unexpected argument: %s", args[1])
	}
	format, err := output.ParseFormat(c.format)
	if err != nil {
		return fail(errOut, err)
	}

	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return fail(errOut, err)
	}

	if format != output.FormatText {
		if err := output.Encode(out, format, output.Record(task)); err != nil {
			return fail(errOut, err)
		}
		return exitcode.Success
	}
	output.FormatTaskDetail(out, task)
	return exitcode.Success
}
