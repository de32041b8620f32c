package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/output"
	"taskctl/internal/service"
	"taskctl/internal/view"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskctl` (no args) and `taskctl list [flags]`.
type ListCmd struct {
	filter   string
	sort     string
	search   string
	everyone bool
	format   string
}

// SetFilter sets the status filter (for testing).
func (c *ListCmd) SetFilter(f string) { c.filter = f }

// SetSort sets the sort key (for testing).
func (c *ListCmd) SetSort(s string) { c.sort = s }

// SetSearch sets the search term (for testing).
func (c *ListCmd) SetSearch(s string) { c.search = s }

// SetEveryone lists every user's tasks (for testing).
func (c *ListCmd) SetEveryone(v bool) { c.everyone = v }

// SetFormat sets the output format (for testing).
func (c *ListCmd) SetFormat(f string) { c.format = f }

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskctl list [--filter <status>] [--sort dueDate|priority|title] [--search <term>] [--everyone] [--format text|json|yaml]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
	fs.StringVar(&c.sort, "sort", "dueDate", "")
	fs.StringVar(&c.sort, "s", "dueDate", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "q", "", "")
	fs.BoolVar(&c.everyone, "everyone", false, "")
	fs.StringVar(&c.format, "format", "text", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "unexpected argument: %s", args[0])
	}

	filter, err := view.ParseFilter(c.filter)
	if err != nil {
		return fail(errOut, err)
	}
	sortKey, err := view.ParseSortKey(c.sort)
	if err != nil {
		return fail(errOut, err)
	}
	format, err := output.ParseFormat(c.format)
	if err != nil {
		return fail(errOut, err)
	}

	var tasks []service.Task
	if c.everyone {
		tasks, err = svc.ListAllTasks(ctx)
	} else {
		tasks, err = svc.ListMyTasks(ctx)
	}
	if err != nil {
		return fail(errOut, err)
	}

	shown := view.Derive(tasks, view.Params{
		Filter: filter,
		Search: c.search,
		Sort:   sortKey,
	})
	cfg.Logger().Debug("tasks derived",
		zap.Int("fetched", len(tasks)),
		zap.Int("shown", len(shown)),
		zap.String("filter", filter.String()),
		zap.String("sort", sortKey.String()),
	)

	if format != output.FormatText {
		if err := output.Encode(out, format, output.Records(shown)); err != nil {
			return fail(errOut, err)
		}
		return exitcode.Success
	}

	if len(shown) == 0 {
		if !cfg.Quiet {
			if len(tasks) == 0 {
				fmt.Fprintln(out, "no tasks found")
			} else {
				fmt.Fprintln(out, "no matching tasks")
			}
		}
		return exitcode.Success
	}

	output.FormatTaskHeader(out)
	for _, task := range shown {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
