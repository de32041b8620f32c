package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskctl help [command]" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		cmd, ok := DefaultRegistry.Find(args[0])
		if !ok {
			return usageError(errOut, "unknown command: %s", args[0])
		}
		fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
		return exitcode.Success
	}
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskctl                                            List your tasks
  taskctl login [--password <p>] <username>
  taskctl register --email <e> [--password <p>] [--no-login] <username>
  taskctl logout
  taskctl list [--filter all|todo|in_progress|done] [--sort dueDate|priority|title]
               [--search <term>] [--everyone] [--format text|json|yaml]
  taskctl show [--format text|json|yaml] <id>
  taskctl add [--description <d>] [--status <s>] [--priority <p>] [--due YYYY-MM-DD] <title...>
  taskctl create ...                                 Same as add
  taskctl edit [--title <t>] [--description <d>] [--status <s>] [--priority <p>]
               [--due YYYY-MM-DD|none] <id>
  taskctl status <id> <todo|in_progress|done>
  taskctl done <id>
  taskctl rm <id>
  taskctl profile
  taskctl help [command]
  taskctl version

Common flags:
  --config <dir>   Override config directory
  --api-url <url>  Override the server base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
