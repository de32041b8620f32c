package commands

import (
	"context"
	"flag"
	"io"
	"time"

	"go.uber.org/zap"

	"taskctl/internal/auth"
	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/output"
	"taskctl/internal/service"
	"taskctl/internal/session"
	"taskctl/internal/view"
)

func init() {
	Register(&ProfileCmd{})
}

// ProfileCmd implements the profile command.
type ProfileCmd struct {
	now func() time.Time
}

// SetClock sets the time source used for token expiry (for testing).
func (c *ProfileCmd) SetClock(now func() time.Time) { c.now = now }

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return []string{"whoami"} }
func (c *ProfileCmd) Synopsis() string  { return "Show the signed-in user and task counts" }
func (c *ProfileCmd) Usage() string     { return "taskctl profile [common flags]" }
func (c *ProfileCmd) NeedsAuth() bool   { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	sess, err := auth.New(svc, session.NewStore(cfg.Dir), cfg.Logger()).CurrentSession()
	if err != nil {
		return fail(errOut, err)
	}
	if !sess.Valid() {
		return fail(errOut, session.ErrLoginRequired)
	}

	tasks, err := svc.ListMyTasks(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	p := output.Profile{
		Session: sess,
		Counts:  view.Stats(tasks),
		Now:     now(),
	}
	if info, err := sess.TokenInfo(); err == nil {
		p.Token = &info
	} else {
		cfg.Logger().Debug("token claims unavailable", zap.Error(err))
	}

	output.FormatProfile(out, p)
	return exitcode.Success
}
