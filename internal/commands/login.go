package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskctl/internal/auth"
	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/service"
	"taskctl/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password optString
	in       input
}

// SetInput sets the reader the password is prompted from (for testing).
func (c *LoginCmd) SetInput(r io.Reader) {
	c.in.set(r)
}

// SetPassword sets the password as if passed by flag (for testing).
func (c *LoginCmd) SetPassword(p string) {
	_ = c.password.Set(p)
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return []string{"signin"} }
func (c *LoginCmd) Synopsis() string  { return "Sign in and store the session" }
func (c *LoginCmd) Usage() string     { return "taskctl login [--password <p>] <username>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	c.password = optString{}
	fs.Var(&c.password, "password", "")
	fs.Var(&c.password, "p", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		return usageError(errOut, "unexpected argument: %s", args[1])
	}
	username := ""
	if len(args) == 1 {
		username = strings.TrimSpace(args[0])
	}

	password := c.password.value
	if username != "" && !c.password.set {
		p, err := c.in.prompt(errOut, "Password: ")
		if err != nil {
			return fail(errOut, err)
		}
		password = p
	}

	a := auth.New(svc, session.NewStore(cfg.Dir), cfg.Logger())
	sess, err := a.Login(ctx, username, password)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", sess.Username)
	}
	return exitcode.Success
}
