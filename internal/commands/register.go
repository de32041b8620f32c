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
	"taskctl/internal/validate"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	email    string
	password optString
	noLogin  bool
	in       input
}

// SetInput sets the reader passwords are prompted from (for testing).
func (c *RegisterCmd) SetInput(r io.Reader) {
	c.in.set(r)
}

// SetEmail sets the email (for testing).
func (c *RegisterCmd) SetEmail(email string) {
	c.email = email
}

// SetPassword sets the password as if passed by flag (for testing).
func (c *RegisterCmd) SetPassword(p string) {
	_ = c.password.Set(p)
}

// SetNoLogin disables the login after signup (for testing).
func (c *RegisterCmd) SetNoLogin(v bool) {
	c.noLogin = v
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "taskctl register --email <e> [--password <p>] [--no-login] <username>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.email, "e", "", "")
	c.password = optString{}
	fs.Var(&c.password, "password", "")
	fs.Var(&c.password, "p", "")
	fs.BoolVar(&c.noLogin, "no-login", false, "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		return usageError(errOut, "unexpected argument: %s", args[1])
	}

	form := validate.Registration{Email: strings.TrimSpace(c.email)}
	if len(args) == 1 {
		form.Username = strings.TrimSpace(args[0])
	}

	if c.password.set {
		form.Password = c.password.value
		form.Confirm = c.password.value
	} else if form.Username != "" && form.Email != "" {
		p, err := c.in.prompt(errOut, "Password: ")
		if err != nil {
			return fail(errOut, err)
		}
		confirm, err := c.in.prompt(errOut, "Confirm password: ")
		if err != nil {
			return fail(errOut, err)
		}
		form.Password, form.Confirm = p, confirm
	}

	a := auth.New(svc, session.NewStore(cfg.Dir), cfg.Logger())
	msg, err := a.Register(ctx, form)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet && msg != "" {
		fmt.Fprintln(out, msg)
	}

	if c.noLogin {
		return exitcode.Success
	}
	sess, err := a.Login(ctx, form.Username, form.Password)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", sess.Username)
	}
	return exitcode.Success
}
