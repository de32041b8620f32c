// Package auth implements the login, registration and logout flows.
package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskctl/internal/service"
	"taskctl/internal/session"
	"taskctl/internal/validate"
)

// ErrNoToken is returned when signin succeeds without an access token.
// A blank token counts as none.
var ErrNoToken = errors.New("login failed: server returned no access token")

// Authenticator ties the auth endpoints to the durable session store.
type Authenticator struct {
	svc   service.Service
	store *session.Store
	log   *zap.Logger
}

// New returns an Authenticator.
func New(svc service.Service, store *session.Store, log *zap.Logger) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{svc: svc, store: store, log: log}
}

// Login signs in and stores the session. Nothing is persisted on failure.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if err := validate.CheckLogin(validate.Login{Username: username, Password: password}); err != nil {
		return nil, err
	}

	resp, err := a.svc.SignIn(ctx, service.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	sess := session.FromAuthResponse(resp)
	if !sess.Valid() {
		return nil, ErrNoToken
	}
	if sess.Username == "" {
		sess.Username = username
	}
	if err := a.store.Save(sess); err != nil {
		return nil, err
	}
	a.log.Debug("session stored", zap.String("user", sess.Username), zap.String("path", a.store.Path()))
	return sess, nil
}

// Register validates the form and signs up. It returns the server's
// confirmation message. No session is created.
func (a *Authenticator) Register(ctx context.Context, form validate.Registration) (string, error) {
	if err := validate.CheckRegistration(form); err != nil {
		return "", err
	}
	return a.svc.SignUp(ctx, service.SignUpRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
}

// Logout removes the durable session. It reports whether one existed.
func (a *Authenticator) Logout() (bool, error) {
	removed, err := a.store.Clear()
	if err != nil {
		return false, err
	}
	a.log.Debug("session cleared", zap.Bool("removed", removed))
	return removed, nil
}

// CurrentSession reads the durable session at call time.
func (a *Authenticator) CurrentSession() (*session.Session, error) {
	return a.store.Load()
}

// IsAuthenticated reports whether a session with a token is stored.
func (a *Authenticator) IsAuthenticated() bool {
	return a.store.IsAuthenticated()
}
