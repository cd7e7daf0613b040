package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/dkolesn/swapmart/internal/errs"
	"github.com/dkolesn/swapmart/internal/model"
	"github.com/dkolesn/swapmart/internal/tokenstore"
)

// AuthAPI is the slice's view of the remote authentication surface.
type AuthAPI interface {
	Login(ctx context.Context, login, password string) (model.Session, error)
	Register(ctx context.Context, reg model.Registration) (model.Session, error)
	Logout(ctx context.Context) error
}

// Auth is the credential store: the single source of truth for who is logged
// in, kept in sync with durable token storage. Every transition writes both
// the in-memory session and the persisted token together.
type Auth struct {
	api     AuthAPI
	tokens  tokenstore.Store
	session resource[model.Session]
	log     *zap.Logger
}

// NewAuth constructs the slice and reconciles in-memory state with durable
// storage: a persisted token restores an authenticated session whose user
// profile stays absent until the next login.
func NewAuth(api AuthAPI, tokens tokenstore.Store, log *zap.Logger) *Auth {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Auth{api: api, tokens: tokens, log: log}
	tok, err := tokens.Load()
	if err != nil {
		log.Warn("reading persisted token", zap.Error(err))
	}
	if tok != "" {
		a.session.set(model.Session{Token: tok})
	}
	return a
}

// Login authenticates and, on success, persists the token and installs the
// session. On failure the prior session is left untouched and the structured
// error is both stored and returned.
func (a *Auth) Login(ctx context.Context, login, password string) error {
	a.session.begin()
	sess, err := a.api.Login(ctx, login, password)
	if err != nil {
		a.session.fail(err)
		return err
	}
	if err := a.tokens.Save(sess.Token); err != nil {
		a.log.Warn("persisting token", zap.Error(err))
	}
	a.session.resolve(sess)
	a.log.Debug("logged in", zap.Int64("user_id", sess.UserID()))
	return nil
}

// Register creates an account; a successful registration also logs the user in.
func (a *Auth) Register(ctx context.Context, reg model.Registration) error {
	a.session.begin()
	sess, err := a.api.Register(ctx, reg)
	if err != nil {
		a.session.fail(err)
		return err
	}
	if err := a.tokens.Save(sess.Token); err != nil {
		a.log.Warn("persisting token", zap.Error(err))
	}
	a.session.resolve(sess)
	a.log.Debug("registered", zap.Int64("user_id", sess.UserID()))
	return nil
}

// Logout tears the session down. The remote notification is best-effort and
// its failure is swallowed; clearing durable storage and in-memory state is
// unconditional.
func (a *Auth) Logout(ctx context.Context) {
	a.session.begin()
	if err := a.api.Logout(ctx); err != nil {
		a.log.Debug("remote logout failed", zap.Error(err))
	}
	if err := a.tokens.Clear(); err != nil {
		a.log.Warn("clearing persisted token", zap.Error(err))
	}
	a.session.resolve(model.Session{})
}

// ForceLogout clears the session locally without a remote call. It is the 401
// hook installed on the http client; the durable token has already been
// cleared by the transport by the time this runs, but clearing twice is safe.
func (a *Auth) ForceLogout() {
	_ = a.tokens.Clear()
	a.session.resolve(model.Session{})
	a.log.Debug("session invalidated by server")
}

// Session returns the current lifecycle snapshot.
func (a *Auth) Session() Snapshot[model.Session] { return a.session.snapshot() }

// Authenticated reports token presence, the sole definition of "logged in".
func (a *Auth) Authenticated() bool { return a.session.snapshot().Data.Authenticated() }

// CurrentUserID returns the session owner's id, or 0 when unknown (logged out,
// or a restored session whose profile has not been refetched).
func (a *Auth) CurrentUserID() int64 { return a.session.snapshot().Data.UserID() }

// RequireSession returns ErrNoSession unless a session is active. Command
// gating for the private side of the routing surface.
func (a *Auth) RequireSession() error {
	if !a.Authenticated() {
		return errs.ErrNoSession
	}
	return nil
}

// RequireAnonymous returns ErrSessionExists when a session is already active.
// Command gating for the public side (login/register).
func (a *Auth) RequireAnonymous() error {
	if a.Authenticated() {
		return errs.ErrSessionExists
	}
	return nil
}
