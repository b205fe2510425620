package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/juridik/internal/client/client"
	"github.com/dmitrijs2005/juridik/internal/client/models"
	"github.com/dmitrijs2005/juridik/internal/client/observable"
	"github.com/dmitrijs2005/juridik/internal/client/session"
	"github.com/dmitrijs2005/juridik/internal/logging"
)

// AuthState is the observable state of the AuthManager.
type AuthState struct {
	User          *models.User
	Subscription  *models.Subscription
	Authenticated bool
	Loading       bool
	Error         string
	// Notice is the last informational reply, e.g. after a reset request.
	Notice         string
	TokenExpiresAt time.Time
}

// AuthManager owns sign-in state. It is the only component that installs or
// forgets the session credential on the user's behalf.
type AuthManager interface {
	State() AuthState
	Subscribe(fn func(AuthState)) (cancel func())

	Login(ctx context.Context, email, password string) bool
	Signup(ctx context.Context, data models.SignupData) bool
	Logout(ctx context.Context)
	CheckAuth(ctx context.Context)
	ForgotPassword(ctx context.Context, email string) bool
	ResetPassword(ctx context.Context, token, newPassword string) bool
	ClearError()
}

type authManager struct {
	api   client.API
	sess  *session.Session
	log   logging.Logger
	state *observable.Value[AuthState]
}

func NewAuthManager(api client.API, sess *session.Session, log logging.Logger) AuthManager {
	if log == nil {
		log = logging.Nop()
	}
	return &authManager{
		api:   api,
		sess:  sess,
		log:   log.With("component", "auth"),
		state: observable.New(AuthState{}),
	}
}

func (a *authManager) State() AuthState { return a.state.Get() }

func (a *authManager) Subscribe(fn func(AuthState)) func() { return a.state.Subscribe(fn) }

func (a *authManager) Login(ctx context.Context, email, password string) bool {
	a.begin()

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "login rejected", "email", email, "error", err)
		a.fail(client.UserMessage(err, "Login failed"))
		return false
	}

	a.establish(ctx, res)
	return true
}

func (a *authManager) Signup(ctx context.Context, data models.SignupData) bool {
	data.Email = strings.TrimSpace(data.Email)
	if data.Email == "" || data.Password == "" {
		a.fail("Email and password are required")
		return false
	}

	a.begin()

	res, err := a.api.Signup(ctx, data)
	if err != nil {
		a.log.Info(ctx, "signup rejected", "email", data.Email, "error", err)
		a.fail(client.UserMessage(err, "Signup failed"))
		return false
	}

	a.establish(ctx, res)
	return true
}

// Logout always ends signed out, whatever the backend says.
func (a *authManager) Logout(ctx context.Context) {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Debug(ctx, "logout notification failed", "error", err)
	}

	a.sess.Forget(ctx)
	a.state.Set(AuthState{})
}

// CheckAuth restores a session from the stored credential.
//
// An unreachable backend (transport error, timeout, 5xx, or any other
// non-credential failure) keeps the session: the user stays authenticated
// with no profile loaded. An explicit 401/403, seen after the client's own
// refresh attempt, ends the session.
func (a *authManager) CheckAuth(ctx context.Context) {
	a.state.Update(func(s AuthState) AuthState {
		s.Loading = true
		return s
	})

	token, ok := a.sess.StoredToken(ctx)
	if !ok {
		a.state.Set(AuthState{})
		return
	}

	a.sess.SetDefault(token)

	user, err := a.api.Me(ctx)
	switch {
	case err == nil:
		a.state.Set(AuthState{
			User:           user,
			Authenticated:  true,
			TokenExpiresAt: a.expiry(ctx),
		})
	case errors.Is(err, client.ErrUnauthorized):
		a.log.Info(ctx, "stored credential rejected", "error", err)
		a.sess.Forget(ctx)
		a.state.Set(AuthState{})
	default:
		a.log.Warn(ctx, "identity check failed, keeping stored credential", "error", err)
		a.state.Set(AuthState{
			Authenticated:  true,
			TokenExpiresAt: a.expiry(ctx),
		})
	}
}

func (a *authManager) ForgotPassword(ctx context.Context, email string) bool {
	a.begin()

	msg, err := a.api.ForgotPassword(ctx, strings.TrimSpace(email))
	if err != nil {
		a.fail(client.UserMessage(err, "Failed to send reset link"))
		return false
	}

	a.settle(msg)
	return true
}

func (a *authManager) ResetPassword(ctx context.Context, token, newPassword string) bool {
	a.begin()

	msg, err := a.api.ResetPassword(ctx, token, newPassword)
	if err != nil {
		a.fail(client.UserMessage(err, "Failed to reset password"))
		return false
	}

	a.settle(msg)
	return true
}

func (a *authManager) ClearError() {
	a.state.Update(func(s AuthState) AuthState {
		s.Error = ""
		return s
	})
}

func (a *authManager) begin() {
	a.state.Update(func(s AuthState) AuthState {
		s.Loading = true
		s.Error = ""
		s.Notice = ""
		return s
	})
}

func (a *authManager) fail(msg string) {
	a.state.Update(func(s AuthState) AuthState {
		s.Loading = false
		s.Error = msg
		return s
	})
}

func (a *authManager) settle(notice string) {
	a.state.Update(func(s AuthState) AuthState {
		s.Loading = false
		s.Notice = notice
		return s
	})
}

// establish installs the credential from a login/signup response.
func (a *authManager) establish(ctx context.Context, res *client.AuthResult) {
	if err := a.sess.Persist(ctx, res.Credential()); err != nil {
		// the default credential is installed even when persisting fails
		a.log.Warn(ctx, "credential not persisted", "error", err)
	}

	user := res.User
	a.state.Set(AuthState{
		User:           &user,
		Authenticated:  true,
		TokenExpiresAt: a.expiry(ctx),
	})
}

func (a *authManager) expiry(ctx context.Context) time.Time {
	tok, ok := a.sess.Token(ctx)
	if !ok {
		return time.Time{}
	}
	info, _ := session.InspectToken(tok)
	return info.ExpiresAt
}
