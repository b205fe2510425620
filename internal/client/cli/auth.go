package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/juridik/internal/client/models"
)

// stateError turns a manager's error message into an error and clears it
// so the next command starts clean.
func stateError(msg string, clear func()) error {
	clear()
	if msg == "" {
		msg = "operation failed"
	}
	return errors.New(msg)
}

// Signup prompts for the registration fields and creates an account. On
// success the user is signed in.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	first, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return err
	}

	data := models.SignupData{Email: email, Password: password, FirstName: first, LastName: last}
	if !a.auth.Signup(ctx, data) {
		return stateError(a.auth.State().Error, a.auth.ClearError)
	}

	a.welcome()
	a.loadWorkspace(ctx)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if !a.auth.Login(ctx, email, password) {
		return stateError(a.auth.State().Error, a.auth.ClearError)
	}

	a.welcome()
	a.loadWorkspace(ctx)
	return nil
}

func (a *App) welcome() {
	if u := a.auth.State().User; u != nil {
		a.printf("Signed in as %s\n", u.DisplayName())
		return
	}
	a.println("Signed in")
}

// Logout asks for confirmation, then forgets the session and the open
// conversation.
func (a *App) Logout(ctx context.Context) error {
	if !a.confirm("Log out?") {
		return nil
	}
	a.auth.Logout(ctx)
	a.chat.ClearMessages()
	a.staged = nil
	a.println("Logged out")
	return nil
}

// Whoami prints the signed-in identity and subscription.
func (a *App) Whoami(context.Context) error {
	s := a.auth.State()
	if s.User == nil {
		a.println("Signed in (profile unavailable)")
	} else {
		a.printf("%s <%s> role=%s\n", s.User.DisplayName(), s.User.Email, s.User.Role)
	}
	if sub := s.Subscription; sub != nil {
		a.printf("Plan: %s (%s), %d of %d queries left\n", sub.PlanType, sub.Status, sub.QueriesLeft(), sub.QueryLimit)
	}
	if !s.TokenExpiresAt.IsZero() {
		a.printf("Session expires: %s\n", s.TokenExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

// Forgot requests a password reset link for the given or prompted email.
func (a *App) Forgot(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	if !a.auth.ForgotPassword(ctx, email) {
		return stateError(a.auth.State().Error, a.auth.ClearError)
	}
	a.println(a.auth.State().Notice)
	return nil
}

// Reset sets a new password using the token from the reset email.
func (a *App) Reset(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}

	if !a.auth.ResetPassword(ctx, token, password) {
		return stateError(a.auth.State().Error, a.auth.ClearError)
	}
	a.println(a.auth.State().Notice)
	return nil
}
