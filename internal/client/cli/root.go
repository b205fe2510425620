package cli

import (
	"errors"
	"fmt"
	"strings"
)

// getStatus is the prompt decoration: signed-in email, open conversation
// and connectivity mode, e.g. "(alice@example.org #c1 online)".
func (a *App) getStatus() string {
	var parts []string

	if s := a.auth.State(); s.Authenticated && s.User != nil {
		parts = append(parts, s.User.Email)
	}
	if c := a.chat.State().Current; c != nil {
		parts = append(parts, "#"+c.ID)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// oneArg returns the single argument of a command or a usage error.
func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: " + usage)
	}
	return args[0], nil
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

func pluralPages(n int) string {
	if n == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", n)
}
