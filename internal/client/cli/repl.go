package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Forgot(ctx context.Context, args []string) error
	Reset(ctx context.Context) error

	List(ctx context.Context) error
	New(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
	History(ctx context.Context) error

	Docs(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Retry(ctx context.Context, args []string) error
	RemoveDocument(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: signup, login, forgot, reset, help, exit"
	helpSignedIn  = "Available commands: list, new, open <id>, delete <id>, send [text], attach <path>, history, " +
		"docs, upload <path>, retry <id>, rmdoc <id>, whoami, logout, help, exit"
)

// runREPL starts the read–eval–print loop.
//
// It reads a line from in, parses the first token as the command and
// dispatches to methods on 'a'; the remaining tokens are the arguments.
// Commands that need a session are refused while signed out. Errors
// returned by handlers are printed and the loop continues. The loop exits
// on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("juridik %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if ctx.Err() != nil {
			return
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "signup":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "forgot":
			cmdErr = a.Forgot(ctx, args)
		case "reset":
			cmdErr = a.Reset(ctx)

		default:
			if !knownCommand(cmd) {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			cmdErr = dispatch(ctx, a, cmd, args)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
	}
}

var signedInCommands = map[string]bool{
	"logout": true, "whoami": true,
	"list": true, "l": true, "new": true, "open": true, "delete": true,
	"send": true, "attach": true, "history": true,
	"docs": true, "upload": true, "retry": true, "rmdoc": true,
}

func knownCommand(cmd string) bool { return signedInCommands[cmd] }

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "l", "list":
		return a.List(ctx)
	case "new":
		return a.New(ctx)
	case "open":
		return a.Open(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "send":
		return a.Send(ctx, args)
	case "attach":
		return a.Attach(ctx, args)
	case "history":
		return a.History(ctx)
	case "docs":
		return a.Docs(ctx)
	case "upload":
		return a.Upload(ctx, args)
	case "retry":
		return a.Retry(ctx, args)
	case "rmdoc":
		return a.RemoveDocument(ctx, args)
	}
	return nil
}
