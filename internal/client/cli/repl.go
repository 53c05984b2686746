package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Plans(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it, until
// the input ends or the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - login          authenticate
//	  - register       create an account
//	  - plans          list plans
//	  - whoami         show the current user
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help, plans, whoami, exit | quit
//	  - logout         end the session
//
// Handler errors are already reported to the user by the handlers, so the
// loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "melodeck %s> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: plans, whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, register, plans, whoami, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(w, "Not logged in")
				continue
			}
			_ = a.Logout(ctx)

		case "plans":
			if err := a.Plans(ctx); err != nil {
				fmt.Fprintln(w, err.Error())
			}

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
