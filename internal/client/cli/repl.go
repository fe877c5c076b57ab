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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	Profile(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Code Monk CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands and commands
// that need a signed-in user are reported back. The loop exits at end of
// input or when the user types "exit" or "quit". Commands prompt through the
// same reader, so nothing typed ahead is lost.
//
//	Not logged in:
//	  - help          : show available commands
//	  - register      : create an account (email code, then profile)
//	  - login         : authenticate
//	  - status        : session and connectivity
//	  - exit | quit   : leave the program
//
//	Logged in:
//	  - help          : show available commands
//	  - whoami        : show the signed-in account
//	  - refresh       : reload the account from the server
//	  - profile       : edit contact details
//	  - status        : session and connectivity
//	  - logout        : log out
//	  - exit | quit   : leave the program
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cm %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, refresh, profile, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, status, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "status":
			err = a.Status(ctx)

		case "whoami", "refresh", "profile", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please log in first.")
				continue
			}
			switch cmd {
			case "whoami":
				err = a.Whoami(ctx)
			case "refresh":
				err = a.Refresh(ctx)
			case "profile":
				err = a.Profile(ctx)
			case "logout":
				err = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}
