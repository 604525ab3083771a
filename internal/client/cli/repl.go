package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"unicode"
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
	Profile(ctx context.Context) error
	Brand(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Sort(ctx context.Context) error
	Stats(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Refresh(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, search <term>, sort, stats, show <id>, add, edit <id>, delete <id>, refresh, brand, profile, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the rentkeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help            show available commands
//	  - register        create an account
//	  - login           authenticate
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - list | l        list contracts matching the current search
//	  - search [term]   set (or clear) the tenant name filter and list
//	  - sort            toggle ordering by end date
//	  - stats           totals, active, expired and distinct clients
//	  - show <id>       contract details
//	  - add             create a contract
//	  - edit <id>       edit a contract
//	  - delete <id>     delete a contract
//	  - refresh         reload contracts from the backend
//	  - brand           customize agency name, colors and logo
//	  - profile         check the session against the backend
//	  - logout          log out
//	  - exit | quit     leave the program
//
// Handler errors are turned into a one-line message; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rk %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		cmd, rest := splitCommand(line)
		if cmd == "" {
			continue
		}

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		report(dispatch(ctx, a, cmd, rest))
	}
}

// splitCommand returns the first word of line and the untouched text after
// the whitespace that follows it.
func splitCommand(line string) (cmd, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}

func dispatch(ctx context.Context, a execIface, cmd, rest string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	switch cmd {
	case "logout", "profile", "brand", "l", "list", "search", "sort", "stats",
		"show", "add", "edit", "delete", "refresh":
		if !a.isLoggedIn() {
			printlnFn("Please log in first.")
			return nil
		}
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "profile":
		return a.Profile(ctx)
	case "brand":
		return a.Brand(ctx)
	case "l", "list":
		return a.List(ctx)
	case "search":
		return a.Search(ctx, rest)
	case "sort":
		return a.Sort(ctx)
	case "stats":
		return a.Stats(ctx)
	case "refresh":
		return a.Refresh(ctx)
	case "add":
		return a.Add(ctx)
	}

	// The remaining commands take a contract id.
	args := strings.Fields(rest)
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return nil
	}
	switch cmd {
	case "show":
		return a.Show(ctx, args[0])
	case "edit":
		return a.Edit(ctx, args[0])
	default:
		return a.Delete(ctx, args[0])
	}
}

func report(err error) {
	if msg := DescribeError(err); msg != "" {
		printlnFn(msg)
	}
}
