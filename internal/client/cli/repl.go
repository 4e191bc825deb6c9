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
	canMutate() bool
	canManageUsers() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI()
	Dashboard(ctx context.Context) error
	List(ctx context.Context, resource string, args []string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Add(ctx context.Context, resource string) error
	Edit(ctx context.Context, resource, id string) error
	DeleteRecord(ctx context.Context, resource, id string) error
	Toggle(ctx context.Context, resource, id string) error
}

// runREPL starts the read–eval–print loop for the phonebook CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Authorization is enforced here the same way the policy demands it be
// enforced in any front end: an action a role may not perform is simply not
// offered. Mutation commands from a read-only session and the users resource
// from a non-admin session behave exactly like commands that do not exist.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pb %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			a.WhoAmI()

		case "dashboard":
			if !a.isLoggedIn() {
				printlnFn("You are not logged in.")
				continue
			}
			_ = a.Dashboard(ctx)

		case "contacts", "companies", "notices":
			if !a.isLoggedIn() {
				printlnFn("You are not logged in.")
				continue
			}
			_ = a.List(ctx, cmd, args)

		case "users":
			if !a.canManageUsers() {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.List(ctx, cmd, args)

		case "next":
			_ = a.NextPage(ctx)

		case "prev":
			_ = a.PrevPage(ctx)

		case "add", "edit", "delete", "toggle":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <resource> [id]", cmd))
				continue
			}
			resource := args[0]
			if !allowed(a, resource) {
				printlnFn("Unknown command:", cmd)
				continue
			}
			switch cmd {
			case "add":
				_ = a.Add(ctx, resource)
			case "edit", "delete", "toggle":
				if len(args) < 2 {
					printlnFn(fmt.Sprintf("Usage: %s %s <id>", cmd, resource))
					continue
				}
				switch cmd {
				case "edit":
					_ = a.Edit(ctx, resource, args[1])
				case "delete":
					_ = a.DeleteRecord(ctx, resource, args[1])
				case "toggle":
					_ = a.Toggle(ctx, resource, args[1])
				}
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// allowed reports whether the current session may mutate the given resource.
func allowed(a execIface, resource string) bool {
	if resource == "user" {
		return a.canManageUsers()
	}
	return a.canMutate()
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: login, exit")
		return
	}

	commands := []string{"dashboard", "contacts [search]", "companies", "notices", "next", "prev", "whoami"}
	if a.canMutate() {
		commands = append(commands, "add|edit|delete <contact|company|notice> [id]", "toggle notice <id>")
	}
	if a.canManageUsers() {
		commands = append(commands, "users", "add|edit|delete|toggle user [id]")
	}
	commands = append(commands, "logout", "exit")
	printlnFn("Available commands: " + strings.Join(commands, ", "))
}
