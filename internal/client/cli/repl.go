package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
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
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Colleges(ctx context.Context, args []string) error
	Featured(ctx context.Context) error
	College(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Apply(ctx context.Context, args []string) error
	MyCollege(ctx context.Context) error
	Review(ctx context.Context, args []string) error
	Reviews(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the College Portal CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the signed-in user's initials (from statusFn) and accepts:
//
//	Everyone:
//	  - help               show available commands
//	  - register | login   create an account / sign in
//	  - colleges [page]    browse the catalogue
//	  - featured           featured colleges and reviews
//	  - college <id>       college details and reviews
//	  - search [term]      find a college by name
//	  - reviews <id>       reviews of a college
//	  - exit | quit        leave the program
//
//	Signed in (others are asked to log in first):
//	  - whoami, profile, editprofile
//	  - apply [college id]  apply for admission
//	  - mycollege           my applications
//	  - review [college id] review a college I was admitted to
//	  - logout
//
// Command errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("portal%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, editprofile, colleges, featured, college <id>, search, apply, mycollege, review, reviews <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, colleges, featured, college <id>, search, reviews <id>, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "editprofile":
			cmdErr = a.EditProfile(ctx)
		case "colleges":
			cmdErr = a.Colleges(ctx, args)
		case "featured":
			cmdErr = a.Featured(ctx)
		case "college":
			if len(args) == 0 {
				printlnFn("Usage: college <id>")
				continue
			}
			cmdErr = a.College(ctx, args)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "apply":
			cmdErr = a.Apply(ctx, args)
		case "mycollege":
			cmdErr = a.MyCollege(ctx)
		case "review":
			cmdErr = a.Review(ctx, args)
		case "reviews":
			cmdErr = a.Reviews(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
		if err != nil {
			return
		}
	}
}
