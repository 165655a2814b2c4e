package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gymkeeper/internal/client/client"
	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/workout"
)

// Test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Calendar(ctx context.Context, cmd string, args []string) error
	List(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Pick(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	AddSet(ctx context.Context, args []string) error
	UpdateSet(ctx context.Context, field workout.Field, args []string) error
	Timer(ctx context.Context, args []string) error
	Lifecycle(ctx context.Context, state string) error
	Sync(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, exit"
	helpSignedIn  = `Available commands:
  calendar:  today, select YYYY-MM-DD, week, month, toggle, next, prev, swipe DX DY, cal
  workouts:  list, add [name], pick [group|n|..|close], search TEXT, rm N|NAME,
             set N, reps N S VALUE, weight N S VALUE, timer MM:SS
  session:   sync, background, inactive, foreground, logout, exit`
)

// userMessage turns a command error into the line shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrValidation):
		return "Invalid input: " + strings.ReplaceAll(err.Error(), ": "+common.ErrValidation.Error(), "") + "."
	case errors.Is(err, common.ErrorAlreadyExists):
		return "An account with this email already exists."
	case errors.Is(err, client.ErrUnauthorized):
		return "Wrong email or password."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	case errors.Is(err, common.ErrNotAuthenticated):
		return "Please log in first."
	case errors.As(err, new(usageError)):
		return err.Error()
	case errors.Is(err, workout.ErrIndexOutOfRange):
		return "No such exercise or set."
	default:
		return "Error: " + err.Error()
	}
}

// runREPL reads commands from reader until EOF, "exit" or cancellation of
// ctx. Errors returned by handlers are shown and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("gk %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil || ctx.Err() != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn(userMessage(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpSignedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		if isKnown(cmd) {
			return common.ErrNotAuthenticated
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "today", "select", "week", "month", "toggle", "next", "prev", "swipe", "cal":
		return a.Calendar(ctx, cmd, args)
	case "l", "list":
		return a.List(ctx)
	case "add":
		return a.Add(ctx, args)
	case "pick":
		return a.Pick(ctx, args)
	case "search":
		return a.Search(ctx, args)
	case "rm":
		return a.Remove(ctx, args)
	case "set":
		return a.AddSet(ctx, args)
	case "reps":
		return a.UpdateSet(ctx, workout.FieldReps, args)
	case "weight":
		return a.UpdateSet(ctx, workout.FieldWeight, args)
	case "timer":
		return a.Timer(ctx, args)
	case "background", "inactive", "foreground":
		return a.Lifecycle(ctx, cmd)
	case "sync":
		return a.Sync(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

func isKnown(cmd string) bool {
	switch cmd {
	case "logout", "today", "select", "week", "month", "toggle", "next", "prev", "swipe", "cal",
		"l", "list", "add", "pick", "search", "rm", "set", "reps", "weight", "timer",
		"background", "inactive", "foreground", "sync":
		return true
	}
	return false
}
