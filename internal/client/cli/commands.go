package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/calendar"
	"github.com/dmitrijs2005/gymkeeper/internal/catalog"
	"github.com/dmitrijs2005/gymkeeper/internal/client/screen"
	"github.com/dmitrijs2005/gymkeeper/internal/common"
	"github.com/dmitrijs2005/gymkeeper/internal/dates"
	"github.com/dmitrijs2005/gymkeeper/internal/workout"
)

// usageError carries the expected syntax of a mistyped command.
type usageError string

func (u usageError) Error() string { return "Usage: " + string(u) }

func (a *App) credentials() (string, []byte, error) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	pw, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return email, pw, nil
}

func (a *App) Register(ctx context.Context) error {
	if u := a.auth.CurrentUser(); u != nil {
		a.printf("Already signed in as %s.\n", u.Email)
		return nil
	}
	email, pw, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	id, err := a.auth.SignUp(ctx, email, string(pw))
	if err != nil {
		return err
	}
	a.printf("Account created for %s.\n", id.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if u := a.auth.CurrentUser(); u != nil {
		a.printf("Already signed in as %s.\n", u.Email)
		return nil
	}
	email, pw, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if _, err := a.auth.SignIn(ctx, email, string(pw)); err != nil {
		return err
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.screen.Logout(ctx); err != nil {
		return err
	}
	a.println("Signed out.")
	return nil
}

func (a *App) logged(k dates.DayKey) bool {
	return len(a.screen.Store().Entries(k)) > 0
}

func (a *App) Calendar(_ context.Context, cmd string, args []string) error {
	cal := a.screen.Calendar()

	switch cmd {
	case "today":
		a.screen.Select(a.now())
	case "select":
		if len(args) != 1 {
			return usageError("select YYYY-MM-DD")
		}
		d, err := dates.ParseKey(args[0], a.now().Location())
		if err != nil {
			return usageError("select YYYY-MM-DD")
		}
		a.screen.Select(d)
	case "week":
		cal.Handle(calendar.SwipeUp)
	case "month":
		cal.Handle(calendar.SwipeDown)
	case "toggle":
		cal.Handle(calendar.TapHandle)
	case "next":
		cal.Next()
	case "prev":
		cal.Prev()
	case "swipe":
		if len(args) != 2 {
			return usageError("swipe DX DY")
		}
		dx, errX := strconv.ParseFloat(args[0], 64)
		dy, errY := strconv.ParseFloat(args[1], 64)
		if errX != nil || errY != nil {
			return usageError("swipe DX DY")
		}
		cal.Drag(dx, dy)
		if g := cal.Release(); g == calendar.None {
			a.println("No gesture.")
		}
	}

	renderCalendar(a.out, cal, a.logged)
	return nil
}

func (a *App) List(context.Context) error {
	renderDay(a.out, a.screen.Calendar().Selected(), a.screen.Entries())
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	e := a.screen.AddExercise(strings.Join(args, " "))
	a.printf("Added %s.\n", e.Name)
	return a.List(ctx)
}

func (a *App) Pick(ctx context.Context, args []string) error {
	p := a.screen.Picker()
	if !p.IsOpen() {
		a.screen.OpenPicker()
	}
	if len(args) == 0 {
		if p.Group() == "" {
			renderGroups(a.out)
		} else {
			renderExercises(a.out, p)
		}
		return nil
	}

	arg := strings.Join(args, " ")
	switch arg {
	case "..":
		p.Back()
		renderGroups(a.out)
		return nil
	case "close":
		p.Close()
		return a.List(ctx)
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		g, ok := catalog.ParseGroup(arg)
		if !ok {
			return usageError("pick [GROUP|N|..|close]")
		}
		p.Choose(g)
		renderExercises(a.out, p)
		return nil
	}

	if p.Group() == "" {
		if n < 1 || n > len(catalog.Groups) {
			return workout.ErrIndexOutOfRange
		}
		p.Choose(catalog.Groups[n-1])
		renderExercises(a.out, p)
		return nil
	}

	names := catalog.Exercises(p.Group())
	if n < 1 || n > len(names) {
		return workout.ErrIndexOutOfRange
	}
	ev := p.Toggle(names[n-1])
	if ev.Action == catalog.Add {
		a.printf("Added %s.\n", ev.Exercise)
	} else {
		a.printf("Removed %s.\n", ev.Exercise)
	}
	renderExercises(a.out, p)
	return nil
}

func (a *App) Search(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("search TEXT")
	}
	found := catalog.Search(strings.Join(args, " "))
	if len(found) == 0 {
		a.println("No matches.")
		return nil
	}
	for _, name := range found {
		a.println(" ", name)
	}
	return nil
}

// parseIndex reads a 1-based "N" or "#N" into a 0-based index.
func parseIndex(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("rm N|NAME")
	}

	var removed bool
	if i, ok := parseIndex(args[0]); ok && len(args) == 1 {
		removed = a.screen.RemoveAt(i)
	} else {
		removed = a.screen.RemoveExercise(strings.Join(args, " "))
	}
	if !removed {
		a.println("Nothing removed.")
		return nil
	}
	return a.List(ctx)
}

func (a *App) AddSet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("set N")
	}
	i, ok := parseIndex(args[0])
	if !ok {
		return usageError("set N")
	}
	if !a.screen.AddSet(i) {
		return workout.ErrIndexOutOfRange
	}
	return a.List(ctx)
}

func (a *App) UpdateSet(ctx context.Context, field workout.Field, args []string) error {
	syntax := usageError(fmt.Sprintf("%s N S VALUE", field))
	if len(args) < 2 {
		return syntax
	}
	i, ok1 := parseIndex(args[0])
	s, ok2 := parseIndex(args[1])
	if !ok1 || !ok2 {
		return syntax
	}
	if err := a.screen.UpdateSet(i, s, field, strings.Join(args[2:], " ")); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Timer(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("timer MM:SS")
	}
	d, err := ParseRest(args[0])
	if err != nil {
		return usageError("timer MM:SS")
	}
	a.startTimer(d)
	a.printf("Rest timer started: %s.\n", formatRest(d))
	return nil
}

func (a *App) Lifecycle(ctx context.Context, state string) error {
	if state == "foreground" {
		state = string(screen.Active)
	}
	st, err := screen.ParseAppState(state)
	if err != nil {
		return err
	}
	a.screen.SetAppState(ctx, st)
	a.printf("App is now %s.\n", st)
	return nil
}

func (a *App) Sync(ctx context.Context) error {
	if err := a.screen.PushNow(ctx); err != nil {
		return err
	}
	a.printf("Sync started at %s.\n", a.now().Format(time.TimeOnly))
	return nil
}
