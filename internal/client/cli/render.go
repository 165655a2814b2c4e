package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/calendar"
	"github.com/dmitrijs2005/gymkeeper/internal/catalog"
	"github.com/dmitrijs2005/gymkeeper/internal/dates"
	"github.com/dmitrijs2005/gymkeeper/internal/workout"
)

var weekdayHeader = " Mon  Tue  Wed  Thu  Fri  Sat  Sun"

// cell renders one day in five columns: [dd] selected, (dd) outside the
// visible month, a trailing * when the day has exercises.
func cell(d time.Time, selected time.Time, outside bool, logged bool) string {
	left, right := " ", " "
	switch {
	case dates.SameDay(d, selected):
		left, right = "[", "]"
	case outside:
		left, right = "(", ")"
	}
	mark := " "
	if logged {
		mark = "*"
	}
	return fmt.Sprintf("%s%2d%s%s", left, d.Day(), right, mark)
}

func renderCalendar(w io.Writer, cal *calendar.Selector, logged func(dates.DayKey) bool) {
	sel := cal.Selected()

	if cal.Mode() == calendar.Week {
		week := cal.VisibleWeek()
		fmt.Fprintf(w, "Week of %s\n", week[0].Format("2 Jan 2006"))
		fmt.Fprintln(w, weekdayHeader)
		var b strings.Builder
		for _, d := range week {
			b.WriteString(cell(d, sel, false, logged(dates.Key(d))))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
		return
	}

	year, month := cal.VisibleMonth()
	fmt.Fprintf(w, "%s %d\n", month, year)
	fmt.Fprintln(w, weekdayHeader)
	grid := cal.MonthGrid()
	for row := 0; row < len(grid); row += 7 {
		var b strings.Builder
		for _, d := range grid[row : row+7] {
			b.WriteString(cell(d, sel, d.Month() != month, logged(dates.Key(d))))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderDay(w io.Writer, day time.Time, entries []workout.Entry) {
	fmt.Fprintf(w, "%s %s\n", dates.Key(day), day.Weekday())
	if len(entries) == 0 {
		fmt.Fprintln(w, "  No exercises yet. Use 'add' or 'pick'.")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "  #%d %s\n", i+1, e.Name)
		for j, s := range e.Sets {
			fmt.Fprintf(w, "      set %d: reps %s, weight %s\n", j+1, orDash(s.Reps), orDash(s.Weight))
		}
	}
}

func renderGroups(w io.Writer) {
	fmt.Fprintln(w, "Muscle groups:")
	for i, g := range catalog.Groups {
		fmt.Fprintf(w, "  %d. %s\n", i+1, g)
	}
	fmt.Fprintln(w, "Type 'pick N' or 'pick NAME' to open a group.")
}

func renderExercises(w io.Writer, p *catalog.Picker) {
	g := p.Group()
	fmt.Fprintf(w, "%s:\n", g)
	for i, name := range catalog.Exercises(g) {
		mark := " "
		if p.IsSelected(name) {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %2d. %s\n", mark, i+1, name)
	}
	fmt.Fprintln(w, "Type 'pick N' to toggle, 'pick ..' for groups, 'pick close' when done.")
}
