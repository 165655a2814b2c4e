package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseRest parses a rest period written as MM:SS.
func ParseRest(s string) (time.Duration, error) {
	mm, ss, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("rest period %q: want MM:SS", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 {
		return 0, fmt.Errorf("rest period %q: bad minutes", s)
	}
	sec, err := strconv.Atoi(ss)
	if err != nil || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("rest period %q: bad seconds", s)
	}
	d := time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
	if d == 0 {
		return 0, fmt.Errorf("rest period %q: must be positive", s)
	}
	return d, nil
}

func formatRest(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// startTimer announces the end of the rest period from the timer goroutine.
func (a *App) startTimer(d time.Duration) {
	t := time.AfterFunc(d, func() {
		a.println()
		a.printf("\aRest is over (%s). Next set!\n", formatRest(d))
	})
	a.timersMu.Lock()
	a.timers = append(a.timers, t)
	a.timersMu.Unlock()
}
