package cli

import (
	"context"
	"time"
)

const pingTimeout = 3 * time.Second

func (a *App) setOnline(ctx context.Context, online bool) {
	if a.online.Swap(online) != online {
		if online {
			a.log.Info(ctx, "server is reachable")
		} else {
			a.log.Warn(ctx, "server is unreachable")
		}
	}
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// online flag shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := a.auth.Ping(pctx)
		cancel()
		a.setOnline(ctx, err == nil)
	}

	check()
	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
