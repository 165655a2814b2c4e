package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gymkeeper/internal/flagx"
)

// parseFlags overlays cfg with the client's own flags. Foreign flags are
// filtered out first so the JSON selector does not trip the parser.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-d", "-l", "-v"})

	fs := flag.NewFlagSet("gymkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the server")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file name")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "mirror logs to stderr")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
