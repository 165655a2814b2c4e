// Package config loads runtime configuration for the gymkeeper terminal
// client.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   address:port of the gymkeeper server
//	-i int      online status check interval (seconds)
//	-d string   local data directory (session database, logs)
//	-l string   log file name inside the data directory, without extension
//	-v          mirror log records to stderr
//
// # JSON schema
//
// Intervals use timex.Duration, so either "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "5s",
//	  "data_dir": ".gymkeeper",
//	  "log_file": "client",
//	  "log_level": "debug"
//	}
package config
