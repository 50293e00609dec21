package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC health bind address
//	-m string   worker metrics bind address
//	-d string   PostgreSQL DSN
//	-r string   Redis address
//	-f string   local storage root
//	-s string   storage backend ("local" or "s3")
//	-t int      session validity, hours (applied only when given)
//	-w int      thumbnail worker concurrency
//	-l string   log file
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// parsers (-c/-config) do not cause errors here.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-m", "-d", "-r", "-f", "-s", "-t", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.EndpointAddrMetrics, "m", config.EndpointAddrMetrics, "address and port to expose worker metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.FolderPath, "f", config.FolderPath, "local storage folder")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend (local, s3)")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Hours()), "session validity (in hours)")

	fs.IntVar(&config.WorkerConcurrency, "w", config.WorkerConcurrency, "thumbnail worker concurrency")
	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file (stdout when empty)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Hour
		}
	})
}
