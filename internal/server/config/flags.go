package config

import (
	"flag"
	"os"
	"time"

	"github.com/theryangeary/gl/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-d string   PostgreSQL DSN
//	-k int      default category id for new entries
//	-m          enable demo mode (periodic database reset)
//	-i int      demo reset interval, minutes
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-m", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.Int64Var(&config.DefaultCategoryID, "k", config.DefaultCategoryID, "default category id")
	fs.BoolVar(&config.DemoMode, "m", config.DemoMode, "demo mode")

	demoResetInterval := fs.Int("i", int(config.DemoResetInterval.Minutes()), "demo_reset_interval (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DemoResetInterval = time.Duration(*demoResetInterval) * time.Minute
}
