// recruitment-service
//
// Candidate intake for the recruitment pipeline.
// Exposes a REST API (and an optional gRPC mirror) used to:
//   - create a candidate: validation, duplicate check, 1-3 random job offers,
//     transactional persistence and a synchronous push to the legacy system
//   - list candidates page by page with their job offers
//
// Publishes EVENT_CANDIDATE_CREATED to Redis and snapshots per-status counts
// on a cron schedule when REDIS_URL is set.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "recruitment",
	Short:         "recruitment runs and inspects the candidate recruitment service.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(serveCmd, candidatesCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[recruitment-service] %v\n", err)
		os.Exit(1)
	}
}
