// Command poolmap runs a reference workload through a pooled parallel map
// and reports the per-item results and the overall time.
//
//	poolmap primes                      # the built-in list of known primes
//	poolmap primes 61 67 68 --pool-size 2
//	poolmap sqrt 4 9 16 --dispatch first-available
//
// Defaults can be set with POOLMAP_* environment variables; flags win.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/utkarsh5026/poolmap/internal/config"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "poolmap:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
