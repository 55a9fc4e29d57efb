package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MiniCooper40/ecommerce-website/framework"
	"github.com/MiniCooper40/ecommerce-website/smoketests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	// The first interrupt cancels the run, which skips the remaining steps and then stops the
	// services. After that the default handling is restored, so a second interrupt exits at once.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	harness := smoketests.NewHarness(params.Config(), os.Stdout)

	fmt.Println("Starting ecommerce system smoke test")
	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	testLogger := &framework.ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := harness.Run(ctx, params.filters.AsFilter, testLogger)

	fmt.Println()
	if ctx.Err() != nil {
		fmt.Println("Tests interrupted by user")
	}
	framework.PrintResults(os.Stdout, results)
	if params.strict && !results.OK() {
		os.Exit(1)
	}
}
