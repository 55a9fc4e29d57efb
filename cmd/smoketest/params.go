package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MiniCooper40/ecommerce-website/framework"
	"github.com/MiniCooper40/ecommerce-website/smoketests"
)

type commandParams struct {
	rootDir          string
	securityURL      string
	gatewayURL       string
	readinessTimeout time.Duration
	gracePeriod      time.Duration
	filters          framework.RegexFilters
	noBuild          bool
	external         bool
	strict           bool
	debug            bool
	debugAll         bool
}

func (c *commandParams) Read(args []string) bool {
	wd, _ := os.Getwd()

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.rootDir, "root", wd, "project root containing backend/security-service and backend/gateway")
	fs.StringVar(&c.securityURL, "security-url", smoketests.DefaultSecurityURL, "base URL of the security service")
	fs.StringVar(&c.gatewayURL, "gateway-url", smoketests.DefaultGatewayURL, "base URL of the gateway")
	fs.DurationVar(&c.readinessTimeout, "timeout", framework.DefaultReadinessTimeout, "how long to wait for each service to become healthy")
	fs.DurationVar(&c.gracePeriod, "grace", framework.DefaultGracePeriod, "how long to wait for a service to exit before killing it")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select steps to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select steps not to run")
	fs.BoolVar(&c.noBuild, "no-build", false, "launch the services without building them first")
	fs.BoolVar(&c.external, "external", false, "do not build or launch anything; test services that are already running")
	fs.BoolVar(&c.strict, "strict", false, "exit with a non-zero status if any step failed")
	fs.BoolVar(&c.debug, "debug", false, "show debug output for failed steps")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show debug output for all steps")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) Config() smoketests.Config {
	config := smoketests.DefaultConfig(c.rootDir)
	config.Security.BaseURL = c.securityURL
	config.Gateway.BaseURL = c.gatewayURL
	config.ReadinessTimeout = c.readinessTimeout
	config.GracePeriod = c.gracePeriod
	switch {
	case c.external:
		config = config.WithExternalServices()
	case c.noBuild:
		config = config.WithoutBuild()
	}
	return config
}
