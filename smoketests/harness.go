package smoketests

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/MiniCooper40/ecommerce-website/framework"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Harness runs the smoke test against one configuration. It owns every process it launches.
type Harness struct {
	config        Config
	processes     *framework.ProcessGroup
	output        io.Writer
	logger        framework.Logger
	correlationID string
	token         string
}

// NewHarness creates a Harness that writes its progress and all subprocess output to output.
func NewHarness(config Config, output io.Writer) *Harness {
	if output == nil {
		output = ioutil.Discard
	}
	logger := framework.WriterLogger(output)
	return &Harness{
		config:        config,
		processes:     framework.NewProcessGroup(logger, config.GracePeriod),
		output:        output,
		logger:        logger,
		correlationID: uuid.NewString(),
	}
}

// CorrelationID is sent with every request the harness makes.
func (h *Harness) CorrelationID() string {
	return h.correlationID
}

// Processes returns the process group that owns the launched services.
func (h *Harness) Processes() *framework.ProcessGroup {
	return h.processes
}

// Run executes the steps in order, stopping early if one fails, and then stops every launched
// service whatever the outcome.
func (h *Harness) Run(
	ctx context.Context,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	defer h.Cleanup()

	fmt.Fprintf(h.output, "Run correlation ID: %s\n", h.correlationID)
	security := NewClient(h.config.Security.BaseURL, h.correlationID)
	gateway := NewClient(h.config.Gateway.BaseURL, h.correlationID)

	return framework.Run(ctx, filter, testLogger, func(c *framework.Context) {
		h.serviceSteps(c, h.config.Security)

		c.Run("authentication", func(c *framework.Context) {
			token, ok := Authenticate(c.Ctx(), security, h.config.Credentials, h.logger)
			if !ok {
				return
			}
			h.token = token
			info, err := DecodeToken(token)
			if err != nil {
				c.Debug("%s", err)
				return
			}
			h.logger.Printf("Token claims: %s", info)
		})

		h.serviceSteps(c, h.config.Gateway)

		c.Run("gateway routing", func(c *framework.Context) {
			if h.token == "" {
				c.SkipWithReason("no token available for gateway test")
			}
			TestGatewayRouting(c.Ctx(), gateway, h.token, h.logger)
		})

		c.Run("gateway anonymous access", func(c *framework.Context) {
			ProbeAnonymousAccess(c.Ctx(), gateway, h.logger)
		})
	})
}

func (h *Harness) serviceSteps(c *framework.Context, service ServiceConfig) {
	c.Run("build "+service.Name, func(c *framework.Context) {
		if len(service.BuildCommand) == 0 {
			c.SkipWithReason("no build command")
		}
		require.NoError(c, h.processes.Build(c.Ctx(), service.ServiceDef))
	})

	c.Run("launch "+service.Name, func(c *framework.Context) {
		if len(service.RunCommand) == 0 {
			c.SkipWithReason("no run command, expecting the service to be running already")
		}
		p, err := h.processes.Launch(service.ServiceDef)
		require.NoError(c, err)
		c.Debug("%s started with PID %d", service.Name, p.PID())
	})

	c.Run("wait for "+service.Name, func(c *framework.Context) {
		if !framework.WaitForService(c.Ctx(), service.BaseURL,
			h.config.ReadinessTimeout, h.config.PollInterval, h.output) {
			require.Fail(c, fmt.Sprintf("%s: %s", framework.ErrServiceNotReady, service.Name),
				"no healthy response from %s within %s", service.BaseURL+framework.HealthPath,
				h.config.ReadinessTimeout)
		}
		h.logger.Printf("%s is ready!", service.Name)
	})
}

// Cleanup stops every service the harness launched. It is called at the end of Run, and may
// also be called from a signal handler; each process is only stopped once.
func (h *Harness) Cleanup() {
	if len(h.processes.Processes()) == 0 {
		return
	}
	h.logger.Printf("Stopping services...")
	if err := h.processes.Cleanup(); err != nil {
		h.logger.Printf("Cleanup error: %s", err)
	}
}
