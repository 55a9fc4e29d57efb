package smoketests

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/MiniCooper40/ecommerce-website/framework"
	"github.com/MiniCooper40/ecommerce-website/servicedef"
)

const (
	DefaultSecurityURL = "http://localhost:8081"
	DefaultGatewayURL  = "http://localhost:8080"

	securityServiceName = "security-service"
	gatewayServiceName  = "gateway"
	artifactVersion     = "1.0.0"
)

// ServiceConfig is a service under test: how to build and run it, and where to reach it.
//
// An empty BuildCommand or RunCommand means that step is skipped, e.g. when testing a service
// that is already running.
type ServiceConfig struct {
	framework.ServiceDef
	BaseURL string
}

// Config holds everything the smoke test needs to know about its environment.
type Config struct {
	Security         ServiceConfig
	Gateway          ServiceConfig
	Credentials      servicedef.RegisterParams
	ReadinessTimeout time.Duration
	PollInterval     time.Duration
	GracePeriod      time.Duration
}

// DefaultCredentials is the test account that is registered, then logged in.
var DefaultCredentials = servicedef.RegisterParams{
	Email:     "test@example.com",
	Password:  "password123",
	FirstName: "Test",
	LastName:  "User",
}

// DefaultConfig returns the standard configuration for a project checked out at rootDir: the
// security service on port 8081 and the gateway on port 8080, both built with Maven and run
// from their jar.
func DefaultConfig(rootDir string) Config {
	return Config{
		Security: mavenService(rootDir, securityServiceName, filepath.Join("backend", "security-service"),
			8081, DefaultSecurityURL),
		Gateway: mavenService(rootDir, gatewayServiceName, filepath.Join("backend", "gateway"),
			8080, DefaultGatewayURL),
		Credentials:      DefaultCredentials,
		ReadinessTimeout: framework.DefaultReadinessTimeout,
		PollInterval:     framework.DefaultPollInterval,
		GracePeriod:      framework.DefaultGracePeriod,
	}
}

func mavenService(rootDir, name, dir string, port int, baseURL string) ServiceConfig {
	return ServiceConfig{
		ServiceDef: framework.ServiceDef{
			Name:         name,
			Dir:          filepath.Join(rootDir, dir),
			BuildCommand: []string{"mvn", "clean", "package", "-DskipTests"},
			RunCommand: []string{
				"java", "-jar",
				fmt.Sprintf("target/%s-%s.jar", name, artifactVersion),
				fmt.Sprintf("--server.port=%d", port),
			},
		},
		BaseURL: baseURL,
	}
}

// WithoutBuild returns a copy of the configuration that skips both build steps.
func (c Config) WithoutBuild() Config {
	c.Security.BuildCommand = nil
	c.Gateway.BuildCommand = nil
	return c
}

// WithExternalServices returns a copy of the configuration that neither builds nor launches
// anything, and expects both services to be running already.
func (c Config) WithExternalServices() Config {
	c = c.WithoutBuild()
	c.Security.RunCommand = nil
	c.Gateway.RunCommand = nil
	return c
}
