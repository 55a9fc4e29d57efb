package smoketests

import (
	"context"

	"github.com/MiniCooper40/ecommerce-website/framework"
	"github.com/MiniCooper40/ecommerce-website/servicedef"
)

// TestGatewayRouting sends one authenticated request through the gateway to the security
// service's profile resource, and reports the status code. Any status is acceptable; the
// second return value is false only if there was no token or the request could not be made.
func TestGatewayRouting(
	ctx context.Context,
	client *Client,
	token string,
	logger framework.Logger,
) (int, bool) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if token == "" {
		logger.Printf("No token available for gateway test")
		return 0, false
	}
	resp, err := client.Get(ctx, servicedef.GatewayProfilePath, token)
	if err != nil {
		logger.Printf("Gateway test failed: %s", err)
		return 0, false
	}
	logger.Printf("Gateway auth test response: %d", resp.StatusCode)
	return resp.StatusCode, true
}

// ProbeAnonymousAccess sends the same request as TestGatewayRouting without any credentials.
// The gateway's authentication filter is expected to reject it with a 401.
func ProbeAnonymousAccess(ctx context.Context, client *Client, logger framework.Logger) (int, bool) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	resp, err := client.Get(ctx, servicedef.GatewayProfilePath, "")
	if err != nil {
		logger.Printf("Anonymous gateway probe failed: %s", err)
		return 0, false
	}
	logger.Printf("Anonymous gateway probe response: %d", resp.StatusCode)
	return resp.StatusCode, true
}
