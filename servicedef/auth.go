// Package servicedef defines the JSON request and response bodies exchanged with the services
// under test.
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	RegisterPath = "/api/auth/register"
	LoginPath    = "/api/auth/login"

	// GatewayProfilePath is routed by the gateway to the security service's profile resource.
	GatewayProfilePath = "/security/api/auth/profile"

	CorrelationIDHeader = "X-Correlation-ID"
)

type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both the register and login resources. Only Token is required
// by the harness; the rest is logged after login.
type AuthResponse struct {
	Token     string                 `json:"token"`
	Type      ldvalue.OptionalString `json:"type,omitempty"`
	ExpiresIn ldvalue.OptionalInt    `json:"expiresIn,omitempty"`
	IssuedAt  ldvalue.OptionalString `json:"issuedAt,omitempty"`
	User      *UserInfo              `json:"user,omitempty"`
}

type UserInfo struct {
	ID        ldvalue.OptionalInt `json:"id,omitempty"`
	Email     string              `json:"email"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Roles     []string            `json:"roles,omitempty"`
}
