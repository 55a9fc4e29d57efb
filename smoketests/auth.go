package smoketests

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MiniCooper40/ecommerce-website/framework"
	"github.com/MiniCooper40/ecommerce-website/servicedef"
)

const tokenPreviewLength = 50

// Authenticate registers the test account and then logs in with it, returning the token from
// the login response. It returns false if the login did not return a 200 status with a token
// in the body.
//
// Registration is best-effort: its outcome is logged and the login is attempted regardless,
// since the account may exist from an earlier run.
func Authenticate(
	ctx context.Context,
	client *Client,
	creds servicedef.RegisterParams,
	logger framework.Logger,
) (string, bool) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	resp, err := client.PostJSON(ctx, servicedef.RegisterPath, creds)
	if err != nil {
		logger.Printf("Register request failed: %s", err)
	} else {
		logger.Printf("Register response: %d", resp.StatusCode)
	}

	resp, err = client.PostJSON(ctx, servicedef.LoginPath, servicedef.LoginParams{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		logger.Printf("Authentication test failed: %s", err)
		return "", false
	}
	logger.Printf("Login response: %d", resp.StatusCode)
	if !resp.OK() {
		return "", false
	}

	var auth servicedef.AuthResponse
	if err := json.Unmarshal(resp.Body, &auth); err != nil {
		logger.Printf("Authentication test failed: malformed login response: %s", err)
		return "", false
	}
	if auth.Token == "" {
		logger.Printf("No token received")
		return "", false
	}
	logger.Printf("Received JWT token: %s...", previewToken(auth.Token))
	if details := describeAuth(auth); details != "" {
		logger.Printf("Login details: %s", details)
	}
	return auth.Token, true
}

// describeAuth summarizes whichever optional fields the login response carried.
func describeAuth(auth servicedef.AuthResponse) string {
	var parts []string
	if auth.Type.IsDefined() {
		parts = append(parts, "type="+auth.Type.StringValue())
	}
	if auth.ExpiresIn.IsDefined() {
		parts = append(parts, fmt.Sprintf("expiresIn=%ds", auth.ExpiresIn.IntValue()))
	}
	if auth.IssuedAt.IsDefined() {
		parts = append(parts, "issuedAt="+auth.IssuedAt.StringValue())
	}
	if u := auth.User; u != nil {
		if u.ID.IsDefined() {
			parts = append(parts, fmt.Sprintf("userId=%d", u.ID.IntValue()))
		}
		if u.Email != "" {
			parts = append(parts, "email="+u.Email)
		}
		if len(u.Roles) != 0 {
			parts = append(parts, "roles="+strings.Join(u.Roles, ","))
		}
	}
	return strings.Join(parts, " ")
}

func previewToken(token string) string {
	if len(token) <= tokenPreviewLength {
		return token
	}
	return token[:tokenPreviewLength]
}
