package smoketests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MiniCooper40/ecommerce-website/framework"
	"github.com/MiniCooper40/ecommerce-website/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCorrelationID = "11111111-2222-3333-4444-555555555555"

func loggedMessages(logger *framework.CapturingLogger) []string {
	var ret []string
	for _, m := range logger.Output() {
		ret = append(ret, m.Message)
	}
	return ret
}

func authHandler(register, login http.Handler) http.Handler {
	return httphelpers.HandlerForPath(servicedef.RegisterPath, register,
		httphelpers.HandlerForPath(servicedef.LoginPath, login, httphelpers.HandlerWithStatus(404)))
}

func loginResponse(token string) http.Handler {
	return httphelpers.HandlerWithJSONResponse(map[string]interface{}{
		"token":     token,
		"type":      "Bearer",
		"expiresIn": 86400,
		"user": map[string]interface{}{
			"id":    1,
			"email": DefaultCredentials.Email,
			"roles": []string{"USER"},
		},
	}, nil)
}

func TestAuthenticateReturnsToken(t *testing.T) {
	token := strings.Repeat("x", 80)
	handler, requestsCh := httphelpers.RecordingHandler(
		authHandler(httphelpers.HandlerWithStatus(201), loginResponse(token)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var logger framework.CapturingLogger
		client := NewClient(server.URL, testCorrelationID)

		result, ok := Authenticate(context.Background(), client, DefaultCredentials, &logger)
		require.True(t, ok)
		assert.Equal(t, token, result)
		assert.Equal(t, []string{
			"Register response: 201",
			"Login response: 200",
			"Received JWT token: " + token[:50] + "...",
			"Login details: type=Bearer expiresIn=86400s userId=1 email=test@example.com roles=USER",
		}, loggedMessages(&logger))

		registerReq := <-requestsCh
		assert.Equal(t, "POST", registerReq.Request.Method)
		assert.Equal(t, servicedef.RegisterPath, registerReq.Request.URL.Path)
		assert.Equal(t, "application/json", registerReq.Request.Header.Get("Content-Type"))
		assert.Equal(t, testCorrelationID, registerReq.Request.Header.Get(servicedef.CorrelationIDHeader))
		var registerBody servicedef.RegisterParams
		require.NoError(t, json.Unmarshal(registerReq.Body, &registerBody))
		assert.Equal(t, DefaultCredentials, registerBody)

		loginReq := <-requestsCh
		assert.Equal(t, servicedef.LoginPath, loginReq.Request.URL.Path)
		assert.Equal(t, testCorrelationID, loginReq.Request.Header.Get(servicedef.CorrelationIDHeader))
		assert.JSONEq(t, `{"email":"test@example.com","password":"password123"}`, string(loginReq.Body))
	})
}

func TestAuthenticateProceedsWhenAlreadyRegistered(t *testing.T) {
	handler := authHandler(httphelpers.HandlerWithStatus(409), loginResponse("abc"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var logger framework.CapturingLogger
		token, ok := Authenticate(context.Background(), NewClient(server.URL, ""), DefaultCredentials, &logger)
		assert.True(t, ok)
		assert.Equal(t, "abc", token)
		assert.Contains(t, loggedMessages(&logger), "Register response: 409")
	})
}

func TestAuthenticateWithMinimalLoginResponse(t *testing.T) {
	handler := authHandler(httphelpers.HandlerWithStatus(201),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{"token": "abc", "issuedAt": "2024-01-01T00:00:00Z"}, nil))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var logger framework.CapturingLogger
		_, ok := Authenticate(context.Background(), NewClient(server.URL, ""), DefaultCredentials, &logger)
		require.True(t, ok)
		messages := loggedMessages(&logger)
		assert.Equal(t, "Login details: issuedAt=2024-01-01T00:00:00Z", messages[len(messages)-1])
	})
}

func TestAuthenticateWithRejectedLogin(t *testing.T) {
	handler := authHandler(httphelpers.HandlerWithStatus(200), httphelpers.HandlerWithStatus(401))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var logger framework.CapturingLogger
		token, ok := Authenticate(context.Background(), NewClient(server.URL, ""), DefaultCredentials, &logger)
		assert.False(t, ok)
		assert.Equal(t, "", token)
		assert.Equal(t, []string{"Register response: 200", "Login response: 401"}, loggedMessages(&logger))
	})
}

func TestAuthenticateWithNoTokenInResponse(t *testing.T) {
	handler := authHandler(httphelpers.HandlerWithStatus(200),
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{"type": "Bearer"}, nil))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var logger framework.CapturingLogger
		_, ok := Authenticate(context.Background(), NewClient(server.URL, ""), DefaultCredentials, &logger)
		assert.False(t, ok)
		assert.Contains(t, loggedMessages(&logger), "No token received")
	})
}

func TestAuthenticateWithMalformedResponse(t *testing.T) {
	handler := authHandler(httphelpers.HandlerWithStatus(200),
		httphelpers.HandlerWithResponse(200, nil, []byte("not json")))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		_, ok := Authenticate(context.Background(), NewClient(server.URL, ""), DefaultCredentials, nil)
		assert.False(t, ok)
	})
}

func TestAuthenticateWithUnreachableService(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	var logger framework.CapturingLogger
	_, ok := Authenticate(context.Background(), NewClient(url, ""), DefaultCredentials, &logger)
	assert.False(t, ok)
	messages := loggedMessages(&logger)
	require.Len(t, messages, 2)
	assert.True(t, strings.HasPrefix(messages[0], "Register request failed"))
	assert.True(t, strings.HasPrefix(messages[1], "Authentication test failed"))
}
