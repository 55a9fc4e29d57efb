package framework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

// HealthPath is the health resource exposed by every service under test.
const HealthPath = "/actuator/health"

const (
	DefaultReadinessTimeout = time.Second * 60
	DefaultPollInterval     = time.Second * 2
	healthRequestTimeout    = time.Second * 5
)

// ErrServiceNotReady is returned when a service's health resource did not report success before
// the readiness timeout.
var ErrServiceNotReady = errors.New("service did not become ready")

// WaitForService polls the health resource of the service at baseURL, at a fixed interval,
// until it returns a 200 status or the timeout elapses. It returns true as soon as the service
// is healthy. It never runs longer than the timeout plus one polling interval; each individual
// request is bounded by whatever is left of the timeout.
//
// A dot is written to output for every attempt.
func WaitForService(
	ctx context.Context,
	baseURL string,
	timeout time.Duration,
	interval time.Duration,
	output io.Writer,
) bool {
	if output == nil {
		output = ioutil.Discard
	}
	url := baseURL + HealthPath
	fmt.Fprintf(output, "Waiting for service at %s", url)
	defer fmt.Fprintln(output)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		fmt.Fprintf(output, ".")
		if checkHealth(ctx, url, time.Until(deadline)) {
			return true
		}
		wait := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			wait.Stop()
			return false
		case <-wait.C:
		}
	}
	return false
}

func checkHealth(ctx context.Context, url string, remaining time.Duration) bool {
	requestTimeout := healthRequestTimeout
	if remaining < requestTimeout {
		requestTimeout = remaining
	}
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, "GET", url, nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	_, _ = io.Copy(ioutil.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
