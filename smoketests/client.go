package smoketests

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/MiniCooper40/ecommerce-website/servicedef"
)

const requestTimeout = time.Second * 10

// Client makes requests to one service under test. Every request carries the correlation ID of
// the run, so that the services' logs can be matched to it.
type Client struct {
	baseURL       string
	correlationID string
	httpClient    *http.Client
}

func NewClient(baseURL, correlationID string) *Client {
	return &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		correlationID: correlationID,
		httpClient:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is the status and body of a completed request.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// PostJSON sends params as a JSON request body.
func (c *Client) PostJSON(ctx context.Context, path string, params interface{}) (Response, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return Response{}, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// Get sends a GET request, with a bearer token if token is not empty.
func (c *Client) Get(ctx context.Context, path string, token string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return Response{}, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (Response, error) {
	if c.correlationID != "" {
		req.Header.Set(servicedef.CorrelationIDHeader, c.correlationID)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, err
	}
	return Response{StatusCode: resp.StatusCode, Body: body}, nil
}
