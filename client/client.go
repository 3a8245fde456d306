// Package client talks to the school directory API and holds the state of
// the three directory views: the creation form, the listing and the detail
// page.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"school-directory/models"
)

// ErrNotFound is returned by Detail.Load when no school has the route id.
var ErrNotFound = errors.New("school not found")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API rooted at baseURL. A nil httpClient means
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) ListSchools(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	if err := c.do(ctx, http.MethodGet, "/schools", nil, &schools); err != nil {
		return nil, err
	}
	if schools == nil {
		schools = []models.School{}
	}
	return schools, nil
}

// CreateSchool posts in and returns the server's acknowledgement message.
func (c *Client) CreateSchool(ctx context.Context, in models.SchoolInput) (string, error) {
	var msg models.Message
	if err := c.do(ctx, http.MethodPost, "/schools", in, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

func (c *Client) DeleteSchool(ctx context.Context, id string) (string, error) {
	var msg models.Message
	if err := c.do(ctx, http.MethodDelete, "/schools/"+url.PathEscape(id), nil, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return errors.Wrap(err, "encode request")
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e models.Error
		// a body that is not JSON still yields an APIError, just without a message
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Message, Detail: e.Detail}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

// IsAPIError reports whether err came from a non-2xx response rather than
// from the transport.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
