// Package recommender provides a client for the recommendation endpoint.
package recommender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/recoform/internal/domain/preference"
)

var (
	// ErrServerReported matches errors carrying a message from the server.
	ErrServerReported = errors.New("server reported an error")
	// ErrEmptyResult is returned when the server sends no recommendations.
	ErrEmptyResult = errors.New("no recommendations returned")
	// ErrTransportFailure marks unreachable endpoints and unreadable responses.
	ErrTransportFailure = errors.New("transport failure")
)

// ServerError is an error message reported by the server.
// Returned errors are marked with ErrServerReported.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// RequestIDHeader carries the per-submission ID.
const RequestIDHeader = "X-Request-ID"

// Client is a recommendation endpoint client.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Config represents recommender client configuration.
type Config struct {
	Endpoint string
	Timeout  time.Duration // 0 leaves the request to the transport's own behavior
}

// Response is the body returned by the endpoint.
type Response struct {
	Error           *string                     `json:"error"`
	Recommendations []preference.Recommendation `json:"recommendations"`
}

// New creates a new recommender client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("recommender endpoint is required")
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends one request and interprets the response.
// The request ID is attached as a header for correlation.
func (c *Client) Submit(ctx context.Context, requestID string, in preference.Input) ([]preference.Recommendation, error) {
	if requestID == "" {
		requestID = uuid.New().String()
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	zlog.Debug().Msgf("submitting preferences: request_id=%s endpoint=%s artist=%s genre=%s subgenre=%s",
		requestID, c.endpoint, in.Artist, in.Genre, in.Subgenre)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to send request"), ErrTransportFailure)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to read response body"), ErrTransportFailure)
	}

	// The body is interpreted whatever the status code
	recs, err := Interpret(body)
	if err != nil {
		zlog.Warn().Msgf("submission failed: request_id=%s status=%d error=%v", requestID, resp.StatusCode, err)
		return nil, err
	}

	zlog.Info().Msgf("received recommendations: request_id=%s count=%d", requestID, len(recs))
	return recs, nil
}

// Interpret decodes a response body into recommendations.
func Interpret(body []byte) ([]preference.Recommendation, error) {
	var response *Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to parse response"), ErrTransportFailure)
	}
	if response == nil {
		return nil, errors.Mark(errors.New("response body is not an object"), ErrTransportFailure)
	}

	if response.Error != nil && *response.Error != "" {
		return nil, errors.Mark(&ServerError{Message: *response.Error}, ErrServerReported)
	}

	if len(response.Recommendations) == 0 {
		return nil, ErrEmptyResult
	}

	recs := make([]preference.Recommendation, 0, len(response.Recommendations))
	for _, r := range response.Recommendations {
		recs = append(recs, r.WithDefaults())
	}
	return recs, nil
}
