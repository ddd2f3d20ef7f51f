package bench

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okian/teamfit/internal/domain/types"
)

// Client talks to a running teamfit service.
type Client struct {
	http *resty.Client
}

// NewClient returns a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode())
	}
	return nil
}

// Response is the raw outcome of one request.
type Response struct {
	Status  int
	Body    []byte
	Elapsed time.Duration
}

// PostFormations sends one optimization request.
func (c *Client) PostFormations(ctx context.Context, req types.OptimizeRequest) (Response, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/formations")
	if err != nil {
		return Response{}, err
	}
	return Response{Status: resp.StatusCode(), Body: resp.Body(), Elapsed: resp.Time()}, nil
}
