package model

import (
	"context"
	"time"

	"github.com/tutormesh/tutormesh/internal/metrics"
)

// instrumentedClient wraps a Client and records call durations and outcomes.
type instrumentedClient struct {
	inner Client
	m     *metrics.Metrics
}

// WithMetrics wraps a client with Prometheus instrumentation. A nil metrics
// set returns the client unchanged.
func WithMetrics(c Client, m *metrics.Metrics) Client {
	if m == nil {
		return c
	}
	return &instrumentedClient{inner: c, m: m}
}

func (c *instrumentedClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := c.inner.Generate(ctx, prompt)
	c.m.ObserveModelCall(c.inner.Name(), start, err)
	return text, err
}

func (c *instrumentedClient) Name() string { return c.inner.Name() }

func (c *instrumentedClient) Model() string { return c.inner.Model() }
