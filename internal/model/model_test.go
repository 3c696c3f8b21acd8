package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutormesh/tutormesh/internal/metrics"
)

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "carrier-pigeon", Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestNewMockProvider(t *testing.T) {
	c, err := New(context.Background(), Config{Provider: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", c.Name())
	assert.Equal(t, DefaultConfig().Model, c.Model())
}

func TestMockScriptedResponses(t *testing.T) {
	c := NewMockClient("")
	c.EnqueueResponse("first").EnqueueError(errors.New("quota exceeded")).EnqueueResponse("third")

	ctx := context.Background()

	text, err := c.Generate(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	_, err = c.Generate(ctx, "p2")
	require.Error(t, err)

	text, err = c.Generate(ctx, "p3")
	require.NoError(t, err)
	assert.Equal(t, "third", text)

	// Script exhausted: falls back to echoing.
	text, err = c.Generate(ctx, "hello\nworld")
	require.NoError(t, err)
	assert.Equal(t, "mock response to: hello", text)

	assert.Equal(t, 4, c.CallCount())
	assert.Equal(t, "p1", c.Calls()[0])
}

func TestMockRespectsContextCancellation(t *testing.T) {
	c := NewMockClient("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Generate(ctx, "p")
	require.Error(t, err)
	assert.Equal(t, 0, c.CallCount())
}

func TestCallContextTimeout(t *testing.T) {
	ctx, cancel := callContext(context.Background(), 10*time.Millisecond)
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 5*time.Millisecond)

	ctx, cancel = callContext(context.Background(), 0)
	defer cancel()
	_, ok = ctx.Deadline()
	assert.False(t, ok)
}

func TestWithMetricsPassthrough(t *testing.T) {
	inner := NewMockClient("").EnqueueResponse("ok")
	c := WithMetrics(inner, metrics.New())

	text, err := c.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, "mock", c.Name())

	// nil metrics returns the client unchanged
	assert.Equal(t, Client(inner), WithMetrics(inner, nil))
}
