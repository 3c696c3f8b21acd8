package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponent struct {
	name     string
	startErr error
	events   *[]string
}

func (f *fakeComponent) Start(ctx context.Context) error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	*f.events = append(*f.events, "stop:"+f.name)
	return nil
}

func (f *fakeComponent) Name() string { return f.name }

func TestManagerStartsInDependencyOrder(t *testing.T) {
	var events []string
	a := &fakeComponent{name: "a", events: &events}
	b := &fakeComponent{name: "b", events: &events}

	m := NewManager()
	require.NoError(t, m.Register(a))
	require.NoError(t, m.Register(b, a))

	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, []string{"start:a", "start:b"}, events)

	events = nil
	require.NoError(t, m.Stop(context.Background()))
	assert.Equal(t, []string{"stop:b", "stop:a"}, events)
}

func TestManagerRollsBackOnStartFailure(t *testing.T) {
	var events []string
	a := &fakeComponent{name: "a", events: &events}
	b := &fakeComponent{name: "b", startErr: errors.New("boom"), events: &events}

	m := NewManager()
	require.NoError(t, m.Register(a))
	require.NoError(t, m.Register(b, a))

	err := m.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b")
	assert.Equal(t, []string{"start:a", "start:b", "stop:a"}, events)
}

func TestManagerRejectsUnknownDependency(t *testing.T) {
	var events []string
	a := &fakeComponent{name: "a", events: &events}
	b := &fakeComponent{name: "b", events: &events}

	m := NewManager()
	require.NoError(t, m.Register(a))
	assert.Error(t, m.Register(b, &fakeComponent{name: "ghost", events: &events}))
	assert.Error(t, m.Register(a))
}
