package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type endpoint struct {
	closed int
}

func (e *endpoint) Close_() { e.closed++ }

func (*endpoint) String() string { return "ENDPOINT" }

func TestStart(t *testing.T) {
	t.Parallel()

	manager := NewDefaultManager(&endpoint{})
	err := manager.Start(func(*endpoint) error { return nil })
	require.NoError(t, err)
}

func TestErrorStart(t *testing.T) {
	t.Parallel()

	manager := NewDefaultManager(&endpoint{})
	err := manager.Start(func(*endpoint) error { return errors.New("bind failed") })
	require.EqualError(t, err, "bind failed")

	err = manager.Start(func(*endpoint) error { return nil })
	targetError := &StartedAlreadyError{}
	require.ErrorAs(t, err, &targetError)
}

func TestStartAfterStart(t *testing.T) {
	t.Parallel()

	manager := NewDefaultManager(&endpoint{})
	err := manager.Start(func(*endpoint) error { return nil })
	require.NoError(t, err)
	err = manager.Start(func(*endpoint) error { return nil })
	targetError := &StartedAlreadyError{}
	require.ErrorAs(t, err, &targetError)
}

func TestClose(t *testing.T) {
	t.Parallel()

	inst := &endpoint{}
	manager := NewDefaultManager(inst)
	require.NoError(t, manager.Start(func(*endpoint) error { return nil }))

	manager.Close()
	manager.Close()
	require.Equal(t, 1, inst.closed)

	select {
	case <-manager.Done():
	default:
		require.Fail(t, "done channel is not closed")
	}
}

func TestCloseBeforeStart(t *testing.T) {
	t.Parallel()

	inst := &endpoint{}
	manager := NewDefaultManager(inst)
	manager.Close()
	require.Equal(t, 1, inst.closed)
}

func TestStartAfterClose(t *testing.T) {
	t.Parallel()

	manager := NewDefaultManager(&endpoint{})
	manager.Close()
	err := manager.Start(func(*endpoint) error { return nil })
	targetError := &StartedAfterCloseError{}
	require.ErrorAs(t, err, &targetError)
}
