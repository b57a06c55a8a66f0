package lifecycle

import (
	"sync"

	"github.com/ugparu/btaudio/utils/logger"
)

type defaultLifecycleManager[T Instance] struct {
	instance             T
	startOnce, closeOnce *sync.Once
	closeChan            chan struct{}
}

// NewDefaultManager returns a Manager for instance. A failed start still consumes the start.
func NewDefaultManager[T Instance](instance T) Manager[T] {
	return &defaultLifecycleManager[T]{
		instance:  instance,
		closeChan: make(chan struct{}),
		startOnce: &sync.Once{},
		closeOnce: &sync.Once{},
	}
}

func (m *defaultLifecycleManager[T]) Start(startFunc func(T) error) (err error) {
	select {
	case <-m.closeChan:
		return &StartedAfterCloseError{}
	default:
		err = &StartedAlreadyError{}
	}
	m.startOnce.Do(func() {
		logger.Debugf(m.instance, "Starting")
		if err = startFunc(m.instance); err != nil {
			logger.Errorf(m.instance, "Start failed: %v", err)
		}
	})
	return err
}

func (m *defaultLifecycleManager[T]) Close() {
	m.closeOnce.Do(func() {
		logger.Debugf(m.instance, "Closing")
		m.instance.Close_()
		close(m.closeChan)
	})
}

// Done is closed once Close has completed.
func (m *defaultLifecycleManager[T]) Done() <-chan struct{} {
	return m.closeChan
}
