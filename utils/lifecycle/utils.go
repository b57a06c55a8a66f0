package lifecycle

// Instance is a component whose start and close are coordinated by a Manager.
type Instance interface {
	Close_()
	String() string
}

// Manager starts an instance at most once and closes it at most once.
type Manager[T Instance] interface {
	Start(func(T) error) error
	Close()
	Done() <-chan struct{}
}

// StartedAlreadyError is returned by Start on a manager that has been started before.
type StartedAlreadyError struct{}

func (*StartedAlreadyError) Error() string {
	return "started already"
}

// StartedAfterCloseError is returned by Start on a manager that has been closed.
type StartedAfterCloseError struct{}

func (*StartedAfterCloseError) Error() string {
	return "start after close"
}
