package llm

import (
	"context"
	"sync"
)

// LazyClient defers provider construction until the first call, then reuses
// the same underlying client for the life of the process. Construction runs
// at most once; a construction failure is sticky and returned to every
// subsequent caller.
type LazyClient struct {
	factory func() (Client, error)

	once   sync.Once
	client Client
	err    error
}

// NewLazyClient wraps a client factory with at-most-once initialization.
func NewLazyClient(factory func() (Client, error)) *LazyClient {
	return &LazyClient{factory: factory}
}

func (l *LazyClient) materialize() (Client, error) {
	l.once.Do(func() {
		l.client, l.err = l.factory()
	})
	return l.client, l.err
}

// Complete materializes the underlying client if needed and delegates.
func (l *LazyClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	client, err := l.materialize()
	if err != nil {
		return nil, err
	}
	return client.Complete(ctx, req)
}

// Close closes the underlying client if it was ever materialized.
func (l *LazyClient) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}
