package llm

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	completions atomic.Int64
	closed      bool
}

func (s *stubClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	s.completions.Add(1)
	return &Completion{Text: "{}", Model: "stub"}, nil
}

func (s *stubClient) Close() error {
	s.closed = true
	return nil
}

func TestLazyClient_ConstructsOnce(t *testing.T) {
	stub := &stubClient{}
	constructions := 0
	lazy := NewLazyClient(func() (Client, error) {
		constructions++
		return stub, nil
	})

	// Construction must not happen before the first call.
	assert.Equal(t, 0, constructions)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lazy.Complete(context.Background(), Request{User: "hi"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, constructions)
	assert.Equal(t, int64(8), stub.completions.Load())
}

func TestLazyClient_StickyConstructionError(t *testing.T) {
	constructions := 0
	factoryErr := errors.New("bad credentials")
	lazy := NewLazyClient(func() (Client, error) {
		constructions++
		return nil, factoryErr
	})

	_, err := lazy.Complete(context.Background(), Request{})
	require.ErrorIs(t, err, factoryErr)

	_, err = lazy.Complete(context.Background(), Request{})
	require.ErrorIs(t, err, factoryErr)

	// The factory never runs a second time.
	assert.Equal(t, 1, constructions)
}

func TestLazyClient_CloseWithoutMaterialize(t *testing.T) {
	lazy := NewLazyClient(func() (Client, error) {
		t.Fatal("factory must not run on Close")
		return nil, nil
	})
	assert.NoError(t, lazy.Close())
}

func TestLazyClient_CloseDelegates(t *testing.T) {
	stub := &stubClient{}
	lazy := NewLazyClient(func() (Client, error) { return stub, nil })

	_, err := lazy.Complete(context.Background(), Request{})
	require.NoError(t, err)

	require.NoError(t, lazy.Close())
	assert.True(t, stub.closed)
}
