package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vtree/pool"
)

func TestNumThreadsDefaultsToGOMAXPROCS(t *testing.T) {
	p := pool.New(pool.Config{})
	assert.Greater(t, p.NumThreads(), 0)
}

func TestNumThreadsHonorsConfig(t *testing.T) {
	p := pool.New(pool.Config{Threads: 3})
	assert.Equal(t, 3, p.NumThreads())
}

func TestJoinRunsAllWork(t *testing.T) {
	p := pool.New(pool.Config{Threads: 4})

	var n atomic.Int64

	works := make([]func() error, 10)
	for i := range works {
		works[i] = func() error {
			n.Add(1)

			return nil
		}
	}

	require.NoError(t, p.Join(context.Background(), works))
	assert.Equal(t, int64(10), n.Load())
}

func TestJoinPropagatesFirstError(t *testing.T) {
	p := pool.New(pool.Config{Threads: 2})

	sentinel := errors.New("boom")

	works := []func() error{
		func() error { return nil },
		func() error { return sentinel },
		func() error { return nil },
	}

	err := p.Join(context.Background(), works)
	assert.ErrorIs(t, err, sentinel)
}
