package nsduck

import (
	"context"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/nsqlite/nsduck/internal/enginetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWaitTimeout(t *testing.T) {
	ctx := context.Background()
	fake := enginetest.New()
	fake.SetResult("SELECT 1 AS one", []string{"one"}, []driver.Value{int64(1)})
	name := enginetest.Register(t, fake)

	s, err := Create(ctx, ":memory:", nil, WithEngine(name))
	require.NoError(t, err)
	defer s.Close(ctx)

	require.NoError(t, s.lock(ctx))

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	_, err = s.Query(waitCtx, "SELECT 1 AS one")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, fake.Counters().StatementsDispatched)
	assert.Zero(t, s.Stats().Statements)

	s.unlock()

	res, err := s.Query(ctx, "SELECT 1 AS one")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Len())
}

func TestCloseWaitsWithCanceledContext(t *testing.T) {
	ctx := context.Background()
	fake := enginetest.New()
	name := enginetest.Register(t, fake)

	s, err := Create(ctx, ":memory:", nil, WithEngine(name))
	require.NoError(t, err)

	require.NoError(t, s.lock(ctx))

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	done := make(chan error, 1)
	go func() { done <- s.Close(canceled) }()

	select {
	case err := <-done:
		t.Fatalf("Close returned while the session was busy: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	s.unlock()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return after the session was released")
	}
	assert.Equal(t, StateClosed, s.State())
	assert.Equal(t, int64(1), fake.Counters().DatabasesClosed)
}

func TestSessionStatsAlignment(t *testing.T) {
	var st sessionStats

	tests := []struct {
		name  string
		align uintptr
	}{
		{"statements", unsafe.Alignof(st.statements)},
		{"failedStatements", unsafe.Alignof(st.failedStatements)},
		{"rowsReturned", unsafe.Alignof(st.rowsReturned)},
		{"lastDuration", unsafe.Alignof(st.lastDuration)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, uintptr(8), tt.align)
		})
	}
}

func TestSessionStatsConcurrentRecord(t *testing.T) {
	st := newSessionStats()
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(fail bool) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				var err error
				if fail {
					err = errors.New("failed")
				}
				st.record(start, 2, err)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	assert.Equal(t, int64(800), st.statements.Load())
	assert.Equal(t, int64(400), st.failedStatements.Load())
	assert.Equal(t, int64(1600), st.rowsReturned.Load())
	assert.Equal(t, start, st.lastStatementAt.Load())
}

func TestStates(t *testing.T) {
	assert.Equal(t, 4, States.Len())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, StateUnopened, *States.Parse("unopened"))
}
