package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrdersRefresher struct {
	mock.Mock
}

func (m *MockOrdersRefresher) Handle(ctx context.Context, cmd commands.RefreshOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

// syncBuffer guards log output written from the cron goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(out *syncBuffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNewSnapshotRefreshJob_DefaultSchedule(t *testing.T) {
	job := NewSnapshotRefreshJob(new(MockOrdersRefresher), "", newTestLogger(&syncBuffer{}))

	assert.Equal(t, DefaultSnapshotRefreshSpec, job.spec)
}

func TestSnapshotRefreshJob_Run(t *testing.T) {
	t.Run("should log the number of loaded orders", func(t *testing.T) {
		out := &syncBuffer{}
		handler := new(MockOrdersRefresher)
		handler.On("Handle", mock.Anything, mock.Anything).Return(7, nil).Once()
		job := NewSnapshotRefreshJob(handler, "", newTestLogger(out))

		job.Run(context.Background())

		handler.AssertExpectations(t)
		assert.Contains(t, out.String(), "Snapshot refreshed")
		assert.Contains(t, out.String(), "orders=7")
	})

	t.Run("should log failures", func(t *testing.T) {
		out := &syncBuffer{}
		handler := new(MockOrdersRefresher)
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("store offline")).Once()
		job := NewSnapshotRefreshJob(handler, "", newTestLogger(out))

		job.Run(context.Background())

		assert.Contains(t, out.String(), "level=ERROR")
		assert.Contains(t, out.String(), "store offline")
	})
}

func TestSnapshotRefreshJob_Schedule(t *testing.T) {
	t.Run("should refresh on schedule until stopped", func(t *testing.T) {
		handler := new(MockOrdersRefresher)
		calls := make(chan struct{}, 10)
		handler.On("Handle", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { calls <- struct{}{} }).
			Return(1, nil)
		job := NewSnapshotRefreshJob(handler, "@every 1s", newTestLogger(&syncBuffer{}))

		require.NoError(t, job.Start())
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatal("refresh did not run")
		}
		job.Stop()
	})

	t.Run("should reject an invalid schedule", func(t *testing.T) {
		job := NewSnapshotRefreshJob(new(MockOrdersRefresher), "every now and then", newTestLogger(&syncBuffer{}))

		require.Error(t, job.Start())
	})
}

func TestJobManager(t *testing.T) {
	t.Run("should start and stop all jobs", func(t *testing.T) {
		manager := NewJobManager(new(MockOrdersRefresher), "@every 1h", newTestLogger(&syncBuffer{}))

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})

	t.Run("should wrap start failures", func(t *testing.T) {
		manager := NewJobManager(new(MockOrdersRefresher), "bogus", newTestLogger(&syncBuffer{}))

		err := manager.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "snapshot refresh job")
	})
}
