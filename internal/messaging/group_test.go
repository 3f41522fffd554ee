package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linkmetry/linkmetry/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRunnable struct {
	startErr    error
	shutdownErr error
	started     bool
	stopped     bool
}

func (f *fakeRunnable) Start(_ context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	f.started = true

	return nil
}

func (f *fakeRunnable) Shutdown() error {
	f.stopped = true

	return f.shutdownErr
}

func TestConsumerGroup_Start(t *testing.T) {
	t.Run("starts all consumers", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())

		first := &fakeRunnable{}
		second := &fakeRunnable{}
		group.Add(first)
		group.Add(second)

		err := group.Start(context.Background())

		require.NoError(t, err)
		assert.True(t, first.started)
		assert.True(t, second.started)
	})

	t.Run("stops started consumers when one fails", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())

		first := &fakeRunnable{}
		failing := &fakeRunnable{startErr: errors.New("start error")}
		group.Add(first)
		group.Add(failing)

		err := group.Start(context.Background())

		require.Error(t, err)
		assert.True(t, first.stopped)
	})
}

func TestConsumerGroup_Shutdown(t *testing.T) {
	t.Run("stops all consumers and closes subscriber", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())

		first := &fakeRunnable{}
		second := &fakeRunnable{}
		group.Add(first)
		group.Add(second)

		require.NoError(t, group.Start(context.Background()))
		require.NoError(t, group.Shutdown())

		assert.True(t, first.stopped)
		assert.True(t, second.stopped)
		assert.True(t, sub.closed)
	})

	t.Run("keeps going after a consumer error", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())

		failing := &fakeRunnable{shutdownErr: errors.New("shutdown error")}
		second := &fakeRunnable{}
		group.Add(failing)
		group.Add(second)

		err := group.Shutdown()

		assert.Error(t, err)
		assert.True(t, second.stopped)
	})
}
