package cycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_DoIsOneUnitOfWork(t *testing.T) {
	loop := cycle.NewLoop(0)
	idx := cycle.NewIndexer(loop)

	var first, second []int
	loop.Do(func() {
		first = append(first, idx.Current(), idx.Current())
		// Nested Do joins the outer unit.
		loop.Do(func() { first = append(first, idx.Current()) })
		first = append(first, idx.Current())
	})
	loop.Do(func() {
		second = append(second, idx.Current(), idx.Current())
	})

	assert.Equal(t, []int{0, 0, 0, 0}, first)
	assert.Equal(t, []int{1, 1}, second)
}

func TestLoop_CallsOutsideDoAreSeparateUnits(t *testing.T) {
	loop := cycle.NewLoop(0)
	idx := cycle.NewIndexer(loop)

	// 1. Outside Do every call is its own unit, as with Immediate
	outside := []int{idx.Current(), idx.Current()}

	// 2. The next Do starts a fresh unit
	var inside []int
	loop.Do(func() {
		inside = append(inside, idx.Current(), idx.Current())
	})

	assert.Equal(t, []int{0, 1}, outside)
	assert.Equal(t, []int{2, 2}, inside)
}

func TestLoop_RunAndCall(t *testing.T) {
	loop := cycle.NewLoop(4)
	idx := cycle.NewIndexer(loop)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	var got []int
	for i := 0; i < 3; i++ {
		err := loop.Call(ctx, func() error {
			got = append(got, idx.Current(), idx.Current())
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []int{0, 0, 1, 1, 2, 2}, got)

	// Errors propagate
	boom := errors.New("boom")
	err := loop.Call(ctx, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// Panics become errors
	err = loop.Call(ctx, func() error { panic("bad") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")

	// A second Run is rejected
	assert.ErrorIs(t, loop.Run(ctx), cycle.ErrLoopRunning)

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}

	// After the loop stops, calls fail instead of blocking
	err = loop.Call(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, cycle.ErrLoopStopped)
}

func TestLoop_PostHonoursContext(t *testing.T) {
	loop := cycle.NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Post(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)
}
