package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingTicker struct {
	name  string
	order *[]string
	seen  [][]Event
	times []time.Time
}

func (r *recordingTicker) Tick(tc TickContext) error {
	*r.order = append(*r.order, r.name)
	r.seen = append(r.seen, tc.Events())
	r.times = append(r.times, tc.Time())
	return nil
}

func TestLoopRunTick(t *testing.T) {
	var order []string
	first := &recordingTicker{name: "first", order: &order}
	second := &recordingTicker{name: "second", order: &order}
	loop := NewLoop().AddTicker(first, second)

	loop.PostEvent("a")
	loop.PostEvent("b")
	now := time.Unix(100, 0)
	loop.RunTick(context.TODO(), now)
	loop.RunTick(context.TODO(), now.Add(time.Second))

	require.Equal(t, []string{"first", "second", "first", "second"}, order)
	require.Equal(t, []Event{"a", "b"}, first.seen[0])
	require.Equal(t, []Event{"a", "b"}, second.seen[0])
	require.Empty(t, first.seen[1])
	require.Equal(t, now, first.times[0])
}

func TestLoopRunDeliversEvents(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Millisecond
	gotCh := make(chan Event, 1)
	loop.AddTicker(TickFunc(func(tc TickContext) error {
		for _, ev := range tc.Events() {
			gotCh <- ev
		}
		return nil
	}))
	loop.AddRunnable(RunFunc(func(ctx context.Context) error {
		LoopCtlFrom(ctx).PostEvent("hello")
		<-ctx.Done()
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.TODO())
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	select {
	case ev := <-gotCh:
		require.Equal(t, "hello", ev)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())

	errA, errB := errors.New("a"), errors.New("b")
	err := errs.Add(errA).Aggregate()
	require.Equal(t, "a", err.Error())
	err = errs.Add(errB).Aggregate()
	require.Equal(t, "Multiple errors:\na\nb", err.Error())
	require.True(t, errors.Is(err, errB))
}

func TestRunnerWait(t *testing.T) {
	boom := errors.New("boom")
	r := NewRunner().Go(
		NamedRun("ok", RunFunc(func(context.Context) error { return nil })),
		RunFunc(func(context.Context) error { return boom }),
		RunFunc(func(context.Context) error { return context.Canceled }),
	)
	err := r.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, boom))
}
