package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the tick interval used when Loop.Interval is zero.
const DefaultInterval = 20 * time.Millisecond

// Loop runs Tickers at a fixed cadence on a single goroutine.
// Events posted from other goroutines are queued and handed to
// the Tickers at the start of the next tick, so all state owned
// by Tickers is only touched from the loop goroutine.
type Loop struct {
	Interval time.Duration

	tickers []Ticker
	runners []Runnable

	events []Event
	lock   sync.Mutex

	wakeUpCh chan struct{}
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopCtl struct {
	*Loop
}

type tickContext struct {
	loopCtl
	ctx    context.Context
	time   time.Time
	events []Event
}

var (
	loopCtxKey = &Loop{}
)

// LoopCtlFrom gets LoopControl from context.
// Runnables started by a Loop always find one.
func LoopCtlFrom(ctx context.Context) LoopControl {
	return ctx.Value(loopCtxKey).(LoopControl)
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval, wakeUpCh: make(chan struct{}, 1)}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddTicker registers Tickers. They run in registration order.
func (l *Loop) AddTicker(tickers ...Ticker) *Loop {
	l.tickers = append(l.tickers, tickers...)
	for _, t := range tickers {
		if runner, ok := t.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementations.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	runner := NewRunnerWith(context.WithValue(ctx, loopCtxKey, &loopCtl{l}))
	runner.Go(l.runners...)

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			cancel()
			if err := runner.Wait(); err != nil {
				glog.Errorf("runner error: %v", err)
			}
			return ctx.Err()
		case t := <-ticker.C:
			l.RunTick(ctx, t)
		case <-l.wakeUpCh:
			l.RunTick(ctx, time.Now())
		}
	}
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail(ctx context.Context) {
	if err := l.Run(ctx); err != nil && err != context.Canceled {
		glog.Exit(err)
	}
}

// PostEvent implements EventPoster.
func (l *Loop) PostEvent(ev Event) {
	l.lock.Lock()
	l.events = append(l.events, ev)
	l.lock.Unlock()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	if l.wakeUpCh == nil {
		return
	}
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

// RunTick runs a single tick at the specified time. It is used by Run
// and is exported so a tick can be driven synchronously in tests and tools.
func (l *Loop) RunTick(ctx context.Context, now time.Time) {
	tc := &tickContext{loopCtl: loopCtl{l}, time: now}
	l.lock.Lock()
	tc.events, l.events = l.events, nil
	l.lock.Unlock()
	tc.ctx = ctx
	for _, t := range l.tickers {
		if err := t.Tick(tc); err != nil {
			glog.Errorf("tick error: %v", err)
		}
	}
}

func (t *tickContext) Context() context.Context {
	return t.ctx
}

func (t *tickContext) Time() time.Time {
	return t.time
}

func (t *tickContext) Events() []Event {
	return t.events
}
