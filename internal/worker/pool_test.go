package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPool_RunsTasksAndDrainsOnClose(t *testing.T) {
	p := NewPool(2, 16, zap.NewNop())
	p.Start(context.Background())

	var n atomic.Int32
	for i := 0; i < 10; i++ {
		if !p.TrySubmit("count", func(context.Context) error {
			time.Sleep(time.Millisecond)
			n.Add(1)
			return nil
		}) {
			t.Fatalf("submit %d rejected", i)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := n.Load(); got != 10 {
		t.Fatalf("expected 10 tasks to run, got %d", got)
	}

	if p.TrySubmit("late", func(context.Context) error { return nil }) {
		t.Fatalf("submit after close must be rejected")
	}
	if err := p.Close(ctx); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_DropsWhenQueueFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewPool(1, 1, zap.New(core))

	// not started: the single queue slot fills up
	if !p.TrySubmit("first", func(context.Context) error { return nil }) {
		t.Fatalf("first submit must succeed")
	}
	if p.TrySubmit("second", func(context.Context) error { return nil }) {
		t.Fatalf("second submit must be dropped")
	}
	if logs.FilterMessage("task dropped, queue full").Len() != 1 {
		t.Fatalf("expected drop warning")
	}
	_ = p.Close(context.Background())
}

func TestPool_SupervisesFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewPool(1, 4, zap.New(core))
	p.Start(context.Background())

	var after atomic.Bool
	p.TrySubmit("panics", func(context.Context) error { panic("boom") })
	p.TrySubmit("fails", func(context.Context) error { return errors.New("nope") })
	p.TrySubmit("after", func(context.Context) error {
		after.Store(true)
		return nil
	})

	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !after.Load() {
		t.Fatalf("worker must survive a panicking task")
	}
	if logs.FilterMessage("task panicked").Len() != 1 {
		t.Fatalf("expected panic to be logged")
	}
	if logs.FilterMessage("task failed").Len() != 1 {
		t.Fatalf("expected failure to be logged")
	}
}

func TestPool_CloseTimesOut(t *testing.T) {
	p := NewPool(1, 1, zap.NewNop())
	p.Start(context.Background())

	release := make(chan struct{})
	defer close(release)
	p.TrySubmit("blocked", func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
