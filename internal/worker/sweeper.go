package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fitclub-core/internal/usecase/commands"
)

// ExpirySweeper runs one sweep immediately and then one per interval until stopped.
// A failed or panicking pass is logged and the schedule continues.
type ExpirySweeper struct {
	sweep    commands.ExpiryCommands
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewExpirySweeper(sweep commands.ExpiryCommands, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		sweep:    sweep,
		interval: interval,
	}
}

// Start launches the loop in the background. Calling Start twice is a no-op.
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.Run(runCtx)
	}()
}

// Stop cancels the loop and waits for the current pass to return or ctx to expire.
func (s *ExpirySweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run blocks until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	slog.Info("expiry sweeper started", slog.Duration("interval", s.interval))
	defer slog.Info("expiry sweeper stopped")

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *ExpirySweeper) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("expiry sweep panicked", slog.String("panic", fmt.Sprint(r)))
		}
	}()

	if _, err := s.sweep.RunExpirySweepOnce(ctx); err != nil {
		slog.Error("expiry sweep failed, retrying on next tick",
			slog.Any("error", err),
			slog.Duration("next_in", s.interval))
	}
}
