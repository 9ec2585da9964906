package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_Add(t *testing.T) {
	s := New(quiet(), time.Second)

	if err := s.Add("refresh", "*/15 * * * *", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Add() returned unexpected error: %v", err)
	}
	if err := s.Add("broken", "not a spec", func(context.Context) error { return nil }); err == nil {
		t.Error("Expected error for an invalid spec")
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 job, got %d", s.Len())
	}
}

func TestScheduler_Run(t *testing.T) {
	t.Run("job receives a bounded context", func(t *testing.T) {
		s := New(quiet(), 50*time.Millisecond)

		var deadline bool
		s.run("probe", func(ctx context.Context) error {
			_, deadline = ctx.Deadline()
			return nil
		})

		if !deadline {
			t.Error("Expected the job context to carry a deadline")
		}
	})

	t.Run("stop cancels the job context", func(t *testing.T) {
		s := New(quiet(), 0)
		s.Start()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)

		var jobErr error
		s.run("late", func(ctx context.Context) error {
			jobErr = ctx.Err()
			return jobErr
		})
		if !errors.Is(jobErr, context.Canceled) {
			t.Errorf("Expected context.Canceled after Stop, got %v", jobErr)
		}
	})
}
