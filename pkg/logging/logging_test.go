package logging

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
)

func TestFrom_NoLoggerAttachedReturnsDiscard(t *testing.T) {
	// Must not panic, and must be safe to call methods on.
	log := From(context.Background())
	log.Info("this should go nowhere")
	if log.GetSink() != logr.Discard().GetSink() {
		t.Errorf("From(empty ctx) sink = %v, want the discard logger's sink", log.GetSink())
	}
}

func TestInto_From_RoundTrips(t *testing.T) {
	logger, cleanup, err := New(false)
	if err != nil {
		t.Fatalf("New(false) error = %v", err)
	}
	defer cleanup()

	ctx := Into(context.Background(), logger)
	got := From(ctx).WithValues("k", "v")
	got.Info("round tripped")
	if From(ctx).GetSink() != logger.GetSink() {
		t.Errorf("From(Into(ctx, logger)) did not return the attached logger")
	}

	// A context with nothing attached must not pick up the prior logger.
	other := From(context.Background())
	other.Info("unrelated context")
	if other.GetSink() == logger.GetSink() {
		t.Errorf("From(empty ctx) returned the logger attached to another context")
	}
}

func TestNew_ProductionLoggerBuilds(t *testing.T) {
	logger, cleanup, err := New(false)
	if err != nil {
		t.Fatalf("New(false) error = %v", err)
	}
	defer cleanup()
	logger.Info("production logger smoke test")
}

func TestNew_DevelopmentLoggerBuilds(t *testing.T) {
	logger, cleanup, err := New(true)
	if err != nil {
		t.Fatalf("New(true) error = %v", err)
	}
	defer cleanup()
	logger.Info("development logger smoke test")
}
