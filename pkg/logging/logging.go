// Package logging builds the operational logr.Logger used across vdir,
// semconv, and resolver for progress and timing messages. These are
// distinct from diag.Diagnostic: a log line says "cloning took 400ms", a
// diagnostic says "group x is missing brief". Only the latter is part of
// a resolve's result.
package logging

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

type ctxKey struct{}

// New builds a logr.Logger backed by zap. verbose selects the development
// encoder (human-readable, capitalized level names); otherwise the
// production JSON encoder is used, matching how most long-running
// services in this stack pick their zap config.
func New(verbose bool) (logr.Logger, func(), error) {
	var zl *zap.Logger
	var err error
	if verbose {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}

// Into attaches logger to ctx.
func Into(ctx context.Context, logger logr.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From retrieves the logger attached to ctx, or a no-op logger if none was
// attached.
func From(ctx context.Context) logr.Logger {
	if l, ok := ctx.Value(ctxKey{}).(logr.Logger); ok {
		return l
	}
	return logr.Discard()
}
