// Package dispatch routes invocation requests to registered tool handlers.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/tickertape/internal/logging"
	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/observability"
	"github.com/aretw0/tickertape/pkg/ports"
	"github.com/aretw0/tickertape/pkg/registry"
	"github.com/aretw0/tickertape/pkg/schema"
	"github.com/google/uuid"
)

// Dispatcher validates and executes tool invocations against a Registry.
// Invocations run one at a time, in the order Handle is called.
type Dispatcher struct {
	registry *registry.Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
	journal  ports.InvocationJournal

	mu  sync.Mutex
	now func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithMetrics records every invocation in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithJournal appends every finished invocation to j.
func WithJournal(j ports.InvocationJournal) Option {
	return func(d *Dispatcher) {
		d.journal = j
	}
}

// New creates a dispatcher over reg.
func New(reg *registry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher serves.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// Handle runs one invocation to completion and never panics.
// Every failure is reported in the returned Result; nothing is retried.
func (d *Dispatcher) Handle(ctx context.Context, req domain.InvocationRequest) domain.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := uuid.NewString()
	start := d.now()
	log := d.logger.With("tool", req.ToolName, "invocation_id", id)

	if d.metrics != nil {
		d.metrics.Started()
	}

	res := d.handle(ctx, req, log)
	elapsed := d.now().Sub(start)

	if d.metrics != nil {
		d.metrics.Finished(req.ToolName, res.Outcome(), elapsed)
	}

	if res.OK() {
		log.Debug("Invocation succeeded", "duration", elapsed, "bytes", len(res.Text))
	} else {
		log.Warn("Invocation failed", "kind", res.Failure.Kind, "error", res.Failure.Message, "duration", elapsed)
	}

	if d.journal != nil {
		entry := ports.JournalEntry{
			ID:        id,
			Tool:      req.ToolName,
			Arguments: req.Arguments,
			Outcome:   res.Outcome(),
			Duration:  elapsed,
			At:        start,
		}
		if !res.OK() {
			entry.Message = res.Failure.Message
		}
		if err := d.journal.Record(ctx, entry); err != nil {
			log.Warn("Journal record failed", "error", err)
		}
	}

	return res
}

func (d *Dispatcher) handle(ctx context.Context, req domain.InvocationRequest, log *slog.Logger) domain.Result {
	entry, err := d.registry.Lookup(req.ToolName)
	if err != nil {
		return domain.Fail(domain.KindUnknownTool, err.Error())
	}

	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}
	if err := schema.Validate(entry.Spec.Parameters, args); err != nil {
		return domain.Fail(domain.KindInvalidArguments, err.Error())
	}
	if extra := schema.Undeclared(entry.Spec.Parameters, args); len(extra) > 0 {
		log.Debug("Ignoring undeclared arguments", "arguments", extra)
	}

	text, err := invoke(ctx, entry.Handler, args)
	if err != nil {
		return domain.Fail(classify(err), err.Error())
	}
	return domain.Success(text)
}

// invoke calls h, converting a panic into an error.
func invoke(ctx context.Context, h domain.ToolHandler, args map[string]any) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, args)
}

func classify(err error) domain.FailureKind {
	switch {
	case errors.Is(err, domain.ErrProvider):
		return domain.KindProvider
	case errors.Is(err, domain.ErrInvalidArguments):
		return domain.KindInvalidArguments
	default:
		return domain.KindHandler
	}
}
