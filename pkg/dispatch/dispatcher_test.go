package dispatch_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aretw0/tickertape/pkg/dispatch"
	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/observability"
	"github.com/aretw0/tickertape/pkg/ports"
	"github.com/aretw0/tickertape/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tickerParam = []domain.Parameter{{Name: "stock_ticker", Type: domain.ParamString, Required: true}}

type recordingJournal struct {
	mu      sync.Mutex
	entries []ports.JournalEntry
	err     error
}

func (j *recordingJournal) Record(ctx context.Context, e ports.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	return j.err
}

func newDispatcher(t *testing.T, handler domain.ToolHandler, opts ...dispatch.Option) *dispatch.Dispatcher {
	t.Helper()
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(domain.ToolSpec{Name: "stock_info", Parameters: tickerParam}, handler))
	reg.Freeze()
	return dispatch.New(reg, opts...)
}

func TestHandle_Success(t *testing.T) {
	d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
		return "info for " + args["stock_ticker"].(string), nil
	})

	res := d.Handle(context.Background(), domain.InvocationRequest{
		ToolName:  "stock_info",
		Arguments: map[string]any{"stock_ticker": "IBM"},
	})

	require.True(t, res.OK())
	assert.Equal(t, "info for IBM", res.Text)
	assert.Equal(t, "success", res.Outcome())
}

func TestHandle_UnknownTool(t *testing.T) {
	d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
		t.Fatal("handler must not run")
		return "", nil
	})

	res := d.Handle(context.Background(), domain.InvocationRequest{ToolName: "get_dividends"})

	require.False(t, res.OK())
	assert.Equal(t, domain.KindUnknownTool, res.Failure.Kind)
	assert.Contains(t, res.Failure.Message, "get_dividends")
}

func TestHandle_InvalidArguments(t *testing.T) {
	called := false
	d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
		called = true
		return "", nil
	})

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing", nil},
		{"wrong type", map[string]any{"stock_ticker": 42.0}},
		{"undeclared only", map[string]any{"period": "1y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Handle(context.Background(), domain.InvocationRequest{ToolName: "stock_info", Arguments: tt.args})
			require.False(t, res.OK())
			assert.Equal(t, domain.KindInvalidArguments, res.Failure.Kind)
		})
	}
	assert.False(t, called)
}

func TestHandle_IgnoresUndeclaredArguments(t *testing.T) {
	var got map[string]any
	d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
		got = args
		return "", fmt.Errorf("quote not found: %w", domain.ErrProvider)
	})

	res := d.Handle(context.Background(), domain.InvocationRequest{
		ToolName:  "stock_info",
		Arguments: map[string]any{"stock_ticker": "ZZZZINVALID", "extra": 1.0},
	})

	// the call reaches the provider instead of failing validation
	require.False(t, res.OK())
	assert.Equal(t, domain.KindProvider, res.Failure.Kind)
	assert.Equal(t, "ZZZZINVALID", got["stock_ticker"])
}

func TestHandle_ClassifiesHandlerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.FailureKind
	}{
		{"provider", fmt.Errorf("fetch ZZZZINVALID: %w", domain.ErrProvider), domain.KindProvider},
		{"arguments", fmt.Errorf("ticker %q: %w", "$$", domain.ErrInvalidArguments), domain.KindInvalidArguments},
		{"other", errors.New("boom"), domain.KindHandler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
				return "partial", tt.err
			})

			res := d.Handle(context.Background(), domain.InvocationRequest{
				ToolName:  "stock_info",
				Arguments: map[string]any{"stock_ticker": "ZZZZINVALID"},
			})

			require.False(t, res.OK())
			assert.Equal(t, tt.want, res.Failure.Kind)
			assert.Empty(t, res.Text)
			assert.Equal(t, tt.err.Error(), res.Failure.Message)
		})
	}
}

func TestHandle_RecoversPanic(t *testing.T) {
	d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
		panic("nil table")
	})

	res := d.Handle(context.Background(), domain.InvocationRequest{
		ToolName:  "stock_info",
		Arguments: map[string]any{"stock_ticker": "IBM"},
	})

	require.False(t, res.OK())
	assert.Equal(t, domain.KindHandler, res.Failure.Kind)
	assert.Contains(t, res.Failure.Message, "nil table")
}

func TestHandle_RepeatedCallsAreIndependent(t *testing.T) {
	calls := 0
	d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
		calls++
		return fmt.Sprintf("call %d", calls), nil
	})
	req := domain.InvocationRequest{ToolName: "stock_info", Arguments: map[string]any{"stock_ticker": "IBM"}}

	first := d.Handle(context.Background(), req)
	second := d.Handle(context.Background(), req)

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.Equal(t, "call 1", first.Text)
	assert.Equal(t, "call 2", second.Text)
	assert.Equal(t, 2, calls)
}

func TestHandle_SerializesInvocations(t *testing.T) {
	var (
		mu      sync.Mutex
		running int
		maxSeen int
	)
	d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
		mu.Lock()
		running++
		maxSeen = max(maxSeen, running)
		mu.Unlock()

		mu.Lock()
		running--
		mu.Unlock()
		return "ok", nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Handle(context.Background(), domain.InvocationRequest{
				ToolName:  "stock_info",
				Arguments: map[string]any{"stock_ticker": "IBM"},
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestHandle_RecordsMetricsAndJournal(t *testing.T) {
	metrics := observability.NewMetrics()
	journal := &recordingJournal{err: errors.New("redis down")}
	d := newDispatcher(t, func(ctx context.Context, args map[string]any) (string, error) {
		if args["stock_ticker"] == "ZZZZINVALID" {
			return "", fmt.Errorf("quote not found: %w", domain.ErrProvider)
		}
		return "ok", nil
	}, dispatch.WithMetrics(metrics), dispatch.WithJournal(journal))

	ok := d.Handle(context.Background(), domain.InvocationRequest{ToolName: "stock_info", Arguments: map[string]any{"stock_ticker": "IBM"}})
	bad := d.Handle(context.Background(), domain.InvocationRequest{ToolName: "stock_info", Arguments: map[string]any{"stock_ticker": "ZZZZINVALID"}})

	// journal failures never change the result
	assert.True(t, ok.OK())
	assert.Equal(t, domain.KindProvider, bad.Failure.Kind)

	require.Len(t, journal.entries, 2)
	assert.Equal(t, "success", journal.entries[0].Outcome)
	assert.Equal(t, "provider_error", journal.entries[1].Outcome)
	assert.Contains(t, journal.entries[1].Message, "quote not found")
	assert.NotEqual(t, journal.entries[0].ID, journal.entries[1].ID)

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, w.Body.String(), `tickertape_tool_invocations_total{outcome="success",tool="stock_info"} 1`)
	assert.Contains(t, w.Body.String(), `tickertape_tool_invocations_total{outcome="provider_error",tool="stock_info"} 1`)
}
