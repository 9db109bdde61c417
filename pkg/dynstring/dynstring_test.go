package dynstring

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getdynlabel/dynlabel/pkg/template"
)

// fakeSource replays events pushed by the test, so update ordering across
// producers is fully deterministic.
type fakeSource struct {
	events chan Output
	err    error
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan Output)}
}

func (s *fakeSource) Run(ctx context.Context, emit func(Output)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out, ok := <-s.events:
			if !ok {
				return s.err
			}
			emit(out)
		}
	}
}

func (s *fakeSource) emit(t *testing.T, out Output) {
	t.Helper()
	select {
	case s.events <- out:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out emitting event; producer not consuming")
	}
}

func (s *fakeSource) primary(t *testing.T, data string) {
	t.Helper()
	s.emit(t, Output{Stream: StreamPrimary, Data: data})
}

// fakeFactory hands out one fakeSource per expression.
type fakeFactory struct {
	sources map[string]*fakeSource
}

func newFakeFactory(exprs ...string) *fakeFactory {
	f := &fakeFactory{sources: make(map[string]*fakeSource)}
	for _, expr := range exprs {
		f.sources[expr] = newFakeSource()
	}
	return f
}

func (f *fakeFactory) factory(expr string) Source {
	src, ok := f.sources[expr]
	if !ok {
		src = newFakeSource()
		f.sources[expr] = src
	}
	return src
}

func collectSink(ch chan<- string) Sink {
	return func(s string) bool {
		ch <- s
		return true
	}
}

func waitPublish(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for publish")
		return ""
	}
}

func assertNoPublish(t *testing.T, ch <-chan string, wait time.Duration) {
	t.Helper()
	select {
	case s := <-ch:
		t.Fatalf("unexpected publish %q", s)
	case <-time.After(wait):
	}
}

func TestStaticTemplatePublishesVerbatimOnce(t *testing.T) {
	t.Parallel()

	published := make(chan string, 16)
	ds := New(t.Context(), "hello world", newFakeFactory().factory, collectSink(published))
	defer ds.Stop()

	assert.Equal(t, "hello world", waitPublish(t, published))
	assertNoPublish(t, published, 100*time.Millisecond)
}

func TestEmptyTemplatePublishesEmptyOnce(t *testing.T) {
	t.Parallel()

	published := make(chan string, 16)
	ds := New(t.Context(), "", newFakeFactory().factory, collectSink(published))
	defer ds.Stop()

	assert.Equal(t, "", waitPublish(t, published))
	assertNoPublish(t, published, 100*time.Millisecond)
}

func TestInitialSnapshotPrecedesUpdates(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory("uptime -p")
	published := make(chan string, 16)

	ds := New(t.Context(), "Uptime: {{uptime -p}}", factory.factory, collectSink(published))
	defer ds.Stop()

	assert.Equal(t, "Uptime: ", waitPublish(t, published))

	factory.sources["uptime -p"].primary(t, "up 2 hours")
	assert.Equal(t, "Uptime: up 2 hours", waitPublish(t, published))
}

func TestInterleavedUpdatesKeepTemplateOrder(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory("x", "y")
	published := make(chan string, 16)

	ds := New(t.Context(), "{{x}}-{{y}}", factory.factory, collectSink(published))
	defer ds.Stop()

	assert.Equal(t, "-", waitPublish(t, published))

	factory.sources["x"].primary(t, "1")
	assert.Equal(t, "1-", waitPublish(t, published))

	factory.sources["y"].primary(t, "2")
	assert.Equal(t, "1-2", waitPublish(t, published))

	factory.sources["x"].primary(t, "3")
	assert.Equal(t, "3-2", waitPublish(t, published))
}

func TestDiagnosticOutputIsIgnored(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory("cmd")
	published := make(chan string, 16)

	ds := New(t.Context(), "[{{cmd}}]", factory.factory, collectSink(published))
	defer ds.Stop()

	assert.Equal(t, "[]", waitPublish(t, published))

	factory.sources["cmd"].emit(t, Output{Stream: StreamDiagnostic, Data: "oops"})
	assertNoPublish(t, published, 100*time.Millisecond)

	factory.sources["cmd"].primary(t, "ok")
	assert.Equal(t, "[ok]", waitPublish(t, published))
}

func TestSameValueStillRepublishes(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory("cmd")
	published := make(chan string, 16)

	ds := New(t.Context(), "v={{cmd}}", factory.factory, collectSink(published))
	defer ds.Stop()

	assert.Equal(t, "v=", waitPublish(t, published))

	factory.sources["cmd"].primary(t, "same")
	assert.Equal(t, "v=same", waitPublish(t, published))

	factory.sources["cmd"].primary(t, "same")
	assert.Equal(t, "v=same", waitPublish(t, published))
}

func TestSourceTerminationKeepsLastValue(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory("a", "b")
	published := make(chan string, 16)

	ds := New(t.Context(), "{{a}}|{{b}}", factory.factory, collectSink(published))
	defer ds.Stop()

	assert.Equal(t, "|", waitPublish(t, published))

	srcA := factory.sources["a"]
	srcA.primary(t, "held")
	assert.Equal(t, "held|", waitPublish(t, published))

	// Source a dies with an error; its slot must keep the last value.
	srcA.err = errors.New("exec failed")
	close(srcA.events)

	factory.sources["b"].primary(t, "later")
	assert.Equal(t, "held|later", waitPublish(t, published))
}

func TestSinkFalseStopsDelivery(t *testing.T) {
	t.Parallel()

	factory := newFakeFactory("cmd")
	var calls atomic.Int32

	ds := New(t.Context(), "{{cmd}}", factory.factory, func(string) bool {
		calls.Add(1)
		return false
	})

	select {
	case <-ds.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Done after sink returned false")
	}

	ds.Stop()
	assert.Equal(t, int32(1), calls.Load(), "sink must not be called after returning false")
}

func TestStopCancelsProducers(t *testing.T) {
	t.Parallel()

	released := make(chan struct{})
	blocking := SourceFunc(func(ctx context.Context, _ func(Output)) error {
		defer close(released)
		<-ctx.Done()
		return ctx.Err()
	})

	published := make(chan string, 16)
	ds := New(t.Context(), "{{forever}}", func(string) Source { return blocking }, collectSink(published))

	assert.Equal(t, "", waitPublish(t, published))
	ds.Stop()

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("producer not released by Stop")
	}
}

func TestContextCancelStopsDelivery(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	factory := newFakeFactory("cmd")
	published := make(chan string, 16)

	ds := New(ctx, "{{cmd}}", factory.factory, collectSink(published))
	assert.Equal(t, "", waitPublish(t, published))

	cancel()
	select {
	case <-ds.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Done after context cancel")
	}
}

func TestNewFromSegments(t *testing.T) {
	t.Parallel()

	segments := []template.Segment{
		{Kind: template.SegmentStatic, Text: "n="},
		{Kind: template.SegmentDynamic, Text: "counter"},
	}
	factory := newFakeFactory("counter")
	published := make(chan string, 16)

	ds := NewFromSegments(t.Context(), segments, factory.factory, collectSink(published), Options{Buffer: 1})
	defer ds.Stop()

	assert.Equal(t, "n=", waitPublish(t, published))
	factory.sources["counter"].primary(t, "41")
	assert.Equal(t, "n=41", waitPublish(t, published))
	factory.sources["counter"].primary(t, "42")
	assert.Equal(t, "n=42", waitPublish(t, published))
}

func TestInstanceIDsAreUnique(t *testing.T) {
	t.Parallel()

	sink := func(string) bool { return true }
	a := New(t.Context(), "a", nil, sink)
	b := New(t.Context(), "b", nil, sink)
	defer a.Stop()
	defer b.Stop()

	require.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestStreamString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "primary", StreamPrimary.String())
	assert.Equal(t, "diagnostic", StreamDiagnostic.String())
	assert.Equal(t, "unknown", Stream(9).String())
}
