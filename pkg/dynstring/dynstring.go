package dynstring

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/getdynlabel/dynlabel/pkg/logging"
	"github.com/getdynlabel/dynlabel/pkg/template"
)

// defaultBuffer is the delivery channel capacity. Publishes beyond this
// while the sink is busy briefly block the emitting producer.
const defaultBuffer = 64

// Sink receives every composed string, starting with the initial snapshot.
// Returning false stops the DynamicString; no further calls are made.
type Sink func(s string) bool

// Options tunes a DynamicString. The zero value is ready to use.
type Options struct {
	// Logger receives debug events about source lifecycles. Defaults to a
	// no-op logger.
	Logger *slog.Logger

	// Buffer is the delivery channel capacity. Defaults to 64; values
	// below 1 are raised to 1 so the initial snapshot never blocks.
	Buffer int
}

// DynamicString owns the composition buffer for one compiled template and
// the producer goroutines feeding it. Create one with New and release it
// with Stop.
type DynamicString struct {
	id     string
	logger *slog.Logger

	mu    sync.Mutex
	parts []string

	updates chan string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	wg      sync.WaitGroup
}

// New compiles input and starts composing it. Every dynamic segment is
// bound to factory(expression) and runs concurrently until ctx is cancelled
// or Stop is called. The sink receives the initial snapshot (static text
// with empty dynamic positions) before any source update.
func New(ctx context.Context, input string, factory SourceFactory, sink Sink) *DynamicString {
	return NewWithOptions(ctx, input, factory, sink, Options{})
}

// NewWithOptions is New with explicit options.
func NewWithOptions(ctx context.Context, input string, factory SourceFactory, sink Sink, opts Options) *DynamicString {
	return NewFromSegments(ctx, template.Compile(input), factory, sink, opts)
}

// NewFromSegments starts composing an already-compiled segment list.
func NewFromSegments(ctx context.Context, segments []template.Segment, factory SourceFactory, sink Sink, opts Options) *DynamicString {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	buffer := opts.Buffer
	if buffer == 0 {
		buffer = defaultBuffer
	}
	if buffer < 1 {
		buffer = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	d := &DynamicString{
		id:      uuid.NewString(),
		logger:  logger,
		parts:   make([]string, len(segments)),
		updates: make(chan string, buffer),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	for i, seg := range segments {
		if seg.Static() {
			d.parts[i] = seg.Text
		}
	}

	// Queue the initial snapshot before any producer exists so it is
	// always the first value the sink sees.
	d.updates <- strings.Join(d.parts, "")

	go d.deliver(sink)

	for i, seg := range segments {
		if !seg.Dynamic() {
			continue
		}
		d.wg.Add(1)
		go d.produce(i, seg.Text, factory(seg.Text))
	}

	return d
}

// ID returns the instance identifier used in log attributes.
func (d *DynamicString) ID() string { return d.id }

// Done is closed once delivery has stopped, either because the context was
// cancelled, Stop was called, or the sink returned false.
func (d *DynamicString) Done() <-chan struct{} { return d.done }

// Stop cancels all producers and waits for them and the delivery goroutine
// to exit. Safe to call more than once.
func (d *DynamicString) Stop() {
	d.cancel()
	<-d.done
	d.wg.Wait()
}

// produce drives one dynamic segment, forwarding primary output into the
// composition buffer. Diagnostic output is dropped. Source termination is a
// local condition: the segment keeps its last value.
func (d *DynamicString) produce(index int, expr string, src Source) {
	defer d.wg.Done()

	err := src.Run(d.ctx, func(out Output) {
		if out.Stream != StreamPrimary {
			return
		}
		d.update(index, out.Data)
	})
	if err != nil && d.ctx.Err() == nil {
		d.logger.Debug("dynamic segment source terminated",
			"instance", d.id, "segment", index, "expr", expr, "error", err)
	}
}

// update writes one slot and submits the resulting join for delivery. The
// write, the join, and the channel submit all happen under the mutex so the
// delivery channel carries snapshots in lock-acquisition order and no
// publish ever sees a half-applied update.
func (d *DynamicString) update(index int, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.parts[index] = value
	composed := strings.Join(d.parts, "")

	select {
	case d.updates <- composed:
	case <-d.ctx.Done():
	}
}

// deliver invokes the sink serially with each queued snapshot.
func (d *DynamicString) deliver(sink Sink) {
	defer close(d.done)

	for {
		select {
		case <-d.ctx.Done():
			return
		case composed := <-d.updates:
			if d.ctx.Err() != nil {
				return
			}
			if !sink(composed) {
				d.cancel()
				return
			}
		}
	}
}
