package contract

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/mattjoyce/counter-contract/internal/events"
	"github.com/mattjoyce/counter-contract/internal/manifest"
	"github.com/mattjoyce/counter-contract/internal/protocol"
	"github.com/mattjoyce/counter-contract/internal/state"
)

const (
	EventInitialized        = "Initialized"
	EventCounterIncremented = "CounterIncremented"
	EventError              = "Error"
)

// Status is the coarse result of one invocation.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitFatal is used when the protocol streams themselves cannot be written.
	ExitFatal = 2
)

// Outcome is the tagged result of one invocation. Err carries the failure
// kind when Status is StatusError.
type Outcome struct {
	Status   Status
	Response protocol.Response
	Err      error
}

// ExitCode maps the outcome to the process exit status.
func (o Outcome) ExitCode() int {
	if o.Status == StatusOK {
		return ExitOK
	}
	return ExitFailure
}

// handler mutates st in place and returns the result value plus the name of
// the event to emit with the resulting state ("" for none).
type handler func(d *Dispatcher, st *state.ContractState) (result any, event string)

var handlers = map[string]handler{
	"initialize": func(_ *Dispatcher, st *state.ContractState) (any, string) {
		st.Reset()
		return nil, EventInitialized
	},
	"increment": func(d *Dispatcher, st *state.ContractState) (any, string) {
		if !st.Increment() {
			d.logger.Warn("counter saturated", "counter", st.Counter)
		}
		return nil, EventCounterIncremented
	},
	"list_methods": func(d *Dispatcher, _ *state.ContractState) (any, string) {
		return d.manifest.GetWriteCommands(), ""
	},
}

// Dispatcher routes one request to its method handler.
type Dispatcher struct {
	manifest *manifest.Manifest
	emitter  events.Emitter
	logger   *slog.Logger
}

// New creates a dispatcher for m. Every command declared by the manifest
// must have a handler and every handler must be declared.
func New(m *manifest.Manifest, emitter events.Emitter, logger *slog.Logger) (*Dispatcher, error) {
	if m == nil {
		return nil, fmt.Errorf("manifest is nil")
	}
	if emitter == nil {
		return nil, fmt.Errorf("emitter is nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	declared := m.Names()
	for _, name := range declared {
		if _, ok := handlers[name]; !ok {
			return nil, fmt.Errorf("manifest command %q has no handler", name)
		}
	}
	for name := range handlers {
		if !slices.Contains(declared, name) {
			return nil, fmt.Errorf("handler %q is not declared in manifest", name)
		}
	}

	return &Dispatcher{
		manifest: m,
		emitter:  emitter,
		logger:   logger,
	}, nil
}

// Run reads a single request line from in and handles it. The returned error
// is non-nil only when an event could not be written.
func (d *Dispatcher) Run(in io.Reader) (Outcome, error) {
	line, err := protocol.ReadLine(in)
	if err != nil {
		return d.fail(err, state.Default())
	}

	req, err := protocol.DecodeRequest(line)
	if err != nil {
		return d.fail(err, state.Default())
	}

	return d.Handle(req)
}

// Handle resolves the request state and dispatches on the method name.
func (d *Dispatcher) Handle(req *protocol.Request) (Outcome, error) {
	st := state.Default()
	if req.State != nil {
		st = *req.State
	}

	h, ok := handlers[req.Method]
	typ, declared := d.manifest.CommandTypeFor(req.Method)
	if !ok || !declared {
		return d.fail(fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method), st)
	}

	d.logger.Debug("dispatching method", "method", req.Method, "type", typ, "counter", st.Counter)

	result, event := h(d, &st)
	if event != "" {
		if err := d.emitter.Emit(event, st); err != nil {
			return Outcome{}, fmt.Errorf("method %s: %w", req.Method, err)
		}
	}

	d.logger.Info("method handled", "method", req.Method, "counter", st.Counter, "event", event)

	return Outcome{
		Status:   StatusOK,
		Response: protocol.Response{Result: result, State: st},
	}, nil
}

func (d *Dispatcher) fail(cause error, st state.ContractState) (Outcome, error) {
	d.logger.Warn("request rejected", "error", cause, "counter", st.Counter)

	if err := d.emitter.Emit(EventError, FailureMessage(cause)); err != nil {
		return Outcome{}, fmt.Errorf("report %v: %w", cause, err)
	}

	return Outcome{
		Status:   StatusError,
		Response: protocol.Response{Result: nil, State: st},
		Err:      cause,
	}, nil
}
