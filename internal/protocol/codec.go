package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/mattjoyce/counter-contract/internal/state"
)

var (
	// ErrNoInput is returned when no request line could be read.
	ErrNoInput = errors.New("no input received")
	// ErrInvalidRequest is returned when a line does not decode into a Request.
	ErrInvalidRequest = errors.New("invalid request")
)

// ReadLine reads a single line from r. The trailing "\n" (or "\r\n") is
// stripped; a final line without a newline is accepted. End of input before
// any byte, a read error, or a line that is not valid UTF-8 yields ErrNoInput.
func ReadLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: read stdin: %v", ErrNoInput, err)
	}
	if errors.Is(err, io.EOF) && len(line) == 0 {
		return nil, ErrNoInput
	}

	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}

	if !utf8.Valid(line) {
		return nil, fmt.Errorf("%w: stdin is not valid UTF-8", ErrNoInput)
	}
	return line, nil
}

// DecodeRequest parses one request line. Unknown fields are ignored. The
// whole request is rejected when the line is not valid JSON, when method or
// params is missing, when method is not a string, when a known field repeats,
// when a string holds an unpaired surrogate, or when state is not exactly
// {"counter": <uint64>}.
func DecodeRequest(line []byte) (*Request, error) {
	if !json.Valid(line) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidRequest)
	}
	if err := checkSurrogates(line); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	present, err := scanKeys(line, "method", "params", "state")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var wire wireRequest
	if err := json.Unmarshal(line, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if wire.Method == nil {
		return nil, fmt.Errorf("%w: missing required field: method", ErrInvalidRequest)
	}
	if !present["params"] {
		return nil, fmt.Errorf("%w: missing required field: params", ErrInvalidRequest)
	}

	req := &Request{
		Method: *wire.Method,
		Params: wire.Params,
	}

	if !isNull(wire.State) {
		st, err := decodeState(wire.State)
		if err != nil {
			return nil, fmt.Errorf("%w: state: %v", ErrInvalidRequest, err)
		}
		req.State = st
	}

	return req, nil
}

func decodeState(raw json.RawMessage) (*state.ContractState, error) {
	if _, err := scanKeys(raw, "counter"); err != nil {
		return nil, err
	}

	var wire wireState
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if len(wire.Counter) == 0 {
		return nil, fmt.Errorf("missing required field: counter")
	}

	// ParseUint rejects signs, fractions, exponents, strings and null, which
	// is exactly the set of counters the shape does not allow.
	counter, err := strconv.ParseUint(string(bytes.TrimSpace(wire.Counter)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("counter must be an unsigned 64-bit integer, got %s", wire.Counter)
	}
	return &state.ContractState{Counter: counter}, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// EncodeResponse writes resp to w as a single JSON line.
func EncodeResponse(w io.Writer, resp *Response) error {
	return writeLine(w, resp)
}

// EncodeEvent writes ev to w as a single JSON line.
func EncodeEvent(w io.Writer, ev Event) error {
	return writeLine(w, ev)
}

func writeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %T: %w", v, err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %T: %w", v, err)
	}
	return nil
}
