package protocol

import (
	"github.com/goccy/go-json"

	"github.com/mattjoyce/counter-contract/internal/state"
)

// Request is the envelope read from stdin. Method is required; Params is kept
// raw and not interpreted; State, when present, replaces the default state.
type Request struct {
	Method string
	Params json.RawMessage
	State  *state.ContractState
}

// Response is the single line written to stdout for every invocation.
type Response struct {
	Result any                 `json:"result"`
	State  state.ContractState `json:"state"`
}

// Event is a fire-and-forget notification written to stderr.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// wireRequest mirrors Request with pointer/raw fields so that missing and
// null members can be told apart from zero values.
type wireRequest struct {
	Method *string         `json:"method"`
	Params json.RawMessage `json:"params"`
	State  json.RawMessage `json:"state"`
}

type wireState struct {
	Counter json.RawMessage `json:"counter"`
}
