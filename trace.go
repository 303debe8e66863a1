package uses

import (
	"encoding/json"
)

// Trace captures provenance for one compiled use chain: which specs produced
// which descriptor, and the registry idents minted or reused along the way.
type Trace struct {
	Descriptors []Provenance `json:"descriptors"`
}

// Provenance details how a single descriptor was produced.
type Provenance struct {
	Kind     string   `json:"kind"`
	Loaders  []string `json:"loaders"`
	Identity string   `json:"identity,omitempty"`
	Options  string   `json:"options,omitempty"`
	Idents   []string `json:"idents,omitempty"`
}

// ToJSON serialises the trace for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload previously generated via ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
