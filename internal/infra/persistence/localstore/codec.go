package localstore

import (
	"encoding/json"
)

// schemaVersion tags every persisted value so future format changes can be
// detected instead of silently corrupting state restored from old data.
const schemaVersion = 1

// envelope wraps a persisted value with its schema version.
type envelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// encode wraps a value in the current versioned envelope.
func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return json.Marshal(envelope{Version: schemaVersion, Data: data})
}

// decode unwraps a versioned envelope into out. Malformed JSON, an unknown
// schema version, or a payload that does not match out's shape all report
// ok=false so callers fall back to the type's empty default; decode never
// returns an error for bad persisted data.
func decode(raw []byte, out any) (ok bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false
	}

	if env.Version != schemaVersion || env.Data == nil {
		return false
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return false
	}

	return true
}
