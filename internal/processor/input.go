package processor

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Boundary errors. The docai core itself never returns errors; everything a
// caller can get wrong is rejected here, distinguishable by category.
var (
	ErrUnknownProcessor = errors.New("unknown processor")
	ErrMalformedInput   = errors.New("malformed input")
	ErrUnsupportedInput = errors.New("unsupported input type")
)

// NormalizeInput accepts either JSON text (string, []byte, json.RawMessage)
// or an already-parsed structure (map) and returns canonical raw JSON bytes.
// Invalid JSON yields ErrMalformedInput; any other input type yields
// ErrUnsupportedInput.
func NormalizeInput(v any) (json.RawMessage, error) {
	switch t := v.(type) {
	case json.RawMessage:
		return validJSON([]byte(t))
	case []byte:
		return validJSON(t)
	case string:
		return validJSON([]byte(t))
	case map[string]any:
		raw, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, v)
	}
}

func validJSON(data []byte) (json.RawMessage, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedInput)
	}
	return json.RawMessage(data), nil
}
