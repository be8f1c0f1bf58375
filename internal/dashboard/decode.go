package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnexpectedPayload is returned for list bodies that are neither an array nor
// an object with a "data" array.
var ErrUnexpectedPayload = errors.New("unexpected list payload")

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// DecodeList decodes a bare JSON array or an object wrapping it in "data".
// A null body decodes to an empty list.
func DecodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}
		return items, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decoding list envelope: %w", err)
		}
		if len(env.Data) == 0 {
			return nil, fmt.Errorf("%w: object without data array", ErrUnexpectedPayload)
		}
		return DecodeList[T](env.Data)
	default:
		return nil, fmt.Errorf("%w: starts with %q", ErrUnexpectedPayload, trimmed[0])
	}
}
