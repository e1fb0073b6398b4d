// Package codec holds the JSON helpers shared by the resource clients: ordered
// request bodies, typed response decoding and the creation timestamp format.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one key/value pair of a request body.
type Field struct {
	Key   string
	Value interface{}
}

// Fields is a JSON object whose keys are emitted in insertion order.
type Fields []Field

// MarshalJSON implements json.Marshaler.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", field.Key, err)
		}

		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding value of %q: %w", field.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
