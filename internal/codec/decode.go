package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/qtest/pkg/qtest"
)

// maxExcerpt bounds the body text kept on a DecodeError.
const maxExcerpt = 512

var errNullList = errors.New("expected a JSON array, got null")

// Decode unmarshals a single JSON object into a new T.
func Decode[T any](body []byte) (*T, error) {
	var result T

	err := json.Unmarshal(body, &result)
	if err != nil {
		return nil, decodeError[T](body, err)
	}

	return &result, nil
}

// DecodeList unmarshals a JSON array into a slice of T, keeping server order.
// An empty array yields an empty, non-nil slice.
func DecodeList[T any](body []byte) ([]T, error) {
	result := make([]T, 0)

	err := json.Unmarshal(body, &result)
	if err != nil {
		return nil, decodeError[[]T](body, err)
	}

	if result == nil {
		// The body was the literal null.
		return nil, decodeError[[]T](body, errNullList)
	}

	return result, nil
}

func decodeError[T any](body []byte, err error) *qtest.DecodeError {
	var zero T

	excerpt := string(body)
	if len(excerpt) > maxExcerpt {
		excerpt = excerpt[:maxExcerpt] + "..."
	}

	return &qtest.DecodeError{
		Target: fmt.Sprintf("%T", zero),
		Body:   excerpt,
		Err:    err,
	}
}
