// Package testutil provides helpers shared by the tests in this module.
package testutil

import (
	"io"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON marshals the provided value to JSON fatally terminating the current test in the event of a failure.
func MarshalJSON(t *testing.T, data any) []byte {
	dJSON, err := json.Marshal(data)
	require.NoError(t, err)

	return dJSON
}

// EncodeJSON marshals then writes the provided value to the given writer fatally terminating the current test in the
// event of a failure.
func EncodeJSON(t *testing.T, writer io.Writer, data any) {
	require.NoError(t, json.NewEncoder(writer).Encode(data))
}

// UnmarshalJSON unmarshals the provided JSON data into the given value fatally terminating the current test in the
// event of a failure.
func UnmarshalJSON(t *testing.T, dJSON []byte, data any) {
	require.NoError(t, json.Unmarshal(dJSON, data))
}

// DecodeJSONLines decodes every newline separated JSON value from the provided reader fatally terminating the current
// test in the event of a failure.
func DecodeJSONLines[T any](t *testing.T, reader io.Reader) []T {
	var (
		decoder = json.NewDecoder(reader)
		values  = make([]T, 0)
	)

	for decoder.More() {
		var v T

		require.NoError(t, decoder.Decode(&v))

		values = append(values, v)
	}

	return values
}
