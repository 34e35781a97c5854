// Package json routes every payload encode/decode in the server through
// jsoniter configured to behave like encoding/json.
package json

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// payload encodes tool results: sorted keys like api, but markup in usage
// snippets is written as is.
var payload = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

var (
	Marshal    = api.Marshal
	Unmarshal  = api.Unmarshal
	NewDecoder = api.NewDecoder
	NewEncoder = api.NewEncoder
)

// Pretty renders v with two-space indentation, the layout tool payloads are
// returned in.
func Pretty(v any) (string, error) {
	raw, err := payload.Marshal(v)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := stdjson.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}
