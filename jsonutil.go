package smithy

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// jsonUnmarshal centralizes the JSON library choice (goccy/go-json) so
// every ordered-map type in this package decodes through the same decoder.
func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func marshalOrdered(keys []string, lookup func(string) interface{}) ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, key := range keys {
		value := lookup(key)
		if i > 0 {
			buf.WriteString(",")
		}
		jsonValue, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		keyBytes, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteString(":")
		buf.Write(jsonValue)
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}
