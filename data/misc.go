// Package data provides an order-preserving JSON object type used
// throughout the model tables, trait payloads, and generator configuration.
package data

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Equivalent compares two decoded JSON values (as produced by this
// package's ordered-map types) for deep equality by comparing their
// canonical pretty-printed form, avoiding a hand-rolled recursive walk
// over map[string]interface{}/[]interface{}/scalar unions.
func Equivalent(obj1 interface{}, obj2 interface{}) bool {
	return Pretty(obj1) == Pretty(obj2)
}

// Pretty renders obj as indented JSON, used when merging model metadata
// across assembly files to report exactly what is conflicting.
func Pretty(obj interface{}) string {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&obj); err != nil {
		return fmt.Sprint(obj)
	}
	return buf.String()
}
