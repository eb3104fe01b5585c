// Package profile implements aggregate type profiling of schemaless
// documents. Each document is classified into a tree of typed property
// nodes which is merged into a single running profile that generalizes
// across every document seen so far, tracking per-field value types,
// occurrence counts, and frequency distributions for bounded-cardinality
// fields.
package profile

import "encoding/base64"

// Type identifies the kind of value a property node describes.
type Type string

const (
	TypeNull      Type = "null"
	TypeBoolean   Type = "boolean"
	TypeObject    Type = "object"
	TypeArray     Type = "array"
	TypeNumber    Type = "number"
	TypeString    Type = "string"
	TypeText      Type = "text"
	TypeBlob      Type = "blob"
	TypeAmbiguous Type = "ambiguous"
)

// isBase64 reports whether s is a correctly encoded base64 string. Only a
// string whose decode/encode round-trip reproduces the original exactly
// qualifies; the empty string never does.
func isBase64(s string) bool {
	if s == "" {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return false
	}
	return base64.StdEncoding.EncodeToString(raw) == s
}
