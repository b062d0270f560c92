// Package wire converts between the JSON shapes of the HTTP API and the
// google.protobuf.Struct messages spoken by checkpoint scanners. Both
// surfaces share one field vocabulary: the JSON tags of the clearance types.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct renders v through its JSON encoding.
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal %T: %w", v, err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("wire: %T is not a JSON object: %w", v, err)
	}
	return s, nil
}

// FromStruct decodes s into v as if s were a JSON request body. Unknown
// fields are rejected.
func FromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("wire: marshal struct: %w", err)
	}
	return DecodeJSON(raw, v)
}

// DecodeJSON is the strict decoder shared by every request path.
func DecodeJSON(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("wire: decode %T: %w", v, err)
	}
	return nil
}

// StringField returns the string value of key, or "" when it is absent or
// not a string.
func StringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}
