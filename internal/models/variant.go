package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Service variants are encoded as single-key objects, e.g.
// {"completed": {"prize_usd_amount": 1.5}} or {"processing": null}.

func marshalVariant(tag string, payload any) ([]byte, error) {
	body := []byte("null")
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	key, _ := json.Marshal(tag)
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalVariant(data []byte) (string, json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", nil, err
	}
	if len(raw) != 1 {
		return "", nil, fmt.Errorf("variant must have exactly one key, got %d", len(raw))
	}
	for tag, payload := range raw {
		return tag, payload, nil
	}
	panic("unreachable")
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	return json.Unmarshal(payload, v)
}

type unknownVariantError struct {
	kind string
	tag  string
}

func (e unknownVariantError) Error() string {
	return fmt.Sprintf("unknown %s variant %q", e.kind, e.tag)
}

// marshalUnit and unmarshalUnit encode payload-less variants backed by
// string enums such as WheelAssetState and UserRole.
func marshalUnit(tag string) ([]byte, error) {
	return marshalVariant(tag, nil)
}

func unmarshalUnit(data []byte, kind string, allowed ...string) (string, error) {
	tag, _, err := unmarshalVariant(data)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if a == tag {
			return tag, nil
		}
	}
	return "", unknownVariantError{kind: kind, tag: tag}
}
