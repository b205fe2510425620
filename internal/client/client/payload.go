package client

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ErrorPayload is the decoded body of an error response. It is either Flat
// (one message) or FieldErrors (validation messages, one per field).
type ErrorPayload interface {
	Flatten() string
	errorPayload()
}

// Flat is a single human-readable message.
type Flat string

func (f Flat) Flatten() string { return string(f) }
func (Flat) errorPayload() {}

// FieldErrors is a list of validation messages.
type FieldErrors []string

func (f FieldErrors) Flatten() string { return strings.Join(f, ", ") }
func (FieldErrors) errorPayload() {}

// Flatten renders p for display; nil yields "".
func Flatten(p ErrorPayload) string {
	if p == nil {
		return ""
	}
	return p.Flatten()
}

// ParseErrorPayload recognises {"message": "..."}, {"detail": "..."} and
// {"detail": [{"msg": "..."}, ...]} in that order of preference. Validation
// items without a msg are rendered as compact JSON. Anything else yields nil.
func ParseErrorPayload(body []byte) ErrorPayload {
	var envelope struct {
		Message json.RawMessage `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}

	if s, ok := jsonString(envelope.Message); ok {
		return Flat(s)
	}
	if s, ok := jsonString(envelope.Detail); ok {
		return Flat(s)
	}

	var items []json.RawMessage
	if json.Unmarshal(envelope.Detail, &items) != nil || items == nil {
		return nil
	}

	out := make(FieldErrors, 0, len(items))
	for _, item := range items {
		out = append(out, fieldMessage(item))
	}
	return out
}

func jsonString(raw json.RawMessage) (string, bool) {
	var p *string
	if json.Unmarshal(raw, &p) != nil || p == nil {
		return "", false
	}
	return *p, true
}

func fieldMessage(item json.RawMessage) string {
	var v struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(item, &v) == nil && v.Msg != "" {
		return v.Msg
	}

	var buf bytes.Buffer
	if json.Compact(&buf, item) != nil {
		return string(item)
	}
	return buf.String()
}
