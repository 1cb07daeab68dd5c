// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool implements the host-facing entry points. A tool takes decoded
// parameters and streams Messages back; the host decides how to render them.
package tool

import "encoding/json"

// Kind discriminates the Message variants.
type Kind string

// Message kinds.
const (
	KindText     Kind = "text"
	KindJSON     Kind = "json"
	KindVariable Kind = "variable"
)

// Message is one streamed result: free text, a JSON object, or a named
// variable for the host to bind.
type Message struct {
	Kind     Kind
	Text     string
	Object   any
	Variable string
	Value    any
}

// TextMessage returns a text message.
func TextMessage(text string) Message {
	return Message{Kind: KindText, Text: text}
}

// JSONMessage returns a JSON message carrying v.
func JSONMessage(v any) Message {
	return Message{Kind: KindJSON, Object: v}
}

// VariableMessage returns a message binding value to name.
func VariableMessage(name string, value any) Message {
	return Message{Kind: KindVariable, Variable: name, Value: value}
}

// fields returns the wire form of m. Only the fields of m's kind appear, so
// an empty variable value is still emitted.
func (m Message) fields() map[string]any {
	switch m.Kind {
	case KindJSON:
		return map[string]any{"type": m.Kind, "json_object": m.Object}
	case KindVariable:
		return map[string]any{"type": m.Kind, "variable_name": m.Variable, "variable_value": m.Value}
	default:
		return map[string]any{"type": KindText, "text": m.Text}
	}
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.fields())
}

// MarshalYAML implements yaml.Marshaler.
func (m Message) MarshalYAML() (any, error) {
	return m.fields(), nil
}
