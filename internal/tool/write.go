// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"go.yaml.in/yaml/v3"
)

// Output formats accepted by Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Write renders msgs to w as they arrive. json writes one object per line,
// yaml one document per message, and text prints text messages verbatim and
// everything else as indented JSON.
func Write(w io.Writer, format string, msgs iter.Seq[Message]) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		for m := range msgs {
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("encoding message: %w", err)
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for m := range msgs {
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("encoding message: %w", err)
			}
		}
		return enc.Close()
	case FormatText, "":
		for m := range msgs {
			if err := writeText(w, m); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml, or text)", format)
	}
}

func writeText(w io.Writer, m Message) error {
	var err error
	switch m.Kind {
	case KindText:
		_, err = fmt.Fprintln(w, m.Text)
	case KindVariable:
		var b []byte
		if b, err = json.MarshalIndent(m.Value, "", "  "); err == nil {
			_, err = fmt.Fprintf(w, "%s = %s\n", m.Variable, b)
		}
	default:
		var b []byte
		if b, err = json.MarshalIndent(m.Object, "", "  "); err == nil {
			_, err = fmt.Fprintf(w, "%s\n", b)
		}
	}
	if err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	return nil
}
